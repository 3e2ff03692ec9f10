package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordsiege/internal/generator"
	"github.com/verte-zerg/wordsiege/internal/model"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func newStyledRune(r rune, style lipgloss.Style) styledRune {
	return styledRune{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: r == ' ',
	}
}

// buildTargetRunes styles a boss word: typed prefix, cursor, pending rest.
func buildTargetRunes(target []rune, typed int) []styledRune {
	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		style := pendingStyle
		switch {
		case i < typed:
			style = correctStyle
		case i == typed:
			style = cursorStyle
		}
		out = append(out, newStyledRune(r, style))
	}
	return out
}

// buildMobRunes styles a mob word. Gaps stand out, more so when a card
// highlights them; solved mobs render in full until they are removed.
func buildMobRunes(mob model.Mob, highlight bool) []styledRune {
	if mob.Held {
		return buildTextRunes(mob.Word, clearedStyle)
	}
	style := mobStyle
	if mob.Progress >= dangerProgress {
		style = dangerStyle
	}
	gap := gapStyle
	if highlight {
		gap = highlightGapStyle
	}
	out := make([]styledRune, 0, len(mob.DisplayWord))
	for _, r := range mob.DisplayWord {
		if r == generator.Placeholder {
			out = append(out, newStyledRune(r, gap))
			continue
		}
		out = append(out, newStyledRune(r, style))
	}
	return out
}

func buildTextRunes(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, newStyledRune(r, style))
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
