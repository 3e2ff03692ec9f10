package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordsiege/internal/geometry"
	"github.com/verte-zerg/wordsiege/internal/model"
)

const (
	// fieldDepth is the normalized y drawn on the bottom row of the field.
	fieldDepth     = 0.7
	pathSamples    = 48
	dangerProgress = 0.85
)

// canvas is a grid of styled cells. A wide rune occupies its cell and an
// empty placeholder after it.
type canvas struct {
	width  int
	height int
	cells  [][]styledRune
}

func newCanvas(width, height int) *canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	blank := styledRune{s: " ", width: 1, isSpace: true}
	cells := make([][]styledRune, height)
	for i := range cells {
		row := make([]styledRune, width)
		for j := range row {
			row[j] = blank
		}
		cells[i] = row
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (c *canvas) cellFor(p geometry.Point) (int, int) {
	col := int(math.Round(p.X * float64(c.width-1)))
	row := int(math.Round(p.Y / fieldDepth * float64(c.height-1)))
	return col, row
}

func (c *canvas) put(col, row int, runes []styledRune) {
	if row < 0 || row >= c.height {
		return
	}
	for _, r := range runes {
		if col < 0 {
			col += r.width
			continue
		}
		if col+r.width > c.width {
			return
		}
		c.cells[row][col] = r
		for k := 1; k < r.width; k++ {
			c.cells[row][col+k] = styledRune{}
		}
		col += r.width
	}
}

// putCentered places runes centered on col, shifted to stay on screen.
func (c *canvas) putCentered(col, row int, runes []styledRune) {
	w := lineWidthOf(runes)
	start := col - w/2
	if start+w > c.width {
		start = c.width - w
	}
	if start < 0 {
		start = 0
	}
	c.put(start, row, runes)
}

func (c *canvas) putAt(p geometry.Point, runes []styledRune) {
	col, row := c.cellFor(p)
	c.putCentered(col, row, runes)
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = renderStyledRunes(row)
	}
	return strings.Join(lines, "\n")
}

func glyphRunes(glyph string, style lipgloss.Style) []styledRune {
	return []styledRune{{s: style.Render(glyph), width: runewidth.StringWidth(glyph)}}
}

// renderField draws the path, base, mobs, boss, particles and an optional
// banner for one frame.
func renderField(snap model.Snapshot, particles []particle, now time.Duration, banner string, width, height int) string {
	c := newCanvas(width, height)
	for i := 0; i <= pathSamples; i++ {
		c.putAt(geometry.PointAt(float64(i)/pathSamples), glyphRunes(".", pathStyle))
	}
	c.putAt(geometry.PointAt(1), buildTextRunes("[BASE]", baseStyle))

	for _, mob := range snap.Mobs {
		c.putAt(geometry.PathPoint(mob.Progress), buildMobRunes(mob, snap.HighlightGaps))
	}
	if snap.Boss.Active {
		style := bossStyle
		if snap.Boss.Progress >= dangerProgress {
			style = dangerStyle
		}
		c.putAt(geometry.PathPoint(snap.Boss.Progress), buildTextRunes("<<BOSS>>", style))
	}

	for _, p := range particles {
		if p.Expired(now) {
			continue
		}
		style := sparkStyle
		if p.kind == model.EventBossHit {
			style = damageStyle
		}
		c.putAt(p.position(now), glyphRunes(p.glyph, style))
	}

	if banner != "" {
		c.putCentered(c.width/2, c.height/2, buildTextRunes(banner, bannerStyle))
	}
	return c.String()
}
