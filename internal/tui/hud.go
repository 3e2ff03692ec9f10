package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordsiege/internal/catalog"
	"github.com/verte-zerg/wordsiege/internal/model"
)

const barWidth = 24

var (
	correctStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle       = pendingStyle.Copy().Underline(true)
	mobStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	dangerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	gapStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))
	highlightGapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#5FD7FF"))
	clearedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	bossStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#B37FEB")).Bold(true)
	pathStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	baseStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#40A9FF")).Bold(true)
	sparkStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14"))
	damageStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A45")).Bold(true)
	bannerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	hyperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF85C0")).Bold(true)
	dialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#C89A3A")).Padding(1, 2)
	titleStyle        = lipgloss.NewStyle().Bold(true)
)

func newBar(colors ...string) progress.Model {
	opts := []progress.Option{progress.WithWidth(barWidth), progress.WithoutPercentage()}
	if len(colors) == 2 {
		opts = append(opts, progress.WithGradient(colors[0], colors[1]))
	} else {
		opts = append(opts, progress.WithSolidFill(colors[0]))
	}
	return progress.New(opts...)
}

// renderHUD is the status line above the field.
func renderHUD(snap model.Snapshot, flashing, muted bool) string {
	hp := fmt.Sprintf("HP %d/%d", snap.HP, snap.BaseHP)
	if snap.TempHP > 0 {
		hp += fmt.Sprintf(" +%d", snap.TempHP)
	}
	if flashing {
		hp = dangerStyle.Render(hp)
	}
	wave := fmt.Sprintf("Wave %d/%d", snap.Wave, snap.WaveCount)
	if snap.Wave == snap.WaveCount {
		wave = bossStyle.Render("Boss wave")
	}
	segments := []string{
		hp,
		wave,
		fmt.Sprintf("Combo %d", snap.Combo),
		fmt.Sprintf("Words %d", snap.Words),
		fmt.Sprintf("Lexicon %d", snap.LexiconSize),
	}
	if muted {
		segments = append(segments, "Sound off")
	}
	return strings.Join(segments, "  ")
}

// renderCardLine shows the active card and its remaining time.
func renderCardLine(snap model.Snapshot, bar progress.Model) string {
	if snap.Card == nil {
		return footerStyle.Render("No cards equipped")
	}
	state := "recharging"
	if snap.CardActive {
		state = "active"
	}
	label := fmt.Sprintf("Card %d/%d %s", snap.CardIndex%snap.DeckSize+1, snap.DeckSize, snap.Card.Name)
	return fmt.Sprintf("%s %s %s", label, bar.ViewAs(snap.CardRemaining), footerStyle.Render(state))
}

// renderBossPanel shows boss hp, flow and the word to type.
func renderBossPanel(snap model.Snapshot, hpBar, flowBar progress.Model) []string {
	if !snap.Boss.Active {
		return nil
	}
	hpFrac := 0.0
	if snap.Boss.MaxHP > 0 {
		hpFrac = snap.Boss.HP / snap.Boss.MaxHP
	}
	hp := fmt.Sprintf("%s %s %.0f/%.0f", bossStyle.Render("Boss"), hpBar.ViewAs(hpFrac), snap.Boss.HP, snap.Boss.MaxHP)
	flow := fmt.Sprintf("Flow %s %3.0f", flowBar.ViewAs(snap.Flow/100), snap.Flow)
	if snap.Hyper {
		flow += " " + hyperStyle.Render("HYPER")
	}
	target := renderStyledRunes(buildTargetRunes([]rune(snap.BossTarget), snap.BossTyped))
	return []string{hp, flow, "Type: " + target}
}

func cardName(id string) string {
	if card, ok := catalog.Card(id); ok {
		return card.Name
	}
	return id
}

// renderResult is the post-run report.
func renderResult(stats model.RunStats, rewards model.Rewards, unlocked int, saveErr error) string {
	title := dangerStyle.Render("DEFEAT")
	if stats.Won {
		title = clearedStyle.Render("VICTORY")
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Wave %d   Words %d   WPM %d   Accuracy %d%%", stats.Wave, stats.WordsCompleted, stats.WPM, stats.Accuracy),
		fmt.Sprintf("Best combo %d   Flow uptime %d%%   Time %s", stats.BestCombo, stats.FlowUptime, stats.TotalTime.Round(time.Second)),
		fmt.Sprintf("Words unlocked %d", unlocked),
		"",
	}
	if stats.Won {
		lines = append(lines, fmt.Sprintf("Coins +%d   SP +%d", rewards.Coins, rewards.SP))
		if len(rewards.Cards) > 0 {
			names := make([]string, 0, len(rewards.Cards))
			for _, id := range rewards.Cards {
				names = append(names, cardName(id))
			}
			lines = append(lines, "New cards: "+strings.Join(names, ", "))
		}
		if len(rewards.Duplicates) > 0 {
			names := make([]string, 0, len(rewards.Duplicates))
			for _, id := range rewards.Duplicates {
				names = append(names, cardName(id))
			}
			lines = append(lines, "Duplicates: "+strings.Join(names, ", "))
		}
	} else {
		lines = append(lines, footerStyle.Render("No rewards for a lost run."))
	}
	if saveErr != nil {
		lines = append(lines, dangerStyle.Render("Run not saved: "+saveErr.Error()))
	}
	lines = append(lines, "", footerStyle.Render("Press enter to exit."))
	return dialogStyle.Render(strings.Join(lines, "\n"))
}
