package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/verte-zerg/wordsiege/internal/model"
)

func TestRenderHUDFormats(t *testing.T) {
	snap := model.Snapshot{
		HP:          7,
		BaseHP:      10,
		TempHP:      2,
		Wave:        3,
		WaveCount:   5,
		Combo:       12,
		Words:       14,
		LexiconSize: 40,
	}
	out := renderHUD(snap, false, true)
	if !containsAll(out, []string{"HP 7/10 +2", "Wave 3/5", "Combo 12", "Words 14", "Lexicon 40", "Sound off"}) {
		t.Fatalf("hud missing expected segments: %s", out)
	}
	snap.Wave = 5
	if out := renderHUD(snap, false, false); !strings.Contains(out, "Boss wave") || strings.Contains(out, "Sound off") {
		t.Fatalf("unexpected boss hud: %s", out)
	}
}

func TestRenderCardLine(t *testing.T) {
	bar := newBar("#C89A3A")
	if out := renderCardLine(model.Snapshot{}, bar); !strings.Contains(out, "No cards equipped") {
		t.Fatalf("unexpected empty deck line: %s", out)
	}
	snap := model.Snapshot{
		Card:          &model.Card{Name: "Overclock"},
		CardActive:    true,
		CardRemaining: 0.5,
		CardIndex:     5,
		DeckSize:      4,
	}
	if out := renderCardLine(snap, bar); !containsAll(out, []string{"Card 2/4 Overclock", "active"}) {
		t.Fatalf("unexpected card line: %s", out)
	}
}

func TestRenderBossPanel(t *testing.T) {
	if renderBossPanel(model.Snapshot{}, newBar("#B37FEB"), newBar("#5FD7FF")) != nil {
		t.Fatalf("no panel without a boss")
	}
	snap := model.Snapshot{
		Boss:       model.Boss{Active: true, HP: 42, MaxHP: 100},
		Flow:       100,
		Hyper:      true,
		BossTarget: "ARCH",
		BossTyped:  2,
	}
	lines := renderBossPanel(snap, newBar("#B37FEB"), newBar("#5FD7FF"))
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !containsAll(lines[0], []string{"42/100"}) || !containsAll(lines[1], []string{"100", "HYPER"}) {
		t.Fatalf("unexpected panel %q", lines)
	}
	if ansi.Strip(lines[2]) != "Type: ARCH" {
		t.Fatalf("unexpected target line %q", ansi.Strip(lines[2]))
	}
}

func TestRenderResult(t *testing.T) {
	won := model.RunStats{Won: true, Wave: 5, WordsCompleted: 25, WPM: 41, Accuracy: 96, TotalTime: 90 * time.Second}
	rewards := model.Rewards{Coins: 275, SP: 1, Cards: []string{"overclock"}, Duplicates: []string{"temp_anchor"}}
	out := ansi.Strip(renderResult(won, rewards, 3, nil))
	if !containsAll(out, []string{"VICTORY", "WPM 41", "Accuracy 96%", "Coins +275", "SP +1", "Words unlocked 3", "Duplicates:"}) {
		t.Fatalf("unexpected victory report:\n%s", out)
	}

	lost := ansi.Strip(renderResult(model.RunStats{Wave: 2}, model.Rewards{}, 0, errors.New("disk full")))
	if !containsAll(lost, []string{"DEFEAT", "No rewards", "disk full"}) || strings.Contains(lost, "Coins +") {
		t.Fatalf("unexpected defeat report:\n%s", lost)
	}
}

func TestRenderFieldPlacesMobsAndBase(t *testing.T) {
	snap := model.Snapshot{Mobs: []model.Mob{{Word: "ARCH", DisplayWord: "A_CH", Progress: 0.3}}}
	out := ansi.Strip(renderField(snap, nil, 0, "WAVE 1", 60, 16))
	lines := strings.Split(out, "\n")
	if len(lines) != 16 {
		t.Fatalf("expected 16 rows, got %d", len(lines))
	}
	if !containsAll(out, []string{"A_CH", "[BASE]", "WAVE 1"}) {
		t.Fatalf("field missing content:\n%s", out)
	}
	for i, line := range lines {
		if w := len([]rune(line)); w != 60 {
			t.Fatalf("row %d has width %d", i, w)
		}
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
