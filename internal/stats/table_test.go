package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Card", "Drops", "New"}
	rows := [][]string{
		{"Overclock", "12", "3"},
		{"盾", "8", "10"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Card      Drops New" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Overclock    12   3" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "盾            8  10" {
		t.Fatalf("wide runes should count two cells: %q", lines[2])
	}
}

func TestRenderRunTable(t *testing.T) {
	runs := []model.RunRecord{{
		EndedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local),
		Stats:   model.RunStats{Won: true, Wave: 5, WPM: 42, Accuracy: 97, BestCombo: 18, WordsCompleted: 21},
		Rewards: model.Rewards{Coins: 255},
	}}
	var b strings.Builder
	if err := RenderRunTable(&b, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	for _, want := range []string{"Runs", "2026-01-02 03:04", "won", "97%", "255"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
