package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/store"
)

func TestCurveWindowSteps(t *testing.T) {
	cases := []struct{ in, next, prev int }{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
	}
	for _, c := range cases {
		if got := nextCurveWindow(c.in); got != c.next {
			t.Fatalf("next(%d) = %d, want %d", c.in, got, c.next)
		}
		if got := prevCurveWindow(c.in); got != c.prev {
			t.Fatalf("prev(%d) = %d, want %d", c.in, got, c.prev)
		}
	}
}

func TestRenderLexiconColumns(t *testing.T) {
	out := renderLexicon([]string{"ARCH", "BEAM", "CORE", "VAULT"}, 14)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if lines[1] != "ARCH   BEAM" || lines[2] != "CORE   VAULT" {
		t.Fatalf("unexpected layout %q", lines[1:])
	}
	if !strings.Contains(renderLexicon(nil, 80), "No words unlocked") {
		t.Fatalf("expected empty lexicon message")
	}
}

func TestRunTableNewestFirst(t *testing.T) {
	base := time.Date(2026, 4, 2, 9, 0, 0, 0, time.Local)
	runs := []model.RunRecord{
		{EndedAt: base, Stats: model.RunStats{WPM: 30}},
		{EndedAt: base.Add(time.Hour), Stats: model.RunStats{WPM: 45, Won: true}},
	}
	cols, rows := runTableData(runs)
	if len(cols) != 8 || len(rows) != 2 {
		t.Fatalf("unexpected table shape %d cols %d rows", len(cols), len(rows))
	}
	if rows[0][1] != "won" || rows[0][3] != "45" {
		t.Fatalf("expected newest run first, got %v", rows[0])
	}
	if cols[0].Width != len("2026-04-02 10:00") {
		t.Fatalf("unexpected column width %d", cols[0].Width)
	}
}

func TestApplyFilterValidates(t *testing.T) {
	m := &Model{}
	m.initInputs()
	m.filterInputs[2].SetValue("0")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected window error")
	}
	m.filterInputs[0].SetValue("2026-13-01")
	m.filterInputs[2].SetValue("3")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected date error")
	}
	m.filterInputs[0].SetValue("2026-03-01")
	m.filterInputs[1].SetValue("4")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.cfg.Since == nil || m.cfg.Last != 4 || m.cfg.CurveWindow != 3 {
		t.Fatalf("unexpected config %+v", m.cfg)
	}
}

func TestModelRendersStoredRuns(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "wordsiege.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	now := time.Now()
	for i, won := range []bool{false, true} {
		rec := model.RunRecord{
			ID:        string(rune('a' + i)),
			StartedAt: now.Add(time.Duration(i) * time.Minute),
			EndedAt:   now.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Stats:     model.RunStats{Won: won, Wave: 5, WPM: 40 + i, Accuracy: 95},
		}
		if err := st.InsertRun(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if _, err := st.AddLexiconWord(ctx, "VAULT", now); err != nil {
		t.Fatalf("lexicon: %v", err)
	}

	m := NewModel(st, model.StatsConfig{CurveWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(m.View(), "Win Rate") {
		t.Fatalf("overview missing summary:\n%s", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabRuns || len(m.runTable.Rows()) != 2 {
		t.Fatalf("expected runs tab with 2 rows")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabLexicon || !strings.Contains(m.View(), "VAULT") {
		t.Fatalf("expected lexicon tab with the unlocked word")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Fatalf("q should quit")
	}
}
