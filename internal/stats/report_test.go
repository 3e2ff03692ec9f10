package stats

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "wordsiege.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		rec := model.RunRecord{
			ID:        fmt.Sprintf("run-%d", i),
			StartedAt: start,
			EndedAt:   start.Add(30 * time.Second),
			Stats:     model.RunStats{Wave: 3, WPM: 20 + i},
		}
		if err := st.InsertRun(ctx, rec); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}
	if _, err := st.AddLexiconWord(ctx, "BEAM", time.Now()); err != nil {
		t.Fatalf("add word: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2, CurveWindow: 1})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Runs) != 2 || report.Runs[0].ID != "run-1" {
		t.Fatalf("unexpected runs: %+v", report.Runs)
	}
	if len(report.Window) != 1 || report.Window[0].ID != "run-2" {
		t.Fatalf("unexpected window: %+v", report.Window)
	}
	if len(report.Profile.Lexicon) != 1 {
		t.Fatalf("expected lexicon in report, got %v", report.Profile.Lexicon)
	}
}
