package stats

import (
	"context"

	"github.com/verte-zerg/wordsiege/internal/model"
	"github.com/verte-zerg/wordsiege/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs    []model.RunRecord
	Window  []model.RunRecord
	Profile model.Profile
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	p, err := st.LoadProfile(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:    runs,
		Window:  lastRuns(runs, cfg.CurveWindow),
		Profile: p,
	}, nil
}

func lastRuns(runs []model.RunRecord, window int) []model.RunRecord {
	if window <= 0 || len(runs) <= window {
		return runs
	}
	return runs[len(runs)-window:]
}
