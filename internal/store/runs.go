package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// RecordRun stores a finished run and the updated profile atomically.
func (s *Store) RecordRun(ctx context.Context, rec model.RunRecord, p model.Profile) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertRun(ctx, tx, rec); err != nil {
			return err
		}
		return saveProfile(ctx, tx, p)
	})
}

// InsertRun stores a finished run.
func (s *Store) InsertRun(ctx context.Context, rec model.RunRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return insertRun(ctx, tx, rec)
	})
}

func insertRun(ctx context.Context, tx *sql.Tx, rec model.RunRecord) error {
	st := rec.Stats
	won := 0
	if st.Won {
		won = 1
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, ended_at, won, wave, wpm, accuracy, flow_uptime, best_combo, words,
			total_keystrokes, correct_keystrokes, flow_ms, duration_ms, coins_earned, reward_coins, reward_sp,
			reward_cards, reward_duplicates)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.EndedAt.UTC().Format(time.RFC3339Nano),
		won,
		st.Wave,
		st.WPM,
		st.Accuracy,
		st.FlowUptime,
		st.BestCombo,
		st.WordsCompleted,
		st.TotalKeystrokes,
		st.CorrectKeystrokes,
		st.FlowTime.Milliseconds(),
		st.TotalTime.Milliseconds(),
		st.CoinsEarned,
		rec.Rewards.Coins,
		rec.Rewards.SP,
		strings.Join(rec.Rewards.Cards, ","),
		strings.Join(rec.Rewards.Duplicates, ","),
	)
	return err
}

// ListRuns returns runs filtered by stats config, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, won, wave, wpm, accuracy, flow_uptime, best_combo, words,
			total_keystrokes, correct_keystrokes, flow_ms, duration_ms, coins_earned, reward_coins, reward_sp,
			reward_cards, reward_duplicates
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var rec model.RunRecord
		var startedAt, endedAt, cards, dups string
		var won int
		var flowMs, durationMs int64
		st := &rec.Stats
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &won, &st.Wave, &st.WPM, &st.Accuracy, &st.FlowUptime,
			&st.BestCombo, &st.WordsCompleted, &st.TotalKeystrokes, &st.CorrectKeystrokes, &flowMs, &durationMs,
			&st.CoinsEarned, &rec.Rewards.Coins, &rec.Rewards.SP, &cards, &dups); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		st.Won = won == 1
		st.FlowTime = time.Duration(flowMs) * time.Millisecond
		st.TotalTime = time.Duration(durationMs) * time.Millisecond
		rec.Rewards.Cards = splitList(cards)
		rec.Rewards.Duplicates = splitList(dups)
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}
