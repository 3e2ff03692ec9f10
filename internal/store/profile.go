package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

// LoadProfile reads the stored profile. A missing profile row yields a fresh
// one at the start of the tutorial; child tables such as the lexicon are still
// read because words are recorded mid-run before the first profile save.
func (s *Store) LoadProfile(ctx context.Context) (model.Profile, error) {
	p := model.Profile{
		Skills:   map[string]int{},
		Tutorial: model.Tutorial{Step: model.StepWelcome},
	}
	var step string
	err := s.db.QueryRowContext(ctx, `SELECT coins, sp, tutorial_step FROM profile WHERE id = 1`).
		Scan(&p.Coins, &p.SP, &step)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return model.Profile{}, err
	default:
		p.Tutorial.Step = model.TutorialStep(step)
	}

	if p.Inventory, err = s.strings(ctx, `SELECT card_id FROM owned_cards ORDER BY position`); err != nil {
		return model.Profile{}, err
	}
	if p.Deck, err = s.strings(ctx, `SELECT card_id FROM deck ORDER BY slot`); err != nil {
		return model.Profile{}, err
	}
	if p.Lexicon, err = s.strings(ctx, `SELECT word FROM lexicon ORDER BY word`); err != nil {
		return model.Profile{}, err
	}
	if p.Tutorial.VisitedPages, err = s.strings(ctx, `SELECT page FROM tutorial_pages ORDER BY position`); err != nil {
		return model.Profile{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT skill_id, level FROM skills`)
	if err != nil {
		return model.Profile{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var id string
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			return model.Profile{}, err
		}
		p.Skills[id] = level
	}
	if err := rows.Err(); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (s *Store) strings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveProfile replaces the stored profile. Lexicon words are only ever added.
func (s *Store) SaveProfile(ctx context.Context, p model.Profile) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return saveProfile(ctx, tx, p)
	})
}

func saveProfile(ctx context.Context, tx *sql.Tx, p model.Profile) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO profile (id, coins, sp, tutorial_step) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET coins = excluded.coins, sp = excluded.sp, tutorial_step = excluded.tutorial_step`,
		p.Coins, p.SP, string(p.Tutorial.Step),
	); err != nil {
		return err
	}

	for _, table := range []string{"owned_cards", "deck", "skills", "tutorial_pages"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	for i, id := range p.Inventory {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO owned_cards (card_id, position) VALUES (?, ?)`, id, i); err != nil {
			return err
		}
	}
	for i, id := range p.Deck {
		if _, err := tx.ExecContext(ctx, `INSERT INTO deck (slot, card_id) VALUES (?, ?)`, i, id); err != nil {
			return err
		}
	}
	for id, level := range p.Skills {
		if _, err := tx.ExecContext(ctx, `INSERT INTO skills (skill_id, level) VALUES (?, ?)`, id, level); err != nil {
			return err
		}
	}
	for i, page := range p.Tutorial.VisitedPages {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tutorial_pages (page, position) VALUES (?, ?)`, page, i); err != nil {
			return err
		}
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, word := range p.Lexicon {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO lexicon (word, unlocked_at) VALUES (?, ?)`, word, now); err != nil {
			return err
		}
	}
	return nil
}

// AddLexiconWord stores a newly solved word. It reports whether the word was new.
func (s *Store) AddLexiconWord(ctx context.Context, word string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO lexicon (word, unlocked_at) VALUES (?, ?)`,
		word, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ResetProfile deletes the profile, lexicon included. Run history is kept.
func (s *Store) ResetProfile(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"profile", "owned_cards", "deck", "skills", "lexicon", "tutorial_pages"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return err
			}
		}
		return nil
	})
}
