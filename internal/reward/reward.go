// Package reward converts run totals into the post-run report and loot.
package reward

import (
	"math"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

const (
	coinsPerWord    = 5
	victoryCoins    = 100
	duplicateCoins  = 50
	victorySP       = 1
	lootDraws       = 2
	charsPerWord    = 5.0
	millisPerMinute = 60000.0
	percent         = 100
)

// Totals are the raw counters accumulated by a run.
type Totals struct {
	Won        bool
	Wave       int
	Keystrokes int
	Correct    int
	MaxCombo   int
	Words      int
	FlowTime   time.Duration
	TotalTime  time.Duration
	CoinBonus  float64
}

// WPM returns round((keystrokes/5)/minutes), or 0 when no time elapsed.
func WPM(keystrokes int, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	minutes := float64(elapsed.Milliseconds()) / millisPerMinute
	if minutes <= 0 {
		return 0
	}
	return int(math.Round((float64(keystrokes) / charsPerWord) / minutes))
}

// Accuracy returns the floored percentage of correct keystrokes.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return correct * percent / total
}

// FlowUptime returns the floored percentage of run time spent with flow.
func FlowUptime(flow, total time.Duration) int {
	if total <= 0 {
		return 0
	}
	return int(int64(flow) * percent / int64(total))
}

// Coins returns the base coins for a run: 5 per word, +100 on victory,
// scaled by the coin bonus.
func Coins(words int, won bool, bonus float64) int {
	coins := words * coinsPerWord
	if won {
		coins += victoryCoins
	}
	if bonus > 0 {
		coins = int(math.Floor(float64(coins) * (1 + bonus)))
	}
	return coins
}

// Compute builds the end-of-run report.
func Compute(t Totals) model.RunStats {
	return model.RunStats{
		Won:               t.Won,
		Wave:              t.Wave,
		WPM:               WPM(t.Keystrokes, t.TotalTime),
		Accuracy:          Accuracy(t.Correct, t.Keystrokes),
		FlowUptime:        FlowUptime(t.FlowTime, t.TotalTime),
		BestCombo:         t.MaxCombo,
		WordsCompleted:    t.Words,
		TotalKeystrokes:   t.Keystrokes,
		CorrectKeystrokes: t.Correct,
		FlowTime:          t.FlowTime,
		TotalTime:         t.TotalTime,
		CoinsEarned:       Coins(t.Words, t.Won, t.CoinBonus),
	}
}
