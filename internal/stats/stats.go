// Package stats contains run-history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/wordsiege/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a list of runs.
type Summary struct {
	Runs        int
	Wins        int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
	BestCombo   int
	Words       int
	Coins       int
	PlayTime    time.Duration
}

// WinRate is the share of won runs in [0,1].
func (s Summary) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

// Summarize aggregates runs.
func Summarize(runs []model.RunRecord) Summary {
	var s Summary
	if len(runs) == 0 {
		return s
	}
	var wpm, acc float64
	for _, r := range runs {
		st := r.Stats
		s.Runs++
		if st.Won {
			s.Wins++
		}
		wpm += float64(st.WPM)
		acc += float64(st.Accuracy)
		if st.WPM > s.BestWPM {
			s.BestWPM = st.WPM
		}
		if st.BestCombo > s.BestCombo {
			s.BestCombo = st.BestCombo
		}
		s.Words += st.WordsCompleted
		s.Coins += r.Rewards.Coins
		s.PlayTime += st.TotalTime
	}
	s.AvgWPM = wpm / float64(s.Runs)
	s.AvgAccuracy = acc / float64(s.Runs)
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clamp(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// Series extracts per-run WPM and accuracy in run order.
func Series(runs []model.RunRecord) (wpm, accuracy []float64) {
	wpm = make([]float64, len(runs))
	accuracy = make([]float64, len(runs))
	for i, r := range runs {
		wpm[i] = float64(r.Stats.WPM)
		accuracy[i] = float64(r.Stats.Accuracy)
	}
	return wpm, accuracy
}

// RenderSummary prints a summary block for runs.
func RenderSummary(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	s := Summarize(runs)
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d (won %d, %.0f%%)", s.Runs, s.Wins, s.WinRate()*100),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Best Combo: %d", s.BestCombo),
		fmt.Sprintf("Words Solved: %d", s.Words),
		fmt.Sprintf("Coins Earned: %d", s.Coins),
		fmt.Sprintf("Play Time: %s", s.PlayTime.Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints moving-average charts for WPM and accuracy. A width of
// zero sizes the charts to the terminal.
func RenderCurves(w io.Writer, runs []model.RunRecord, window, width int) error {
	if len(runs) == 0 {
		return nil
	}
	wpm, acc := Series(runs)
	if width <= 0 {
		width = ChartWidthFor(TerminalWidth())
	}
	if err := Chart(w, fmt.Sprintf("WPM (moving avg %d)", window), MovingAverage(wpm, window), width, defaultChartHeight); err != nil {
		return err
	}
	return Chart(w, fmt.Sprintf("Accuracy %% (moving avg %d)", window), MovingAverage(acc, window), width, defaultChartHeight)
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
