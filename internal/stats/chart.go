package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultChartHeight  = 6
	minChartWidth       = 10
	axisWidth           = 8
	terminalWidthBackup = 80
)

var blocks = []rune(" ▁▂▃▄▅▆▇█")

// Chart renders a block chart of values resampled to width columns. Each of
// the height rows holds eight levels.
func Chart(w io.Writer, title string, values []float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if width < minChartWidth {
		width = minChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	cols := resample(values, width)
	lo, hi := minMax(cols)
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	levels := height * (len(blocks) - 1)

	if _, err := fmt.Fprintf(w, "%s  min=%.2f max=%.2f\n", title, lo, hi); err != nil {
		return err
	}
	for row := height - 1; row >= 0; row-- {
		label := ""
		switch row {
		case height - 1:
			label = fmt.Sprintf("%.0f", hi)
		case 0:
			label = fmt.Sprintf("%.0f", lo)
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%*s │", axisWidth-2, label))
		for _, v := range cols {
			level := int(math.Round((v - lo) / (hi - lo) * float64(levels)))
			fill := clamp(level-row*(len(blocks)-1), 0, len(blocks)-1)
			b.WriteRune(blocks[fill])
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// ChartWidthFor computes a chart width that fits within the total width.
func ChartWidthFor(totalWidth int) int {
	if totalWidth-axisWidth < minChartWidth {
		return minChartWidth
	}
	return totalWidth - axisWidth
}

// TerminalWidth returns the stdout width, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// resample averages buckets when shrinking and repeats samples when growing.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	for i := 0; i < width; i++ {
		start := i * n / width
		end := (i + 1) * n / width
		if end <= start {
			out[i] = values[start]
			continue
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
