package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/savings-projector/internal/domain"
)

var chartStyle = lipgloss.NewStyle().Foreground(ColorBlue)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}
	return chartStyle.Render(buf.String())
}

// BarChart renders values as vertical bars, one column per value, sampling
// evenly when there are more values than columns. labels, when given, are
// printed under the first and last column.
func BarChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values)
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	tickStep := chartTickStep(maxVal)
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	if ceiling <= 0 {
		ceiling = 1
	}

	yLabelW := len(formatChartLabel(ceiling))
	if yLabelW < 4 {
		yLabelW = 4
	}
	cols := sampleColumns(len(values), width-yLabelW-2)
	eighths := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇'}
	rowH := ceiling / float64(height)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		switch row {
		case height:
			label = formatChartLabel(ceiling)
		case 1:
			label = "0"
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%*s ", yLabelW, label)))
		b.WriteString(dimStyle.Render("│"))

		rowBottom := float64(row-1) * rowH
		var line strings.Builder
		for _, idx := range cols {
			fill := (values[idx] - rowBottom) / rowH
			switch {
			case fill >= 1:
				line.WriteRune('█')
			case fill <= 0:
				line.WriteRune(' ')
			default:
				line.WriteRune(eighths[int(fill*8)])
			}
		}
		b.WriteString(chartStyle.Render(line.String()))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", yLabelW+1))
	b.WriteString(dimStyle.Render("└" + strings.Repeat("─", len(cols))))
	b.WriteString("\n")

	if len(labels) == len(values) {
		first, last := labels[cols[0]], labels[cols[len(cols)-1]]
		gap := len(cols) - len(first) - len(last)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(strings.Repeat(" ", yLabelW+2))
		b.WriteString(mutedStyle.Render(first + strings.Repeat(" ", gap) + last))
		b.WriteString("\n")
	}
	return b.String()
}

// SeriesChart draws the balance curve of a projection, labelled by age.
func SeriesChart(series []domain.AgePoint, width, height int) string {
	values := make([]float64, len(series))
	labels := make([]string, len(series))
	for i, pt := range series {
		values[i] = pt.Balance.InexactFloat64()
		labels[i] = "age " + intToString(pt.Age)
	}
	return BarChart(values, labels, width, height)
}

// sampleColumns picks up to maxCols evenly spaced indexes, always keeping the first and last.
func sampleColumns(n, maxCols int) []int {
	if maxCols < 2 {
		maxCols = 2
	}
	if n <= maxCols {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, maxCols)
	for c := range idx {
		idx[c] = c * (n - 1) / (maxCols - 1)
	}
	return idx
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
