// Package chart renders grouped horizontal bar charts of benchmark series
// as terminal text.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the cell width of the longest bar.
const DefaultWidth = 40

// DefaultPalette cycles through the series colors of the benchmark plots.
var DefaultPalette = []string{"#629DDD", "#A4BF7F", "#E8AA78", "#7173A9"}

// Series is one labelled data series mapping category names to values.
// An empty Color renders unstyled; +Inf marks a timed-out measurement.
type Series struct {
	Label  string
	Color  string
	Values map[string]float64
}

// BarChart is a grouped horizontal bar chart: one group per category, one
// bar per series.
type BarChart struct {
	Title      string
	Unit       string
	Width      int
	Categories []string
	Series     []Series
}

// Render draws the chart. Bars are scaled against the largest finite value
// across all series; categories missing from a series are skipped.
func (c BarChart) Render() string {
	width := c.Width
	if width <= 0 {
		width = DefaultWidth
	}

	max := 0.0
	labelWidth := 0
	for _, s := range c.Series {
		if len(s.Label) > labelWidth {
			labelWidth = len(s.Label)
		}
		for _, cat := range c.Categories {
			v, ok := s.Values[cat]
			if ok && !math.IsInf(v, 0) && v > max {
				max = v
			}
		}
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Title))
		b.WriteString("\n\n")
	}

	for _, cat := range c.Categories {
		b.WriteString(cat)
		b.WriteString("\n")
		for _, s := range c.Series {
			v, ok := s.Values[cat]
			if !ok {
				continue
			}
			b.WriteString("  ")
			b.WriteString(pad(s.Label, labelWidth))
			b.WriteString("  ")
			b.WriteString(c.renderBar(s, v, max, width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (c BarChart) renderBar(s Series, v, max float64, width int) string {
	var bar string
	var value string
	if math.IsInf(v, 0) {
		bar = strings.Repeat("█", width)
		value = "∞ (timeout)"
	} else {
		cells := 0
		if max > 0 {
			cells = int(math.Round(v / max * float64(width)))
			if cells == 0 && v > 0 {
				cells = 1
			}
		}
		bar = strings.Repeat("█", cells)
		value = fmt.Sprintf("%.1f", v)
		if c.Unit != "" {
			value += " " + c.Unit
		}
	}

	if s.Color != "" {
		bar = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(bar)
	}
	if bar == "" {
		return value
	}
	return bar + " " + value
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
