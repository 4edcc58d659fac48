package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// PlotSeries renders one terminal graph per species, concentration
// against time.
func PlotSeries(names []string, series [][]float64) string {
	var b strings.Builder
	for i, name := range names {
		if i >= len(series) || len(series[i]) == 0 {
			continue
		}
		graph := asciigraph.Plot(series[i],
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("[%s] vs time (mol/L)", name)),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Sparkline renders a compact single-series graph for live views.
func Sparkline(data []float64, caption string, height int) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(plotWidth-10),
		asciigraph.Caption(caption),
	)
}
