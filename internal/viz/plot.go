package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/doppler/internal/broadening"
)

const (
	AxisX = "Angle [°]"
	AxisY = "Resolution [dE/E]"
)

// Plot order: the total first, then the individual contributions.
var plotOrder = []broadening.Kind{
	broadening.Total,
	broadening.Energy,
	broadening.SolidAngle,
	broadening.Beta,
}

type PlotOptions struct {
	Height  int
	Width   int
	Samples int
	Theme   Theme
	// Kinds restricts the plotted functions; empty means all four.
	Kinds []broadening.Kind
}

// Series evaluates kind k of snap at n evenly spaced angles across the
// display domain. Non-finite values become NaN so the chart leaves a gap.
func Series(snap *broadening.Snapshot, k broadening.Kind, n int) []float64 {
	if n < 2 {
		n = 2
	}
	step := (broadening.MaxAngleDeg - broadening.MinAngleDeg) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		v := snap.Eval(k, broadening.MinAngleDeg+float64(i)*step)
		if !broadening.Finite(v) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// Plot renders the broadening functions of snap.
func Plot(snap *broadening.Snapshot, opts PlotOptions) string {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = plotOrder
	}
	theme := opts.Theme
	if theme.Series == nil {
		theme = ThemeClassic
	}

	data := make([][]float64, len(kinds))
	colors := make([]asciigraph.AnsiColor, len(kinds))
	legends := make([]string, len(kinds))
	for i, k := range kinds {
		data[i] = Series(snap, k, opts.Samples)
		colors[i] = theme.Series[k]
		legends[i] = k.String()
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(4),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(AxisY),
	)

	var b strings.Builder
	b.WriteString(graph)
	b.WriteString("\n")
	b.WriteString(xAxisFooter(opts.Width))
	return b.String()
}

func xAxisFooter(width int) string {
	left := fmt.Sprintf("%g°", broadening.MinAngleDeg)
	right := fmt.Sprintf("%g°", broadening.MaxAngleDeg)
	gap := width - len([]rune(left)) - len([]rune(right)) - len([]rune(AxisX))
	if gap < 2 {
		return fmt.Sprintf("%s %s %s", left, AxisX, right)
	}
	pad := strings.Repeat(" ", gap/2)
	return left + pad + AxisX + strings.Repeat(" ", gap-gap/2) + right
}
