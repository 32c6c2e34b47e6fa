// Package viz renders broadening curves for the terminal.
//
// Curves come from one [broadening.Snapshot] so all four functions share a
// parameter set. Rendering uses asciigraph for the chart and lipgloss for
// the surrounding text:
//
//   - [Plot]: all four functions over 0-180 degrees with a legend
//   - [Theme]: color scheme shared by the CLI and the explorer
//
// Axis labels follow the usual resolution plot: "Angle [°]" and
// "Resolution [dE/E]".
package viz
