package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/doppler/internal/broadening"
	"github.com/san-kum/doppler/internal/viz"
)

const (
	angleStep     = 5.0
	minPlotWidth  = 30
	panelWidth    = 48
	defaultHeight = 15
)

// ParamsMsg replaces the full parameter set, e.g. after a config reload.
type ParamsMsg struct {
	Params broadening.Params
}

// ErrMsg reports an error from outside the program, such as a config file
// that failed to load.
type ErrMsg struct {
	Err error
}

// Step size per parameter for the increase/decrease keys.
var paramSteps = map[string]float64{
	broadening.ParamEnergy:          0.05,
	broadening.ParamBeta:            0.01,
	broadening.ParamOpeningAngle:    1,
	broadening.ParamResolutionConst: 0.005,
	broadening.ParamBetaSpread:      0.0005,
}

// Explorer is an interactive view of a broadening model: parameters are
// tuned from the keyboard and the curves redraw from the new snapshot.
type Explorer struct {
	model    *broadening.Model
	initial  broadening.Params
	selected int
	angle    float64
	theme    viz.Theme
	styles   viz.Styles
	keys     keyMap
	help     help.Model
	plot     viz.PlotOptions
	status   string
	err      error
}

func New(m *broadening.Model, plot viz.PlotOptions) Explorer {
	if plot.Theme.Series == nil {
		plot.Theme = viz.ThemeClassic
	}
	if plot.Height <= 0 {
		plot.Height = defaultHeight
	}
	if plot.Width < minPlotWidth {
		plot.Width = minPlotWidth
	}
	return Explorer{
		model:   m,
		initial: m.Params(),
		angle:   90,
		theme:   plot.Theme,
		styles:  viz.NewStyles(plot.Theme),
		keys:    newKeyMap(),
		help:    help.New(),
		plot:    plot,
	}
}

func (e Explorer) Init() tea.Cmd {
	return nil
}

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, e.keys.Quit):
			return e, tea.Quit
		case key.Matches(msg, e.keys.Next):
			e.selected = (e.selected + 1) % len(broadening.ParamNames)
		case key.Matches(msg, e.keys.Increase):
			e.adjust(1)
		case key.Matches(msg, e.keys.Decrease):
			e.adjust(-1)
		case key.Matches(msg, e.keys.Left):
			e.angle = math.Max(broadening.MinAngleDeg, e.angle-angleStep)
		case key.Matches(msg, e.keys.Right):
			e.angle = math.Min(broadening.MaxAngleDeg, e.angle+angleStep)
		case key.Matches(msg, e.keys.Reset):
			e.apply(e.model.SetParameters(e.initial), "reset")
		case key.Matches(msg, e.keys.Theme):
			e.theme = viz.NextTheme(e.theme)
			e.styles = viz.NewStyles(e.theme)
			e.plot.Theme = e.theme
		case key.Matches(msg, e.keys.Help):
			e.help.ShowAll = !e.help.ShowAll
		}
	case tea.WindowSizeMsg:
		e.plot.Width = max(minPlotWidth, msg.Width-panelWidth-12)
		e.plot.Height = max(5, min(defaultHeight, msg.Height-12))
		e.help.Width = msg.Width
	case ParamsMsg:
		e.apply(e.model.SetParameters(msg.Params), "config reloaded")
	case ErrMsg:
		e.err = msg.Err
	}
	return e, nil
}

func (e *Explorer) adjust(dir float64) {
	name := broadening.ParamNames[e.selected]
	step := paramSteps[name]
	val := e.model.GetParams()[name] + dir*step
	// drop float noise left by repeated steps
	val = math.Round(val/step*1e6) / 1e6 * step
	e.apply(e.model.SetParam(name, val), fmt.Sprintf("%s = %g", name, val))
}

func (e *Explorer) apply(err error, status string) {
	if err != nil {
		e.err = err
		return
	}
	e.err = nil
	e.status = status
}

func (e Explorer) View() string {
	snap := e.model.Snapshot()
	st := e.styles

	graph := st.Graph.Render(viz.Plot(snap, e.plot))

	var s strings.Builder
	s.WriteString(st.Header.Render("DOPPLER BROADENING") + "\n")

	s.WriteString("PARAMETERS\n")
	params := snap.Params().Map()
	for i, name := range broadening.ParamNames {
		line := fmt.Sprintf("%-18s %10.5g", name, params[name])
		if i == e.selected {
			s.WriteString(st.Active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.Value.Render(line) + "\n")
		}
	}

	bd := snap.Breakdown(e.angle)
	s.WriteString(fmt.Sprintf("\nAT %g°\n", e.angle))
	for _, k := range broadening.Kinds {
		label := k.String()
		if k == bd.Dominant {
			label += " *"
		}
		s.WriteString(st.Label.Render(label) + " " + st.Value.Render(formatValue(bd.Value(k))) + "\n")
	}

	s.WriteString("\n")
	if e.err != nil {
		s.WriteString(st.Error.Render(wrap(e.err.Error(), panelWidth-4)) + "\n")
	} else if e.status != "" {
		s.WriteString(st.Muted.Render(e.status) + "\n")
	}
	s.WriteString("\n" + e.help.View(e.keys))

	panel := st.Panel.Width(panelWidth).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, graph, panel)
}

func formatValue(v float64) string {
	if !broadening.Finite(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.6f", v)
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
