package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/doppler/internal/broadening"
	"github.com/san-kum/doppler/internal/config"
	"github.com/san-kum/doppler/internal/logx"
	"github.com/san-kum/doppler/internal/storage"
	"github.com/san-kum/doppler/internal/tui"
	"github.com/san-kum/doppler/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	dataDir    string
	configFile string
	preset     string
	profile    string
	logLevel   string
	logJSON    bool
	// physical parameters
	energyMeV       float64
	beta            float64
	dThetaDeg       float64
	resolutionConst float64
	dBeta           float64
	// output
	jsonOut   bool
	plotKinds []string
	height    int
	width     int
	samples   int
	theme     string
	// tui
	watch   bool
	logFile string
	// save
	note string

	log = logx.Nop()
)

var defaultAngles = []float64{0, 30, 60, 90, 120, 150, 180}

// main wires the doppler CLI; with no subcommand it opens the interactive explorer.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "doppler",
		Short:         "doppler broadening of gamma-ray detector resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logx.New(logx.Config{Level: logLevel, JSON: logJSON}, os.Stderr)
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "profile directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.StringVar(&profile, "profile", "", "use a saved profile")
	pf.StringVar(&logLevel, "log-level", "info", "log level")
	pf.BoolVar(&logJSON, "log-json", false, "log as json")
	pf.Float64Var(&energyMeV, "energy", config.DefaultEnergyMeV, "emitted gamma-ray energy [MeV]")
	pf.Float64Var(&beta, "beta", config.DefaultBeta, "source velocity [c]")
	pf.Float64Var(&dThetaDeg, "dtheta", config.DefaultDThetaDeg, "detector angular half acceptance [deg]")
	pf.Float64Var(&resolutionConst, "res", config.DefaultResolutionConst, "intrinsic resolution constant [sqrt(MeV)]")
	pf.Float64Var(&dBeta, "dbeta", config.DefaultDBeta, "width of the beta distribution")
	pf.IntVar(&height, "height", config.DefaultPlotHeight, "plot height")
	pf.IntVar(&width, "width", config.DefaultPlotWidth, "plot width")
	pf.IntVar(&samples, "samples", config.DefaultPlotSamples, "samples across 0-180 degrees")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload parameters when the config file changes")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file while the explorer runs")

	evalCmd := &cobra.Command{
		Use:   "eval [angle...]",
		Short: "evaluate the broadening functions at angles in degrees",
		RunE:  evalAngles,
	}
	evalCmd.Flags().BoolVar(&jsonOut, "json", false, "output json")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the broadening functions over 0-180 degrees",
		Args:  cobra.NoArgs,
		RunE:  plotCurves,
	}
	plotCmd.Flags().StringSliceVar(&plotKinds, "only", nil, "plot only these functions (e.g. totalBroadening)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive parameter explorer",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&watch, "watch", false, "reload parameters when the config file changes")
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file while the explorer runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "save the resolved parameters as a profile",
		Args:  cobra.ExactArgs(1),
		RunE:  saveProfile,
	}
	saveCmd.Flags().StringVar(&note, "note", "", "free-form note")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved profiles",
		Args:  cobra.NoArgs,
		RunE:  listProfiles,
	}

	showCmd := &cobra.Command{
		Use:   "show [profile_id]",
		Short: "print a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE:  showProfile,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the resolved parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(evalCmd, plotCmd, tuiCmd, presetsCmd, saveCmd, listCmd, showCmd, initCmd)
	return rootCmd
}

func plotOptions(cfg *config.Config) viz.PlotOptions {
	return viz.PlotOptions{
		Height:  cfg.Plot.Height,
		Width:   cfg.Plot.Width,
		Samples: cfg.Plot.Samples,
		Theme:   viz.GetTheme(cfg.Plot.Theme),
	}
}

func parseAngles(args []string) ([]float64, error) {
	if len(args) == 0 {
		return defaultAngles, nil
	}
	angles := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "°"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid angle %q: %w", a, err)
		}
		if v < broadening.MinAngleDeg || v > broadening.MaxAngleDeg {
			log.Warn().Float64("angle", v).Msg("angle outside 0-180 degrees")
		}
		angles = append(angles, v)
	}
	return angles, nil
}

func evalAngles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	angles, err := parseAngles(args)
	if err != nil {
		return err
	}

	m, err := broadening.NewFromParams(cfg.Params)
	if err != nil {
		return err
	}
	snap := m.Snapshot()

	rows := make([]broadening.Breakdown, len(angles))
	for i, th := range angles {
		rows[i] = snap.Breakdown(th)
		if !broadening.Finite(rows[i].Total) {
			log.Warn().Float64("angle", th).Msg("non-finite resolution")
		}
	}

	if jsonOut {
		out := evalOutput{Params: snap.Params(), Rows: make([]evalRow, len(rows))}
		for i, r := range rows {
			out.Rows[i] = evalRow{
				ThetaDeg:   r.ThetaDeg,
				Energy:     jsonValue(r.Energy),
				SolidAngle: jsonValue(r.SolidAngle),
				Beta:       jsonValue(r.Beta),
				Total:      jsonValue(r.Total),
				Dominant:   r.Dominant.ID(),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printParams(snap.Params())
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tENERGY\tSOLID_ANGLE\tBETA\tTOTAL\tDOMINANT")
	for _, r := range rows {
		fmt.Fprintf(w, "%g\t%s\t%s\t%s\t%s\t%s\n",
			r.ThetaDeg,
			formatValue(r.Energy),
			formatValue(r.SolidAngle),
			formatValue(r.Beta),
			formatValue(r.Total),
			r.Dominant.ID(),
		)
	}
	return w.Flush()
}

type evalOutput struct {
	Params broadening.Params `json:"params"`
	Rows   []evalRow         `json:"rows"`
}

// evalRow mirrors broadening.Breakdown; non-finite values encode as null.
type evalRow struct {
	ThetaDeg   float64  `json:"theta_deg"`
	Energy     *float64 `json:"energy"`
	SolidAngle *float64 `json:"solid_angle"`
	Beta       *float64 `json:"beta"`
	Total      *float64 `json:"total"`
	Dominant   string   `json:"dominant"`
}

func jsonValue(v float64) *float64 {
	if !broadening.Finite(v) {
		return nil
	}
	return &v
}

func formatValue(v float64) string {
	if !broadening.Finite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func printParams(p broadening.Params) {
	fmt.Printf("energy: %g MeV\n", p.EnergyMeV)
	fmt.Printf("beta: %g\n", p.Beta)
	fmt.Printf("dtheta: %g deg (%.6f rad)\n", p.DThetaDeg, p.DThetaRad())
	fmt.Printf("resolution const: %g sqrt(MeV)\n", p.ResolutionConst)
	fmt.Printf("dbeta: %g\n", p.DBeta)
}

func plotCurves(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts := plotOptions(cfg)
	for _, name := range plotKinds {
		k, err := broadening.ParseKind(name)
		if err != nil {
			ids := make([]string, len(broadening.Kinds))
			for i, kk := range broadening.Kinds {
				ids[i] = kk.ID()
			}
			if hint, found := config.Suggest(name, ids); found {
				return fmt.Errorf("%w (did you mean %q?)", err, hint)
			}
			return err
		}
		opts.Kinds = append(opts.Kinds, k)
	}

	m, err := broadening.NewFromParams(cfg.Params)
	if err != nil {
		return err
	}

	printParams(m.Params())
	fmt.Println()
	fmt.Println(viz.Plot(m.Snapshot(), opts))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	l, err := resolveLayers(cmd)
	if err != nil {
		return err
	}
	cfg := l.cfg
	if watch && configFile == "" {
		return fmt.Errorf("--watch needs --config")
	}

	// the explorer owns the terminal, so logs go to a file or nowhere
	log = logx.Nop()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		log = logx.New(logx.Config{Level: cfg.Log.Level, JSON: true}, f)
	}

	m, err := broadening.NewFromParams(cfg.Params)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(tui.New(m, plotOptions(cfg)), tea.WithAltScreen())
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})

	if watch {
		g.Go(func() error {
			err := config.Watch(gctx, configFile, l.base,
				func(c *config.Config) {
					if err := l.overlay(cmd, c); err != nil {
						log.Warn().Err(err).Msg("config reload rejected")
						p.Send(tui.ErrMsg{Err: err})
						return
					}
					log.Info().Str("path", configFile).Msg("config reloaded")
					p.Send(tui.ParamsMsg{Params: c.Params})
				},
				func(err error) {
					log.Warn().Err(err).Msg("config reload failed")
					p.Send(tui.ErrMsg{Err: err})
				},
			)
			if err != nil {
				p.Send(tui.ErrMsg{Err: err})
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})

	return g.Wait()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENERGY\tBETA\tDTHETA\tRES\tDBETA")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\n",
			name, p.EnergyMeV, p.Beta, p.DThetaDeg, p.ResolutionConst, p.DBeta)
	}
	return w.Flush()
}

func saveProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(args[0], note, cfg.Params)
	if err != nil {
		return err
	}
	log.Info().Str("id", id).Str("dir", cfg.DataDir).Msg("profile saved")
	fmt.Printf("profile id: %s\n", id)
	return nil
}

func listProfiles(cmd *cobra.Command, args []string) error {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dir)
	profiles, err := st.List()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("no profiles found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tENERGY\tBETA\tDTHETA\tRES\tDBETA")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%g\n",
			p.ID,
			p.Name,
			p.Timestamp.Format("2006-01-02 15:04:05"),
			p.Params.EnergyMeV,
			p.Params.Beta,
			p.Params.DThetaDeg,
			p.Params.ResolutionConst,
			p.Params.DBeta,
		)
	}
	return w.Flush()
}

func showProfile(cmd *cobra.Command, args []string) error {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dir)
	prof, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prof)
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	log.Info().Str("path", args[0]).Msg("config written")
	return nil
}
