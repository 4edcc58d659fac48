package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/minseo-dev/kinsim/internal/analysis"
	"github.com/minseo-dev/kinsim/internal/chem"
	"github.com/minseo-dev/kinsim/internal/config"
	"github.com/minseo-dev/kinsim/internal/integrators"
	"github.com/minseo-dev/kinsim/internal/kinet"
	"github.com/minseo-dev/kinsim/internal/metrics"
	"github.com/minseo-dev/kinsim/internal/sim"
	"github.com/minseo-dev/kinsim/internal/storage"
	"github.com/minseo-dev/kinsim/internal/tui"
	"github.com/minseo-dev/kinsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	runName    string
	dt         float64
	tEnd       float64
	temp       float64
	integrator string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinsim",
		Short: "reaction-network kinetics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSetupFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "run", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run concentrations",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run time series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "show resolved rate constants at the run temperature",
		RunE:  showRates,
	}
	addSetupFlags(ratesCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live concentration view",
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integration loop",
		RunE:  benchNetwork,
	}
	addSetupFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-14s", name)
				for i, r := range cfg.Reactions {
					if i > 0 {
						fmt.Print("; ")
					}
					fmt.Print(r.Equation)
				}
				fmt.Println()
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, ratesCmd, liveCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in network")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	cmd.Flags().Float64Var(&tEnd, "time", 0, "total time (overrides config)")
	cmd.Flags().Float64Var(&temp, "temp", 0, "temperature in K (overrides config)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator: euler, rk4, rk45")
}

// loadSetup resolves the effective config from --preset/--config plus
// flag overrides, then parses the network and initial vector.
func loadSetup(cmd *cobra.Command) (*config.Config, *chem.Network, kinet.State, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, nil, nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	default:
		return nil, nil, nil, errors.New("need --config or --preset")
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.TEnd = tEnd
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temp
		cfg.Schedule = nil
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}

	reg := chem.NewRegistry()
	rules, err := chem.ParseSpecs(reg, cfg.Specs())
	if err != nil {
		return nil, nil, nil, err
	}
	net := chem.NewNetwork(reg, rules, cfg.TempFn())

	c0, err := reg.InitialVector(cfg.Initial)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, net, c0, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, net, c0, err := loadSetup(cmd)
	if err != nil {
		return err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(net, integ)
	s.AddMetric(metrics.NewMassDrift())
	s.AddMetric(metrics.NewPeakRate(net))

	fmt.Println(viz.HeaderStyle.Render("running simulation"))
	start := time.Now()

	result, err := s.Run(context.Background(), c0, cfg.RunConfig())
	if err != nil {
		var ierr *kinet.InstabilityError
		if errors.As(err, &ierr) {
			fmt.Println(viz.ErrorStyle.Render("run failed: " + ierr.Error()))
			fmt.Println(viz.KV("last valid state", fmt.Sprintf("%v", ierr.Last)))
		}
		return err
	}
	elapsed := time.Since(start)

	reg := net.Registry()
	equations := make([]string, len(net.Rules()))
	for i, r := range net.Rules() {
		equations[i] = r.Format(reg)
	}

	runID, err := st.Save(storage.RunMetadata{
		Name:        runName,
		Dt:          cfg.Dt,
		TEnd:        cfg.TEnd,
		Temperature: cfg.Temperature,
		Integrator:  cfg.Integrator,
		Species:     reg.Names(),
		Equations:   equations,
	}, result)
	if err != nil {
		return err
	}

	fmt.Println(viz.KV("run id", runID))
	fmt.Println(viz.KV("steps", fmt.Sprintf("%d", result.StepsTaken)))
	fmt.Println(viz.KV("elapsed", elapsed.String()))
	if n := len(result.Warnings); n > 0 {
		fmt.Println(viz.WarnStyle.Render(fmt.Sprintf("%d negative concentrations clamped to zero", n)))
	}

	printSummary(result, net)
	return nil
}

func printSummary(result *kinet.Result, net *chem.Network) {
	summary := analysis.Summarize(result, net)

	fmt.Println()
	fmt.Println(viz.HeaderStyle.Render("summary"))

	names := make([]string, 0, len(summary.Final))
	for name := range summary.Final {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(viz.KV("["+name+"] final", fmt.Sprintf("%.6f mol/L", summary.Final[name])))
	}

	for _, eq := range summary.Equilibria {
		label := "Keq (final)"
		if eq.AtSteadyState {
			label = "Keq (steady)"
		}
		fmt.Println(viz.KV(label, fmt.Sprintf("%.4f  %s", eq.Keq, eq.Equation)))
	}

	convNames := make([]string, 0, len(summary.Conversions))
	for name := range summary.Conversions {
		convNames = append(convNames, name)
	}
	sort.Strings(convNames)
	for _, name := range convNames {
		v := summary.Conversions[name]
		text := "undefined (zero initial)"
		if !math.IsNaN(v) {
			text = fmt.Sprintf("%.2f%%", v*100)
		}
		fmt.Println(viz.KV(name+" conversion", text))
	}

	for name, v := range result.Metrics {
		fmt.Println(viz.KV(name, fmt.Sprintf("%.3e", v)))
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tT_END\tDT\tTEMP\tINTEG\tSPECIES\tWARN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%.1fK\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TEnd,
			run.Dt,
			run.Temperature,
			run.Integrator,
			len(run.Species),
			run.Warnings,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Println(viz.KV("run", meta.ID))
	fmt.Println(viz.KV("samples", fmt.Sprintf("%d", len(times))))
	fmt.Println()

	series := make([][]float64, len(meta.Species))
	for i := range meta.Species {
		col := make([]float64, len(states))
		for j := range states {
			if i < len(states[j]) {
				col[j] = states[j][i]
			}
		}
		series[i] = col
	}
	fmt.Print(viz.PlotSeries(meta.Species, series))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, meta.Species, &kinet.Result{Times: times, States: states})
}

func showRates(cmd *cobra.Command, args []string) error {
	cfg, net, _, err := loadSetup(cmd)
	if err != nil {
		return err
	}

	T := cfg.Temperature
	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("rate constants at %.2f K", T)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tEQUATION\tKF\tKR\tARRHENIUS")
	reg := net.Registry()
	for _, r := range net.Rules() {
		arr := "no"
		if r.Forward.Arrhenius() {
			arr = fmt.Sprintf("A=%.3e Ea=%.0f", r.Forward.A, r.Forward.Ea)
		}
		fmt.Fprintf(w, "%d\t%s\t%.6g\t%.6g\t%s\n",
			r.Index, r.Format(reg), r.Forward.At(T), r.ReverseConstant(T), arr)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, net, c0, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}
	return tui.Run(net, integ, c0, cfg.Dt, cfg.TEnd)
}

func benchNetwork(cmd *cobra.Command, args []string) error {
	cfg, net, c0, err := loadSetup(cmd)
	if err != nil {
		return err
	}

	dts := []float64{0.001, 0.01, 0.1}
	ends := []float64{1.0, 5.0, 10.0}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T_END\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, end := range ends {
		for _, step := range dts {
			integ, err := integrators.New(cfg.Integrator)
			if err != nil {
				return err
			}
			s := sim.New(net, integ)

			start := time.Now()
			result, err := s.Run(context.Background(), c0, kinet.Config{Dt: step, TEnd: end})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				end, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}
