package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/oscillab/internal/config"
	"github.com/san-kum/oscillab/internal/control"
	"github.com/san-kum/oscillab/internal/dynamo"
	"github.com/san-kum/oscillab/internal/integrators"
	"github.com/san-kum/oscillab/internal/laplace"
	"github.com/san-kum/oscillab/internal/metrics"
	"github.com/san-kum/oscillab/internal/oscillator"
	"github.com/san-kum/oscillab/internal/solver"
	"github.com/san-kum/oscillab/internal/storage"
	"github.com/san-kum/oscillab/internal/tui"
	"github.com/san-kum/oscillab/internal/viz"
)

var (
	dataDir string

	mass      float64
	damping   float64
	stiffness float64
	amplitude float64
	omega     float64
	x0        float64
	v0        float64
	duration  float64
	points    int

	maxFreq     float64
	sweepPoints int
	asCSV       bool

	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oscillab",
		Short: "damped harmonic oscillator simulation and laplace analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oscillab", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "integrate the equation of motion",
		RunE:  runSolve,
	}
	addSystemFlags(solveCmd)
	solveCmd.Flags().Float64Var(&x0, "x0", 1.0, "initial position")
	solveCmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")
	solveCmd.Flags().Float64Var(&duration, "time", 20.0, "simulation time")
	solveCmd.Flags().IntVar(&points, "points", 5000, "output samples")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	bodeCmd := &cobra.Command{
		Use:   "bode",
		Short: "frequency response, poles and stability",
		RunE:  runBode,
	}
	addSystemFlags(bodeCmd)
	bodeCmd.Flags().Float64Var(&maxFreq, "max-freq", laplace.DefaultMaxFreq, "sweep upper bound (rad/s)")
	bodeCmd.Flags().IntVar(&sweepPoints, "points", laplace.DefaultPoints, "sweep samples")
	bodeCmd.Flags().BoolVar(&asCSV, "csv", false, "write sweep as CSV to stdout")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare rk45 and rk4 against the closed-form solution",
		RunE:  runCompare,
	}
	addSystemFlags(compareCmd)
	compareCmd.Flags().Float64Var(&x0, "x0", 1.0, "initial position")
	compareCmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "simulation time")
	compareCmd.Flags().IntVar(&points, "points", 1000, "output samples")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				p := cfg.Params()
				fmt.Printf("%-12s m=%.2f c=%.2f k=%.2f F0=%.2f w=%.2f (%s)\n",
					name, p.Mass, p.Damping, p.Stiffness,
					cfg.Forcing.Amplitude, cfg.Forcing.Omega, p.Regime())
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive parameter explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(solveCmd, bodeCmd, compareCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", oscillator.DefaultMass, "mass")
	cmd.Flags().Float64Var(&damping, "damping", oscillator.DefaultDamping, "damping coefficient")
	cmd.Flags().Float64Var(&stiffness, "stiffness", oscillator.DefaultStiffness, "spring constant")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 10.0, "forcing amplitude")
	cmd.Flags().Float64Var(&omega, "omega", 5.0, "forcing frequency (rad/s)")
}

func applyConfig(cmd *cobra.Command) error {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		applyValues(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyValues(cmd, cfg)
	}

	return nil
}

// applyValues copies config values into flag variables; CLI flags win.
func applyValues(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("mass") {
		mass = cfg.System.Mass
	}
	if !cmd.Flags().Changed("damping") {
		damping = cfg.System.Damping
	}
	if !cmd.Flags().Changed("stiffness") {
		stiffness = cfg.System.Stiffness
	}
	if !cmd.Flags().Changed("amplitude") {
		amplitude = cfg.Forcing.Amplitude
	}
	if !cmd.Flags().Changed("omega") {
		omega = cfg.Forcing.Omega
	}
	if !cmd.Flags().Changed("x0") {
		x0 = cfg.Initial.Position
	}
	if !cmd.Flags().Changed("v0") {
		v0 = cfg.Initial.Velocity
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Sim.Duration
	}
	if !cmd.Flags().Changed("points") {
		points = cfg.Sim.Points
	}
}

func params() (oscillator.Params, oscillator.Forcing) {
	return oscillator.Params{Mass: mass, Damping: damping, Stiffness: stiffness},
		oscillator.Forcing{Amplitude: amplitude, Omega: omega}
}

func runSolve(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	sys, forcing := params()
	init := oscillator.Initial{Position: x0, Velocity: v0}
	spec := solver.Spec{Duration: duration, Points: points}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := solver.New()
	s.AddMetric(metrics.NewEnergy(sys.Mass, sys.Stiffness))

	fmt.Println("integrating...")
	start := time.Now()

	result, err := s.Solve(sys, forcing, init, spec)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(sys, forcing, init, spec, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "natural frequency\t%.4f rad/s\n", sys.NaturalFrequency())
	fmt.Fprintf(w, "damping ratio\t%.4f (%s)\n", sys.DampingRatio(), sys.Regime())
	fmt.Fprintf(w, "internal steps\t%d\n", result.Steps)
	fmt.Fprintf(w, "energy drift\t%.3e\n", result.EnergyDrift)
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6f\n", name, val)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Trajectory(result, viz.DefaultWidth, viz.DefaultHeight))

	return nil
}

func runBode(cmd *cobra.Command, args []string) error {
	sys, forcing := params()

	resp, err := laplace.Analyze(sys, forcing, laplace.Options{MaxFreq: maxFreq, Points: sweepPoints})
	if err != nil {
		return err
	}

	if asCSV {
		return storage.WriteBodeCSV(os.Stdout, resp)
	}

	fmt.Printf("H(s) = 1 / (%.3g s^2 + %.3g s + %.3g)\n\n", sys.Mass, sys.Damping, sys.Stiffness)
	fmt.Println(viz.PoleSummary(resp))
	fmt.Println(viz.Bode(resp, viz.DefaultWidth, viz.DefaultHeight))

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	sys, forcing := params()
	init := oscillator.Initial{Position: x0, Velocity: v0}
	spec := solver.Spec{Duration: duration, Points: points}

	start := time.Now()
	result, err := solver.Solve(sys, forcing, init, spec)
	if err != nil {
		return err
	}
	rk45Time := time.Since(start)

	exact := laplace.AnalyticalPosition(result.Times, sys, forcing, init)

	start = time.Now()
	rk4Pos := fixedStepTrajectory(sys, forcing, init, result.Times)
	rk4Time := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMAX |x - x_exact|\tTIME")
	fmt.Fprintf(w, "rk45 (adaptive)\t%.3e\t%v\n", maxAbsError(result.Position, exact), rk45Time)
	fmt.Fprintf(w, "rk4 (fixed)\t%.3e\t%v\n", maxAbsError(rk4Pos, exact), rk4Time)
	return w.Flush()
}

// fixedStepTrajectory integrates with RK4 using the output grid as steps.
func fixedStepTrajectory(p oscillator.Params, f oscillator.Forcing, init oscillator.Initial, times []float64) []float64 {
	osc := oscillator.New(p)
	driven := dynamo.NewDriven(osc, control.NewSine(f.Amplitude, f.Omega))
	integ := integrators.NewRK4()

	x := dynamo.State{init.Position, init.Velocity}
	out := make([]float64, len(times))
	out[0] = x[0]

	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		x = integ.Step(driven, x, nil, times[i-1], dt)
		out[i] = x[0]
	}
	return out
}

func maxAbsError(got, want []float64) float64 {
	worst := 0.0
	for i := range got {
		worst = math.Max(worst, math.Abs(got[i]-want[i]))
	}
	return worst
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
	fmt.Fprintln(w, "ID\tTIME\tM\tC\tK\tF0\tW\tDURATION\tREGIME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.1fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mass,
			run.Damping,
			run.Stiffness,
			run.Amplitude,
			run.Omega,
			run.Duration,
			run.Regime,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, position, velocity, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("m=%.2f c=%.2f k=%.2f F0=%.2f w=%.2f (%s)\n\n",
		meta.Mass, meta.Damping, meta.Stiffness, meta.Amplitude, meta.Omega, meta.Regime)

	result := &solver.Result{Times: times, Position: position, Velocity: velocity}
	fmt.Println(viz.Trajectory(result, viz.DefaultWidth, viz.DefaultHeight))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, position, velocity, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, times, position, velocity)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, position, velocity, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity"}); err != nil {
		return err
	}

	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(position[i], 'g', -1, 64),
			strconv.FormatFloat(velocity[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
