package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	scene      string
	integrator string
	dt         float64
	duration   float64
	seed       int64
	frameRate  int
	parallel   bool
	ensemble   int
	debug      bool
	outFile    string
	energyFile string
	trailEvery int
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

// main registers the commands and flags and runs the live view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "2D gravity sandbox",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&scene, "scene", config.DefaultScene, "initial scene")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "parallel force accumulation")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write diagnostic log to debug.log")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal sandbox",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record telemetry",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&ensemble, "ensemble", 1, "number of runs with consecutive seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "run headless and draw the final bodies as SVG",
		RunE:  exportSVG,
	}
	svgCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	svgCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "gravsim.svg", "output file")
	svgCmd.Flags().StringVar(&energyFile, "energy", "", "also plot kinetic energy to this SVG file")
	svgCmd.Flags().IntVar(&trailEvery, "trail", 4, "record a trail point every n ticks (0 = no trails)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s scene=%s integrator=%s bodies=%d\n", name, p.Scene, p.Integrator, p.Spawn.Count)
			}
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the timestep and report stability",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	sweepCmd.Flags().Float64Var(&sweepMin, "dt-min", 0.005, "smallest timestep")
	sweepCmd.Flags().Float64Var(&sweepMax, "dt-max", 0.1, "largest timestep")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of timesteps")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, svgCmd, presetsCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Scene = scene
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("parallel") {
		cfg.Compute.Parallel = parallel
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cfg *config.Config, logger *log.Logger) (*sim.Engine, error) {
	e, err := sim.New(cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	e.SetLogger(logger)
	if err := sim.Populate(e, cfg.Scene); err != nil {
		return nil, err
	}
	return e, nil
}

func headlessLogger() *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "gravsim: ", log.LstdFlags)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if debug {
		f, err := tea.LogToFile("debug.log", "gravsim")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	e, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	return viz.RunLive(e, cfg.FPS)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ensemble < 1 {
		return fmt.Errorf("ensemble must be at least 1, got %d", ensemble)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx := context.Background()
	fmt.Printf("running %s scene (%d run(s))...\n", cfg.Scene, ensemble)
	start := time.Now()

	var results []*sim.Result
	var seeds []int64
	if ensemble == 1 {
		e, err := newEngine(cfg, headlessLogger())
		if err != nil {
			return err
		}
		for _, m := range automation.Metrics(cfg) {
			e.AddMetric(m)
		}
		res, err := sim.Run(ctx, e, cfg.RunConfig())
		if err != nil {
			return err
		}
		results, seeds = []*sim.Result{res}, []int64{cfg.Seed}
	} else {
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		results, err = sim.NewEnsemble(cfg.SimConfig(), cfg.Scene, ensemble, cfg.Seed).
			WithMetrics(func() []sim.Metric { return automation.Metrics(cfg) }).
			Run(ctx, cfg.RunConfig())
		if err != nil {
			return err
		}
		for i := range results {
			seeds = append(seeds, cfg.Seed+int64(i))
		}
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	for i, res := range results {
		runID, err := st.Save(storage.RunMetadata{
			Scene:      cfg.Scene,
			Seed:       seeds[i],
			Dt:         cfg.Dt,
			Duration:   cfg.Duration,
			Integrator: cfg.Integrator,
		}, res)
		if err != nil {
			return err
		}

		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("steps: %d  bodies: %d  momentum drift: %.3g\n", res.StepsTaken, len(res.Final), res.MomentumDrift)
		for _, err := range res.Errors {
			fmt.Printf("  error: %v\n", err)
		}
		fmt.Println("metrics:")
		for name, val := range res.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tINTEG\tBODIES\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\t%.3g\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.FinalBodies,
			run.MomentumDrift,
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

	samples, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(samples))

	kinetic := make([]float64, len(samples))
	momentum := make([]float64, len(samples))
	for i, s := range samples {
		kinetic[i] = s.Kinetic
		momentum[i] = s.Momentum.Len()
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"kinetic energy", kinetic},
		{"|momentum|", momentum},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg, headlessLogger())
	if err != nil {
		return err
	}

	var trails *export.TrailRecorder
	if trailEvery > 0 {
		trails = export.NewTrailRecorder(trailEvery)
		e.AddObserver(trails)
	}

	res, err := sim.Run(context.Background(), e, cfg.RunConfig())
	if err != nil {
		return err
	}
	for _, err := range res.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	var paths map[physics.BodyID][]dynamo.Vec2
	if trails != nil {
		paths = trails.Trails
	}
	svg := export.BodiesToSVG(res.Final, paths, cfg.World.Width, cfg.World.Height)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bodies)\n", outFile, len(res.Final))

	if energyFile != "" {
		points := make([]struct{ X, Y float64 }, len(res.Samples))
		for i, s := range res.Samples {
			points[i] = struct{ X, Y float64 }{s.Time, s.Kinetic}
		}
		plot := export.TrajectoryToSVG(points, 800, 300, "#00ccff")
		if plot == "" {
			return fmt.Errorf("not enough samples to plot energy")
		}
		if err := os.WriteFile(energyFile, []byte(plot), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", energyFile)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(context.Background(), scenario, base, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tRUN\tSCENE\tINTEG\tSTEPS\tDRIFT")
	for i, r := range results {
		runID, err := st.Save(storage.RunMetadata{
			Scene:      r.Config.Scene,
			Seed:       r.Config.Seed,
			Dt:         r.Config.Dt,
			Duration:   r.Config.Duration,
			Integrator: r.Config.Integrator,
		}, r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.3g\n",
			i+1, runID, r.Config.Scene, r.Config.Integrator, r.Result.StepsTaken, r.Result.MomentumDrift)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), automation.DtSweep{
		DtMin:    sweepMin,
		DtMax:    sweepMax,
		NumSteps: sweepSteps,
	}, base, os.Stderr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tDRIFT\tMAX KE\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%.5f\t%d\t%.3g\t%.3g\t%v\n", r.Dt, r.Steps, r.MomentumDrift, r.MaxKinetic, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	stable, unstable := automation.SweepStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}
