package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/sticksim/internal/config"
	"github.com/san-kum/sticksim/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	driver     string
	dt         float64
	duration   float64
	seed       int64
	gravity    float64
	passes     int
	minLength  bool
	autoChain  bool
	damping    float64
	segments   int
	segLength  float64
	amplitude  float64
	period     float64
	theme      string
	outFile    string
	svgWidth   int
	svgHeight  int
	sweepLimit int
	numSeeds   int
	metricName string
	saveRuns   bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "sticksim",
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
})

func main() {
	rootCmd := &cobra.Command{
		Use:   "sticksim",
		Short: "verlet rope and cloth sandbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sticksim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a headless simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	sceneFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "interactive editor and live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	sceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "chalk", "color theme")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark step throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	sceneFlags(benchCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "residual after n solver passes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepPasses,
	}
	sceneFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepLimit, "max-passes", 64, "largest pass count")

	svgCmd := &cobra.Command{
		Use:   "svg [scene]",
		Short: "render a scene to svg after simulating it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	sceneFlags(svgCmd)
	svgFlags(svgCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune [scene]",
		Short: "grid search passes and dt for the least stretch",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneScene,
	}
	sceneFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metricName, "metric", "stretch_max", "metric to minimise")

	seedsCmd := &cobra.Command{
		Use:   "seeds [scene]",
		Short: "repeat a run across solver seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  seedEnsemble,
	}
	sceneFlags(seedsCmd)
	seedsCmd.Flags().IntVar(&numSeeds, "runs", 8, "number of seeds")
	seedsCmd.Flags().StringVar(&metricName, "metric", "stretch_max", "metric to compare")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRuns, "save", false, "store every step, not only those marked save")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot residual and tip trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "tip oscillation spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [run_id]",
		Short: "render the tip trace of a run to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  traceRun,
	}
	svgFlags(traceCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes and drivers",
		RunE:  listScenes,
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, sweepCmd, svgCmd, tuneCmd,
		seedsCmd, scenarioCmd, listCmd, plotCmd, exportCmd, analyzeCmd,
		traceCmd, presetsCmd, scenesCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func sceneFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&driver, "driver", d.Driver, "anchor driver")
	f.Float64Var(&dt, "dt", d.Dt, "timestep")
	f.Float64Var(&duration, "time", d.Duration, "duration")
	f.Int64Var(&seed, "seed", d.Seed, "solver order seed")
	f.Float64Var(&gravity, "gravity", d.Gravity, "downward acceleration")
	f.IntVar(&passes, "passes", d.Passes, "solver passes per step")
	f.BoolVar(&minLength, "min-length", false, "push compressed sticks apart")
	f.BoolVar(&autoChain, "auto-chain", d.AutoChain, "chain points in creation order")
	f.Float64Var(&damping, "damping", d.Damping, "fraction of velocity lost per step")
	f.IntVar(&segments, "segments", d.Rope.Segments, "rope segments")
	f.Float64Var(&segLength, "segment-length", d.Rope.SegmentLength, "rope segment length")
	f.Float64Var(&amplitude, "amplitude", d.DriverParams.Amplitude, "driver amplitude")
	f.Float64Var(&period, "period", d.DriverParams.Period, "driver period")
}

func svgFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	cmd.Flags().IntVar(&svgHeight, "height", 600, "image height")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Scene = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scene))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.Scene = args[0]
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("driver") {
		cfg.Driver = driver
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if f.Changed("passes") {
		cfg.Passes = passes
	}
	if f.Changed("min-length") {
		v := minLength
		cfg.ConstrainMinLength = &v
	}
	if f.Changed("auto-chain") {
		cfg.AutoChain = autoChain
	}
	if f.Changed("damping") {
		cfg.Damping = damping
	}
	if f.Changed("segments") {
		cfg.Rope.Segments = segments
	}
	if f.Changed("segment-length") {
		cfg.Rope.SegmentLength = segLength
	}
	if f.Changed("amplitude") {
		cfg.DriverParams.Amplitude = amplitude
	}
	if f.Changed("period") {
		cfg.DriverParams.Period = period
	}

	logger.Debug("config", "scene", cfg.Scene, "driver", cfg.Driver, "dt", cfg.Dt, "passes", cfg.Passes)
	return cfg, nil
}
