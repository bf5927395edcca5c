package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sticksim/internal/analysis"
	"github.com/san-kum/sticksim/internal/config"
	"github.com/san-kum/sticksim/internal/experiment"
	"github.com/san-kum/sticksim/internal/export"
	"github.com/san-kum/sticksim/internal/models"
	"github.com/san-kum/sticksim/internal/sim"
	"github.com/san-kum/sticksim/internal/storage"
	"github.com/san-kum/sticksim/internal/viz"
)

// runExperiment sets up and runs cfg headlessly. Ctrl-C stops the run early
// and keeps what was recorded so far.
func runExperiment(cfg *config.Config) (*experiment.Experiment, *sim.Result, error) {
	expCfg, err := cfg.Experiment()
	if err != nil {
		return nil, nil, err
	}

	exp := experiment.New(expCfg, logger)
	if err := exp.Setup(nil); err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return nil, nil, err
	}
	if err != nil {
		logger.Warn("run stopped early", "err", err, "steps", result.StepsTaken)
	}
	return exp, result, nil
}

func runInfo(cfg *config.Config, s *sim.Simulation) storage.RunInfo {
	p := s.Params()
	return storage.RunInfo{
		Scene:              cfg.Scene,
		Driver:             cfg.Driver,
		Dt:                 cfg.Dt,
		Duration:           cfg.Duration,
		Seed:               p.Seed,
		Passes:             p.Passes,
		Gravity:            p.Gravity,
		ConstrainMinLength: p.ConstrainMinLength,
		Points:             s.Store().NumPoints(),
		Sticks:             s.Store().NumAlive(),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	exp, result, err := runExperiment(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runInfo(cfg, exp.GetRunner().Simulation()), result)
	if err != nil {
		return err
	}

	logger.Info("run complete", "id", runID, "steps", result.StepsTaken, "elapsed", elapsed.Round(time.Millisecond))
	for _, e := range result.Errors {
		logger.Warn("step error", "err", e)
	}

	fmt.Printf("run: %s\n", runID)
	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func printMetrics(out io.Writer, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%.6f\n", k, m[k])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	scene, err := cfg.GetScene()
	if err != nil {
		return err
	}
	s, err := models.Build(scene, cfg.GetParams(scene))
	if err != nil {
		return err
	}

	viz.SetTheme(theme)
	return viz.Run(s, scene.Name(), cfg.Dt)
}

func benchScene(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	passCounts := []int{1, 10, 50, 100}
	dts := []float64{0.01, 0.02}

	fmt.Printf("benchmarking %s\n\n", base.Scene)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PASSES\tDT\tSTEPS\tTIME\tSTEPS/SEC\tSTRETCH")

	for _, n := range passCounts {
		for _, step := range dts {
			cfg := base.Clone()
			cfg.Passes = n
			cfg.Dt = step

			start := time.Now()
			_, result, err := runExperiment(cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.3f\t%d\t%v\t%.0f\t%.5f\n",
				n,
				step,
				result.StepsTaken,
				elapsed.Round(time.Microsecond),
				float64(result.StepsTaken)/elapsed.Seconds(),
				result.Metrics["stretch_max"],
			)
		}
	}
	return w.Flush()
}

// sweepPasses lets the scene sag for a while with the solver off, then
// reports how the residual falls as passes are added.
func sweepPasses(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	scene, err := cfg.GetScene()
	if err != nil {
		return err
	}

	p := cfg.GetParams(scene)
	p.Passes = 0
	s, err := models.Build(scene, p)
	if err != nil {
		return err
	}
	for i := 0; i < 25; i++ {
		s.Step(cfg.Dt)
	}

	counts := []int{0}
	for n := 1; n <= sweepLimit; n *= 2 {
		counts = append(counts, n)
	}
	points := analysis.ConvergenceSweep(s, counts)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PASSES\tMAX\tTOTAL")
	totals := make([]float64, len(points))
	for i, pt := range points {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\n", pt.Passes, pt.MaxError, pt.Total)
		totals[i] = pt.Total
	}
	w.Flush()

	if len(totals) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(totals,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("total residual by pass step"),
		))
	}
	if !analysis.Monotone(points, 1e-9) {
		logger.Warn("residual grew between pass counts")
	}
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, _, err := runExperiment(cfg)
	if err != nil {
		return err
	}

	snap := exp.GetRunner().Simulation().Snapshot()
	return writeOutput(export.SnapshotToSVG(snap, svgWidth, svgHeight, export.DefaultStyle()))
}

func writeOutput(doc string) error {
	if outFile == "" {
		_, err := fmt.Println(doc)
		return err
	}
	if err := os.WriteFile(outFile, []byte(doc), 0644); err != nil {
		return err
	}
	logger.Info("wrote", "file", outFile)
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	fmt.Println("scenes:")
	for _, name := range reg.ListScenes() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("drivers:")
	for _, name := range reg.ListDrivers() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
