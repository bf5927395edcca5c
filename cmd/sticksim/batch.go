package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/sticksim/internal/automation"
	"github.com/san-kum/sticksim/internal/experiment"
	"github.com/san-kum/sticksim/internal/optim"
	"github.com/san-kum/sticksim/internal/storage"
)

func tuneScene(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	grid := optim.NewGridSearch(
		optim.Axis{Name: "passes", Values: []float64{5, 10, 25, 50, 100}},
		optim.Axis{Name: "dt", Values: []float64{0.01, 0.02, 0.04}},
	)
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		cfg.Passes = int(params["passes"])
		cfg.Dt = params["dt"]
		expCfg, err := cfg.Experiment()
		if err != nil {
			return nil, err
		}
		exp := experiment.New(expCfg, logger)
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}
		return exp, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("tuning", "scene", base.Scene, "points", grid.Size(), "metric", metricName)
	best, trials, err := grid.Search(ctx, build, metricName)
	if err != nil {
		return err
	}

	sort.Slice(trials, func(i, j int) bool { return trials[i].Value < trials[j].Value })
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PASSES\tDT\t%s\n", metricName)
	for _, t := range trials {
		if t.Err != nil {
			fmt.Fprintf(w, "%.0f\t%.3f\terror: %v\n", t.Params["passes"], t.Params["dt"], t.Err)
			continue
		}
		fmt.Fprintf(w, "%.0f\t%.3f\t%.6f\n", t.Params["passes"], t.Params["dt"], t.Value)
	}
	w.Flush()

	fmt.Printf("\nbest: passes=%.0f dt=%.3f %s=%.6f\n", best.Params["passes"], best.Params["dt"], metricName, best.Value)
	return nil
}

func seedEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSeeds(ctx, cfg, numSeeds, metricName, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\t%s\tSTABLE\n", metricName)
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.6f\t%v\n", r.Seed, r.Value, r.Stable)
	}
	w.Flush()

	st := automation.Stats(results)
	fmt.Printf("\nmin %.6f  max %.6f  mean %.6f  stddev %.6f  unstable %d/%d\n",
		st.Min, st.Max, st.Mean, st.StdDev, st.Unstable, len(results))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Step.Save && !saveRuns {
			continue
		}
		runID, err := st.Save(runInfo(r.Step.Config, r.Sim), r.Result)
		if err != nil {
			return err
		}
		logger.Info("saved", "step", r.Step.Name, "id", runID)
	}

	for _, r := range results {
		fmt.Printf("%s (%s, %d steps)\n", r.Step.Name, r.Step.Config.Scene, r.Result.StepsTaken)
		printMetrics(os.Stdout, r.Result.Metrics)
		fmt.Println()
	}
	return nil
}
