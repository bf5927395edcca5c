package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sticksim/internal/analysis"
	"github.com/san-kum/sticksim/internal/export"
	"github.com/san-kum/sticksim/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tSCENE\tDRIVER\tTIME\tDURATION\tDT\tPASSES\tSTRETCH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%.5f\n",
			run.ID,
			run.Scene,
			run.Driver,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Passes,
			run.Metrics["stretch_max"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s  driver: %s  passes: %d\n", meta.Scene, meta.Driver, meta.Passes)
	fmt.Printf("duration: %.2fs  steps: %d\n\n", meta.Duration, meta.Steps)

	tipX := make([]float64, len(series.Tip))
	tipY := make([]float64, len(series.Tip))
	for i, p := range series.Tip {
		tipX[i] = p.X
		// screen y points down; flip so the plot reads upright
		tipY[i] = -p.Y
	}

	plots := []struct {
		data    []float64
		caption string
	}{
		{series.Residuals, "max residual"},
		{tipX, "tip x"},
		{tipY, "tip height"},
	}
	for _, p := range plots {
		fmt.Println(asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportSeriesJSON(os.Stdout, meta, series)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n\n", meta.ID)
	axes := []struct {
		axis analysis.Axis
		name string
	}{
		{analysis.AxisX, "x"},
		{analysis.AxisY, "y"},
	}
	for _, a := range axes {
		spec, err := analysis.TipSpectrum(series.Tip, meta.Dt, a.axis)
		if err != nil {
			return err
		}
		freq, power := spec.Dominant()
		fmt.Printf("tip %s dominant: %.3f Hz (period %.3fs, power %.4g)\n", a.name, freq, periodOf(freq), power)

		n := len(spec.Power)
		if n > 80 {
			n = 80
		}
		fmt.Println(asciigraph.Plot(spec.Power[:n],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (tip %s)", a.name)),
		))
		fmt.Println()
	}
	return nil
}

func periodOf(freq float64) float64 {
	if freq == 0 {
		return 0
	}
	return 1 / freq
}

func traceRun(cmd *cobra.Command, args []string) error {
	_, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	doc := export.TrajectoryToSVG(series.Tip, svgWidth, svgHeight, "#00ffff")
	if doc == "" {
		return fmt.Errorf("run has fewer than two tip samples")
	}
	return writeOutput(doc)
}
