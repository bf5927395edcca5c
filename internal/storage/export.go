package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/sim"
)

type ExportData struct {
	Scene     string             `json:"scene"`
	Driver    string             `json:"driver,omitempty"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Residuals []float64          `json:"residuals"`
	Tip       [][2]float64       `json:"tip"`
	Metrics   map[string]float64 `json:"metrics"`
}

func NewExportData(info RunInfo, result *sim.Result) ExportData {
	data := ExportData{
		Scene:     info.Scene,
		Driver:    info.Driver,
		Dt:        info.Dt,
		Duration:  info.Duration,
		Steps:     result.StepsTaken,
		Times:     result.Times,
		Residuals: result.Residuals,
		Tip:       make([][2]float64, len(result.Tip)),
		Metrics:   result.Metrics,
	}
	for i, p := range result.Tip {
		data.Tip[i] = [2]float64{p.X, p.Y}
	}
	return data
}

// ExportJSON writes a run as indented JSON to w.
func ExportJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(info, result))
}

// ExportSeriesJSON writes a stored series in the same shape.
func ExportSeriesJSON(w io.Writer, meta *RunMetadata, series *Series) error {
	result := &sim.Result{
		Times:      series.Times,
		Residuals:  series.Residuals,
		Tip:        series.Tip,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	if result.Tip == nil {
		result.Tip = []dynamo.Vec2{}
	}
	info := RunInfo{Scene: meta.Scene, Driver: meta.Driver, Dt: meta.Dt, Duration: meta.Duration}
	return ExportJSON(w, info, result)
}
