package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Scene              string
	Driver             string
	Dt                 float64
	Duration           float64
	Seed               int64
	Passes             int
	Gravity            float64
	ConstrainMinLength bool
	Points             int
	Sticks             int
}

type RunMetadata struct {
	ID                 string             `json:"id"`
	Scene              string             `json:"scene"`
	Driver             string             `json:"driver,omitempty"`
	Timestamp          time.Time          `json:"timestamp"`
	Seed               int64              `json:"seed"`
	Dt                 float64            `json:"dt"`
	Duration           float64            `json:"duration"`
	Passes             int                `json:"passes"`
	Gravity            float64            `json:"gravity"`
	ConstrainMinLength bool               `json:"constrain_min_length"`
	Points             int                `json:"points"`
	Sticks             int                `json:"sticks"`
	Steps              int                `json:"steps"`
	Metrics            map[string]float64 `json:"metrics"`
}

// Series is the per-sample trace of a run.
type Series struct {
	Times     []float64
	Residuals []float64
	Tip       []dynamo.Vec2
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Scene, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:                 runID,
		Scene:              info.Scene,
		Driver:             info.Driver,
		Timestamp:          now,
		Seed:               info.Seed,
		Dt:                 info.Dt,
		Duration:           info.Duration,
		Passes:             info.Passes,
		Gravity:            info.Gravity,
		ConstrainMinLength: info.ConstrainMinLength,
		Points:             info.Points,
		Sticks:             info.Sticks,
		Steps:              result.StepsTaken,
		Metrics:            result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"time", "residual", "tip_x", "tip_y"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			formatFloat(result.Times[i]),
			formatFloat(at(result.Residuals, i)),
			"0", "0",
		}
		if i < len(result.Tip) {
			row[2] = formatFloat(result.Tip[i].X)
			row[3] = formatFloat(result.Tip[i].Y)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		series.Times = append(series.Times, vals[0])
		series.Residuals = append(series.Residuals, vals[1])
		series.Tip = append(series.Tip, dynamo.V(vals[2], vals[3]))
	}

	return series, nil
}
