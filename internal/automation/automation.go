// Package automation runs scripted batches of simulations: YAML scenarios
// made of config steps, and seed ensembles that measure how much the stick
// processing order moves the outcome.
package automation

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sticksim/internal/config"
	"github.com/san-kum/sticksim/internal/experiment"
	"github.com/san-kum/sticksim/internal/sim"
)

// Scenario is a named list of steps. Each step is a config document that is
// decoded over its preset (or the defaults), so it only needs the keys it
// changes.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []yaml.Node `yaml:"steps"`
}

type stepHeader struct {
	Name   string `yaml:"name"`
	Scene  string `yaml:"scene"`
	Preset string `yaml:"preset"`
	Save   bool   `yaml:"save"`
}

// Step is a resolved scenario step.
type Step struct {
	Name   string
	Save   bool
	Config *config.Config
}

type StepResult struct {
	Step   Step
	Result *sim.Result
	// Sim is the simulation as it stood at the end of the run.
	Sim *sim.Simulation
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve decodes every step over its base config.
func (sc *Scenario) Resolve() ([]Step, error) {
	steps := make([]Step, 0, len(sc.Steps))
	for i := range sc.Steps {
		node := &sc.Steps[i]

		var h stepHeader
		if err := node.Decode(&h); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		cfg := config.DefaultConfig()
		if h.Preset != "" {
			scene := h.Scene
			if scene == "" {
				scene = cfg.Scene
			}
			cfg = config.GetPreset(scene, h.Preset)
			if cfg == nil {
				return nil, fmt.Errorf("step %d: unknown preset %s/%s", i+1, scene, h.Preset)
			}
		}
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := h.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", cfg.Scene, i+1)
		}
		steps = append(steps, Step{Name: name, Save: h.Save, Config: cfg})
	}
	return steps, nil
}

// RunScenario executes every step in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	steps, err := scenario.Resolve()
	if err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(steps))
	for i, step := range steps {
		logger.Info("scenario step", "n", fmt.Sprintf("%d/%d", i+1, len(steps)), "name", step.Name, "scene", step.Config.Scene)

		expCfg, err := step.Config.Experiment()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp := experiment.New(expCfg, logger)
		if err := exp.Setup(nil); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Result: result, Sim: exp.GetRunner().Simulation()})
	}
	return results, nil
}

// SeedResult is one ensemble member.
type SeedResult struct {
	Seed   int64
	Value  float64
	Stable bool
}

// RunSeeds repeats cfg for n consecutive seeds starting at cfg.Seed and
// reports metricName for each.
func RunSeeds(ctx context.Context, cfg *config.Config, n int, metricName string, logger *log.Logger) ([]SeedResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("need at least one seed, got %d", n)
	}

	build := func(seed int64) (*sim.Runner, error) {
		c := cfg.Clone()
		c.Seed = seed
		expCfg, err := c.Experiment()
		if err != nil {
			return nil, err
		}
		exp := experiment.New(expCfg, logger)
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}
		return exp.GetRunner(), nil
	}

	runs, err := sim.NewEnsemble(build, n, cfg.Seed).Run(ctx, sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return nil, err
	}

	results := make([]SeedResult, len(runs))
	for i, r := range runs {
		results[i] = SeedResult{
			Seed:   cfg.Seed + int64(i),
			Value:  r.Metrics[metricName],
			Stable: len(r.Errors) == 0,
		}
	}
	return results, nil
}

// SeedStats summarises an ensemble.
type SeedStats struct {
	Min, Max, Mean, StdDev float64
	Unstable               int
}

func Stats(results []SeedResult) SeedStats {
	if len(results) == 0 {
		return SeedStats{}
	}
	st := SeedStats{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, r := range results {
		st.Min = math.Min(st.Min, r.Value)
		st.Max = math.Max(st.Max, r.Value)
		st.Mean += r.Value
		if !r.Stable {
			st.Unstable++
		}
	}
	st.Mean /= float64(len(results))
	for _, r := range results {
		d := r.Value - st.Mean
		st.StdDev += d * d
	}
	st.StdDev = math.Sqrt(st.StdDev / float64(len(results)))
	return st
}
