package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/experiment"
	"github.com/san-kum/sticksim/internal/models"
)

const (
	DefaultDt        = 0.02
	DefaultDuration  = 10.0
	DefaultAmplitude = 2.0
	DefaultPeriod    = 2.0
)

type Config struct {
	Scene    string  `yaml:"scene"`
	Driver   string  `yaml:"driver"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`

	Gravity    float64 `yaml:"gravity"`
	Passes     int     `yaml:"passes"`
	PickRadius float64 `yaml:"pick_radius"`
	AutoChain  bool    `yaml:"auto_chain"`
	Damping    float64 `yaml:"damping"`
	// ConstrainMinLength is left to the scene when unset.
	ConstrainMinLength *bool `yaml:"constrain_min_length,omitempty"`

	Rope         RopeConfig   `yaml:"rope"`
	Cloth        ClothConfig  `yaml:"cloth"`
	DriverParams DriverConfig `yaml:"driver_params"`
}

type RopeConfig struct {
	Segments      int     `yaml:"segments"`
	SegmentLength float64 `yaml:"segment_length"`
}

type ClothConfig struct {
	Cols    int     `yaml:"cols"`
	Rows    int     `yaml:"rows"`
	Spacing float64 `yaml:"spacing"`
}

type DriverConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
}

func DefaultConfig() *Config {
	p := dynamo.DefaultParams()
	cloth := models.NewCloth()
	return &Config{
		Scene:      "rope",
		Driver:     "sway",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Seed:       p.Seed,
		Gravity:    p.Gravity,
		Passes:     p.Passes,
		PickRadius: p.PickRadius,
		Rope: RopeConfig{
			Segments:      models.DefaultRopeSegments,
			SegmentLength: models.DefaultRopeSegmentLength,
		},
		Cloth: ClothConfig{
			Cols:    cloth.Cols,
			Rows:    cloth.Rows,
			Spacing: cloth.Spacing,
		},
		DriverParams: DriverConfig{
			Amplitude: DefaultAmplitude,
			Period:    DefaultPeriod,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be used as a base safely.
func (c *Config) Clone() *Config {
	out := *c
	if c.ConstrainMinLength != nil {
		v := *c.ConstrainMinLength
		out.ConstrainMinLength = &v
	}
	return &out
}

// GetScene builds the named scene with the configured dimensions.
func (c *Config) GetScene() (models.Scene, error) {
	scene, err := models.Get(c.Scene)
	if err != nil {
		return nil, err
	}
	switch sc := scene.(type) {
	case *models.Rope:
		sc.Segments = c.Rope.Segments
		sc.SegmentLength = c.Rope.SegmentLength
	case *models.Cloth:
		sc.Cols = c.Cloth.Cols
		sc.Rows = c.Cloth.Rows
		sc.Spacing = c.Cloth.Spacing
	}
	return scene, nil
}

// GetParams starts from the scene's preferred knobs and applies the
// configured values on top.
func (c *Config) GetParams(scene models.Scene) dynamo.Params {
	p := scene.Tune(dynamo.DefaultParams())
	p.Gravity = c.Gravity
	p.Passes = c.Passes
	p.PickRadius = c.PickRadius
	p.AutoChain = c.AutoChain
	p.Seed = c.Seed
	p.Damping = c.Damping
	if c.ConstrainMinLength != nil {
		p.ConstrainMinLength = *c.ConstrainMinLength
	}
	return p
}

func (c *Config) GetDriverParams() experiment.DriverParams {
	return experiment.DriverParams{
		Amplitude: c.DriverParams.Amplitude,
		Period:    c.DriverParams.Period,
	}
}

// Experiment assembles an experiment config for a headless run.
func (c *Config) Experiment() (experiment.Config, error) {
	scene, err := c.GetScene()
	if err != nil {
		return experiment.Config{}, err
	}
	return experiment.Config{
		Scene:    scene,
		Driver:   c.Driver,
		Dt:       c.Dt,
		Duration: c.Duration,
		Params:   c.GetParams(scene),
		Motion:   c.GetDriverParams(),
		Validate: true,
	}, nil
}
