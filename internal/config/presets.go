package config

import "sort"

func preset(scene string, fn func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scene = scene
	fn(c)
	return c
}

func boolPtr(b bool) *bool { return &b }

var Presets = map[string]map[string]*Config{
	"rope": {
		"classic": preset("rope", func(c *Config) {}),
		"long": preset("rope", func(c *Config) {
			c.Rope = RopeConfig{Segments: 60, SegmentLength: 0.15}
			c.Duration = 20
		}),
		"taut": preset("rope", func(c *Config) {
			c.ConstrainMinLength = boolPtr(true)
		}),
		"whip": preset("rope", func(c *Config) {
			c.Driver = "circle"
			c.DriverParams = DriverConfig{Amplitude: 1, Period: 0.6}
		}),
		"lift": preset("rope", func(c *Config) {
			c.Driver = "lift"
			c.DriverParams = DriverConfig{Amplitude: 4, Period: 1}
			c.Duration = 5
		}),
		"sloppy": preset("rope", func(c *Config) {
			c.Passes = 5
		}),
		"honey": preset("rope", func(c *Config) {
			c.Damping = 0.08
		}),
	},
	"chain": {
		"swing": preset("chain", func(c *Config) {
			c.Driver = ""
		}),
	},
	"cloth": {
		"drape": preset("cloth", func(c *Config) {
			c.Driver = ""
			c.Passes = 30
		}),
		"sheet": preset("cloth", func(c *Config) {
			c.Driver = ""
			c.Cloth = ClothConfig{Cols: 20, Rows: 14, Spacing: 0.3}
			c.Passes = 40
		}),
	},
	"bridge": {
		"sag": preset("bridge", func(c *Config) {
			c.Driver = ""
		}),
	},
	"box": {
		"drop": preset("box", func(c *Config) {
			c.Driver = ""
			c.Duration = 3
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scene, name string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
