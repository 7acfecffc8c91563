package config

import "sort"

// Presets are complete configurations selectable with --preset.
var Presets = map[string]*Config{
	// classic reproduces the pacing of the original page.
	"classic": preset(func(c *Config) {
		c.DelayMs = 1000
		c.Delays = map[string]int{
			"selection": 1000,
			"bubble":    1000,
			"insertion": 1000,
			"merge":     500,
			"heap":      500,
			"quick":     0,
		}
	}),
	"fast": preset(func(c *Config) {
		c.DelayMs = 50
	}),
	"large": preset(func(c *Config) {
		c.Size = 40
		c.DelayMs = 40
		c.Algorithm = "quick"
	}),
	"reversed": preset(func(c *Config) {
		c.Initial = []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
		c.Algorithm = "insertion"
	}),
	"duplicates": preset(func(c *Config) {
		c.Initial = []int{4, 2, 7, 2, 9, 4, 1, 7, 4, 3}
		c.Algorithm = "merge"
	}),
}

func preset(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
