package config

import "sort"

// Presets are named tunings. home and contact reproduce the site; the rest
// are variations for previews.
var Presets = map[string]func() *Config{
	"home": func() *Config {
		return DefaultConfig()
	},
	"contact": func() *Config {
		cfg := DefaultConfig()
		cfg.Page = "contact"
		return cfg
	},
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.Mesh.Speed = 0.00025
		cfg.Mesh.MaxDisplacement = 25
		return cfg
	},
	"storm": func() *Config {
		cfg := DefaultConfig()
		cfg.Mesh.Speed = 0.002
		cfg.Mesh.NoiseScale = 0.005
		cfg.Mesh.MaxDisplacement = 60
		return cfg
	},
	"dense": func() *Config {
		cfg := DefaultConfig()
		cfg.Mesh.Columns = 24
		cfg.Mesh.Rows = 16
		cfg.Mesh.MaxDisplacement = 20
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
