package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/noise"
	"github.com/magnify-ai/fluidmesh/internal/palette"
)

const (
	DefaultPage   = "home"
	DefaultWidth  = 1200.0
	DefaultHeight = 800.0
	DefaultFPS    = 60
	DefaultFrames = 600
	DefaultTheme  = "mono"
)

type Config struct {
	Page    string        `yaml:"page"`
	Width   float64       `yaml:"width"`
	Height  float64       `yaml:"height"`
	Seed    int64         `yaml:"seed"`
	FPS     int           `yaml:"fps"`
	Frames  int           `yaml:"frames"`
	Theme   string        `yaml:"theme"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Palette PaletteConfig `yaml:"palette"`
}

type MeshConfig struct {
	Columns         int     `yaml:"columns"`
	Rows            int     `yaml:"rows"`
	Speed           float64 `yaml:"speed"`
	NoiseScale      float64 `yaml:"noise_scale"`
	MaxDisplacement float64 `yaml:"max_displacement"`
	AxisOffset      float64 `yaml:"axis_offset"`
	EdgeFloor       float64 `yaml:"edge_floor"`
}

type PaletteConfig struct {
	Stops []string `yaml:"stops"`
}

func DefaultConfig() *Config {
	return &Config{
		Page:   DefaultPage,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Frames: DefaultFrames,
		Theme:  DefaultTheme,
		Mesh: MeshConfig{
			Columns:         mesh.DefaultColumns,
			Rows:            mesh.DefaultRows,
			Speed:           mesh.DefaultSpeed,
			NoiseScale:      mesh.DefaultNoiseScale,
			MaxDisplacement: mesh.DefaultMaxDisplacement,
			AxisOffset:      mesh.DefaultAxisOffset,
			EdgeFloor:       mesh.DefaultEdgeFloor,
		},
		Palette: PaletteConfig{
			Stops: []string{palette.BaseHex, palette.MidHex, palette.HighlightHex},
		},
	}
}

// Load reads a YAML file on top of the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file on top of cfg. Keys absent from the file keep
// their current values, so a preset can be refined by a partial file.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: container size must be non-negative, got %.0fx%.0f", c.Width, c.Height)
	}
	if c.FPS < 0 {
		return fmt.Errorf("config: fps must be non-negative, got %d", c.FPS)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("config: frames must be positive, got %d", c.Frames)
	}
	if _, err := c.Gradient(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	p, err := c.MeshParams()
	if err != nil {
		return err
	}
	return p.Validate()
}

func (c *Config) Gradient() (*palette.Gradient, error) {
	if len(c.Palette.Stops) == 0 {
		return palette.Default(), nil
	}
	return palette.ParseStops(c.Palette.Stops...)
}

func (c *Config) MeshParams() (mesh.Params, error) {
	g, err := c.Gradient()
	if err != nil {
		return mesh.Params{}, fmt.Errorf("config: %w", err)
	}
	return mesh.Params{
		Columns:         c.Mesh.Columns,
		Rows:            c.Mesh.Rows,
		Speed:           c.Mesh.Speed,
		NoiseScale:      c.Mesh.NoiseScale,
		MaxDisplacement: c.Mesh.MaxDisplacement,
		AxisOffset:      c.Mesh.AxisOffset,
		EdgeFloor:       c.Mesh.EdgeFloor,
		Gradient:        g,
	}, nil
}

// Mount returns a factory that builds animators from this config. Each call
// of the factory gets a new noise field; a zero seed draws a fresh one.
func (c *Config) Mount() (func() *mesh.Animator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, _ := c.MeshParams()
	width, height, seed := c.Width, c.Height, c.Seed
	return func() *mesh.Animator {
		return mesh.New(width, height, noise.NewSimplex(seed), mesh.WithParams(p))
	}, nil
}

// MountSeeded is Mount with the seed supplied per call, for ensembles.
func (c *Config) MountSeeded() (func(seed int64) func() *mesh.Animator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, _ := c.MeshParams()
	width, height := c.Width, c.Height
	return func(seed int64) func() *mesh.Animator {
		return func() *mesh.Animator {
			return mesh.New(width, height, noise.NewSimplex(seed), mesh.WithParams(p))
		}
	}, nil
}
