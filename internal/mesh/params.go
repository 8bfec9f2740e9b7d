package mesh

import (
	"errors"
	"fmt"

	"github.com/magnify-ai/fluidmesh/internal/palette"
)

const (
	DefaultColumns         = 12
	DefaultRows            = 8
	DefaultSpeed           = 0.0005
	DefaultNoiseScale      = 0.003
	DefaultMaxDisplacement = 40.0
	// DefaultAxisOffset separates the x and y samples in time so both axes can
	// share one noise field.
	DefaultAxisOffset = 1000.0
	DefaultEdgeFloor  = 0.3
)

// ErrInvalidParams reports animator parameters that cannot build a grid.
var ErrInvalidParams = errors.New("mesh: invalid parameters")

// Params tunes the animator. The zero value is not usable; start from DefaultParams.
type Params struct {
	Columns         int
	Rows            int
	Speed           float64
	NoiseScale      float64
	MaxDisplacement float64
	AxisOffset      float64
	EdgeFloor       float64
	Gradient        *palette.Gradient
}

func DefaultParams() Params {
	return Params{
		Columns:         DefaultColumns,
		Rows:            DefaultRows,
		Speed:           DefaultSpeed,
		NoiseScale:      DefaultNoiseScale,
		MaxDisplacement: DefaultMaxDisplacement,
		AxisOffset:      DefaultAxisOffset,
		EdgeFloor:       DefaultEdgeFloor,
		Gradient:        palette.Default(),
	}
}

func (p Params) Validate() error {
	if p.Columns < 1 || p.Rows < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidParams, p.Columns, p.Rows)
	}
	if p.Speed < 0 {
		return fmt.Errorf("%w: speed must be non-negative, got %f", ErrInvalidParams, p.Speed)
	}
	if p.MaxDisplacement < 0 {
		return fmt.Errorf("%w: max displacement must be non-negative, got %f", ErrInvalidParams, p.MaxDisplacement)
	}
	if p.EdgeFloor < 0 || p.EdgeFloor > 1 {
		return fmt.Errorf("%w: edge floor must lie in [0,1], got %f", ErrInvalidParams, p.EdgeFloor)
	}
	return nil
}

// Option overrides one field of Params.
type Option func(*Params)

func WithGrid(columns, rows int) Option {
	return func(p *Params) { p.Columns, p.Rows = columns, rows }
}

func WithSpeed(speed float64) Option {
	return func(p *Params) { p.Speed = speed }
}

func WithNoiseScale(scale float64) Option {
	return func(p *Params) { p.NoiseScale = scale }
}

func WithMaxDisplacement(d float64) Option {
	return func(p *Params) { p.MaxDisplacement = d }
}

func WithAxisOffset(offset float64) Option {
	return func(p *Params) { p.AxisOffset = offset }
}

func WithEdgeFloor(floor float64) Option {
	return func(p *Params) { p.EdgeFloor = floor }
}

func WithGradient(g *palette.Gradient) Option {
	return func(p *Params) {
		if g != nil {
			p.Gradient = g
		}
	}
}

// WithParams replaces every field at once.
func WithParams(params Params) Option {
	return func(p *Params) {
		g := p.Gradient
		*p = params
		if p.Gradient == nil {
			p.Gradient = g
		}
	}
}
