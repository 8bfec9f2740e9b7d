// Package palette maps normalized displacement values to fill colors.
package palette

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	BaseHex      = "#000000"
	MidHex       = "#404040"
	HighlightHex = "#808080"

	// BackgroundMix is the weight of the mid stop in the page background.
	BackgroundMix = 0.3
)

var ErrTooFewStops = errors.New("palette: gradient needs at least two stops")

// Gradient is a piecewise-linear RGB scale over evenly spaced stops.
type Gradient struct {
	stops []colorful.Color
}

// New builds a gradient from at least two colors.
func New(stops ...colorful.Color) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, ErrTooFewStops
	}
	s := make([]colorful.Color, len(stops))
	copy(s, stops)
	return &Gradient{stops: s}, nil
}

// ParseStops builds a gradient from hex strings such as "#404040".
func ParseStops(hexes ...string) (*Gradient, error) {
	stops := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette: stop %q: %w", h, err)
		}
		stops = append(stops, c)
	}
	return New(stops...)
}

// Default is the black, dark-gray, medium-gray scale used by the site.
func Default() *Gradient {
	g, _ := ParseStops(BaseHex, MidHex, HighlightHex)
	return g
}

// Stops returns a copy of the gradient's stops.
func (g *Gradient) Stops() []colorful.Color {
	s := make([]colorful.Color, len(g.stops))
	copy(s, g.stops)
	return s
}

// At returns the color at v. Values outside [0, 1] are clamped.
func (g *Gradient) At(v float64) colorful.Color {
	v = Clamp01(v)
	n := len(g.stops) - 1
	pos := v * float64(n)
	idx := int(math.Floor(pos))
	if idx >= n {
		return g.stops[n]
	}
	return g.stops[idx].BlendRgb(g.stops[idx+1], pos-float64(idx))
}

// Hex is At followed by hex formatting.
func (g *Gradient) Hex(v float64) string {
	return g.At(v).Hex()
}

// Background mixes the first two stops the way chroma-js mix does in its
// default lrgb mode.
func (g *Gradient) Background() colorful.Color {
	return MixLRGB(g.stops[0], g.stops[1], BackgroundMix)
}

// MixLRGB blends a and b by t, averaging squared channels.
func MixLRGB(a, b colorful.Color, t float64) colorful.Color {
	t = Clamp01(t)
	mix := func(x, y float64) float64 {
		return math.Sqrt((1-t)*x*x + t*y*y)
	}
	return colorful.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// EdgeShade lifts v onto [floor, 1] so outer triangles never go fully black.
func EdgeShade(v, floor float64) float64 {
	return floor + v*(1-floor)
}

func Clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
