// Package noise provides the continuous 3D noise fields that drive mesh motion.
package noise

import (
	"time"

	"github.com/ojrac/opensimplex-go"
)

// Field is a continuous pseudo-random function of (x, y, z) returning values
// in [-1, 1]. Implementations must be pure: equal inputs give equal outputs.
type Field interface {
	Eval(x, y, z float64) float64
}

// Func adapts an ordinary function to the Field interface.
type Func func(x, y, z float64) float64

func (f Func) Eval(x, y, z float64) float64 { return f(x, y, z) }

// Simplex is a seeded OpenSimplex field clamped to [-1, 1].
type Simplex struct {
	seed int64
	src  opensimplex.Noise
}

// NewSimplex creates a simplex field. A zero seed draws a fresh one from the clock.
func NewSimplex(seed int64) *Simplex {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simplex{seed: seed, src: opensimplex.New(seed)}
}

func (s *Simplex) Seed() int64 { return s.seed }

func (s *Simplex) Eval(x, y, z float64) float64 {
	return Clamp(s.src.Eval3(x, y, z))
}

// Constant returns the same value everywhere. Useful for fixtures.
func Constant(v float64) Field {
	v = Clamp(v)
	return Func(func(_, _, _ float64) float64 { return v })
}

// Clamp limits v to [-1, 1].
func Clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
