package metrics

import (
	"math"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/sim"
)

// EdgeFloor records the darkest shade given to any outer-ring triangle. It
// reports 1 until an edge triangle has been seen.
type EdgeFloor struct {
	min  float64
	seen bool
}

func NewEdgeFloor() *EdgeFloor { return &EdgeFloor{min: math.Inf(1)} }

func (e *EdgeFloor) Name() string { return "edge_floor" }

func (e *EdgeFloor) Observe(_ *mesh.Grid, list *mesh.DrawList) {
	for _, t := range list.Triangles {
		if !t.Edge {
			continue
		}
		e.seen = true
		if t.Shade < e.min {
			e.min = t.Shade
		}
	}
}

func (e *EdgeFloor) Value() float64 {
	if !e.seen {
		return 1
	}
	return e.min
}

func (e *EdgeFloor) Reset() {
	e.min = math.Inf(1)
	e.seen = false
}

// DefaultSet returns a fresh instance of every metric.
func DefaultSet() []sim.Metric {
	return []sim.Metric{
		NewMeanDisplacement(),
		NewPeakDisplacement(),
		NewBoundaryViolations(),
		NewEdgeFloor(),
	}
}
