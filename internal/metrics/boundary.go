package metrics

import "github.com/magnify-ai/fluidmesh/internal/mesh"

// BoundaryViolations counts frames in which a boundary point moved or carried
// displacement. A correct animator keeps it at zero.
type BoundaryViolations struct {
	name       string
	violations int
	samples    int
}

func NewBoundaryViolations() *BoundaryViolations {
	return &BoundaryViolations{name: "boundary_violations"}
}

func (b *BoundaryViolations) Name() string {
	return b.name
}

func (b *BoundaryViolations) Observe(g *mesh.Grid, _ *mesh.DrawList) {
	b.samples++
	for i, p := range g.Points {
		if g.IsBoundary(i) && (p.Displacement != 0 || p.Moved()) {
			b.violations++
			break
		}
	}
}

func (b *BoundaryViolations) Value() float64 {
	return float64(b.violations)
}

func (b *BoundaryViolations) Samples() int { return b.samples }

func (b *BoundaryViolations) Reset() {
	b.violations = 0
	b.samples = 0
}
