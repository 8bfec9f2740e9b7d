package metrics

import "github.com/magnify-ai/fluidmesh/internal/mesh"

// MeanDisplacement averages interior point displacement over every observed
// frame.
type MeanDisplacement struct {
	sum   float64
	count int
}

func NewMeanDisplacement() *MeanDisplacement { return &MeanDisplacement{} }

func (m *MeanDisplacement) Name() string { return "mean_displacement" }

func (m *MeanDisplacement) Observe(g *mesh.Grid, _ *mesh.DrawList) {
	for i, p := range g.Points {
		if g.IsBoundary(i) {
			continue
		}
		m.sum += p.Displacement
		m.count++
	}
}

func (m *MeanDisplacement) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *MeanDisplacement) Reset() {
	m.sum = 0
	m.count = 0
}

// PeakDisplacement tracks the largest displacement of any point.
type PeakDisplacement struct {
	peak float64
}

func NewPeakDisplacement() *PeakDisplacement { return &PeakDisplacement{} }

func (p *PeakDisplacement) Name() string { return "peak_displacement" }

func (p *PeakDisplacement) Observe(g *mesh.Grid, _ *mesh.DrawList) {
	for _, pt := range g.Points {
		if pt.Displacement > p.peak {
			p.peak = pt.Displacement
		}
	}
}

func (p *PeakDisplacement) Value() float64 { return p.peak }

func (p *PeakDisplacement) Reset() { p.peak = 0 }
