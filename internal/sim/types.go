package sim

import (
	"errors"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(g *mesh.Grid, list *mesh.DrawList)
	Value() float64
	Reset()
}

// Observer sees every frame as it is produced. The draw list and grid are
// only valid for the duration of the call.
type Observer interface {
	OnFrame(list *mesh.DrawList, g *mesh.Grid)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(list *mesh.DrawList, g *mesh.Grid)

func (f ObserverFunc) OnFrame(list *mesh.DrawList, g *mesh.Grid) { f(list, g) }

type Config struct {
	Frames int
	// FPS paces Loop; zero selects DefaultFPS.
	FPS  int
	Seed int64
}

// FrameStats summarises one frame for traces and plots.
type FrameStats struct {
	Frame            int     `json:"frame"`
	Time             float64 `json:"time"`
	MeanDisplacement float64 `json:"mean_displacement"`
	PeakDisplacement float64 `json:"peak_displacement"`
	Moved            int     `json:"moved"`
}

type Result struct {
	Frames  []FrameStats
	Metrics map[string]float64
}

// Series extracts one column of the trace for plotting.
func (r *Result) Series(pick func(FrameStats) float64) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = pick(f)
	}
	return out
}

// Stats computes FrameStats from a grid after a tick.
func Stats(g *mesh.Grid, frame int, t float64) FrameStats {
	s := FrameStats{Frame: frame, Time: t}
	interior := 0
	sum := 0.0
	for i, p := range g.Points {
		if p.Displacement > s.PeakDisplacement {
			s.PeakDisplacement = p.Displacement
		}
		if p.Moved() {
			s.Moved++
		}
		if !g.IsBoundary(i) {
			interior++
			sum += p.Displacement
		}
	}
	if interior > 0 {
		s.MeanDisplacement = sum / float64(interior)
	}
	return s
}
