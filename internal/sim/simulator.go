package sim

import (
	"context"
	"fmt"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

// Factory mounts a fresh animator. It is called once by New and again on
// every Remount.
type Factory func() *mesh.Animator

type Simulator struct {
	mount     Factory
	anim      *mesh.Animator
	pool      *TrianglePool
	metrics   []Metric
	observers []Observer
}

func New(mount Factory) *Simulator {
	s := &Simulator{
		mount:     mount,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.Remount()
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Animator() *mesh.Animator { return s.anim }

// Remount discards the current animator and builds a new one; the clock and
// grid start over.
func (s *Simulator) Remount() {
	s.anim = s.mount()
	p := s.anim.Params()
	s.pool = NewTrianglePool(p.Columns, p.Rows)
}

// Advance produces one frame into dst and feeds metrics and observers.
func (s *Simulator) Advance(dst []mesh.Triangle) mesh.DrawList {
	list := s.anim.Step(dst)
	g := s.anim.Grid()
	for _, m := range s.metrics {
		m.Observe(g, &list)
	}
	for _, obs := range s.observers {
		obs.OnFrame(&list, g)
	}
	return list
}

// Run produces cfg.Frames frames as fast as possible. On cancellation it
// returns the frames completed so far together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([]FrameStats, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		buf := s.pool.Get()
		list := s.Advance(buf)
		result.Frames = append(result.Frames, Stats(s.anim.Grid(), list.Frame, list.Time))
		s.pool.Put(list.Triangles)
	}

	s.collect(result)
	return result, nil
}

// RunWithCallback steps until the callback returns false, ctx is cancelled or
// cfg.Frames frames have been produced. Frames <= 0 means no limit.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(*mesh.DrawList) bool) error {
	if cfg.FPS < 0 {
		return fmt.Errorf("%w: fps must be non-negative, got %d", ErrInvalidConfig, cfg.FPS)
	}

	for i := 0; cfg.Frames <= 0 || i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		buf := s.pool.Get()
		list := s.Advance(buf)
		more := callback(&list)
		s.pool.Put(list.Triangles)
		if !more {
			return nil
		}
	}
	return nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// MetricValues reports every metric's current value by name.
func (s *Simulator) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.FPS < 0 {
		return fmt.Errorf("%w: fps must be non-negative, got %d", ErrInvalidConfig, cfg.FPS)
	}
	return nil
}
