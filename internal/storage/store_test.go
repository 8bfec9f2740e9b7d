package storage

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/metrics"
	"github.com/magnify-ai/fluidmesh/internal/noise"
	"github.com/magnify-ai/fluidmesh/internal/sim"
)

func record(t *testing.T, frames int) *sim.Result {
	t.Helper()
	s := sim.New(func() *mesh.Animator { return mesh.New(1200, 800, noise.NewSimplex(3)) })
	for _, m := range metrics.DefaultSet() {
		s.AddMetric(m)
	}
	res, err := s.Run(context.Background(), sim.Config{Frames: frames})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res
}

func TestStoreRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	res := record(t, 20)
	id, err := st.Save(RunMetadata{Page: "home", Seed: 3, Width: 1200, Height: 800}, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Page != "home" || meta.Seed != 3 || meta.Frames != 20 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["boundary_violations"] != 0 {
		t.Errorf("expected no boundary violations, got %v", meta.Metrics["boundary_violations"])
	}

	trace, err := st.LoadTrace(id)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(trace) != len(res.Frames) {
		t.Fatalf("expected %d rows, got %d", len(res.Frames), len(trace))
	}
	for i, f := range trace {
		want := res.Frames[i]
		if f.Frame != want.Frame || f.Moved != want.Moved {
			t.Errorf("row %d: got %+v, want %+v", i, f, want)
		}
		if math.Abs(f.MeanDisplacement-want.MeanDisplacement) > 1e-6 {
			t.Errorf("row %d: mean %v, want %v", i, f.MeanDisplacement, want.MeanDisplacement)
		}
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := New(filepath.Join(dir, "missing")).List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v, %v", runs, err)
	}

	res := record(t, 5)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, page := range []string{"contact", "home"} {
		meta := RunMetadata{Page: page, Timestamp: base.Add(time.Duration(-i) * time.Hour)}
		if _, err := st.Save(meta, res); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Page != "home" {
		t.Errorf("expected oldest run first, got %s", runs[0].Page)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
