package palette

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestDefaultStops(t *testing.T) {
	g := Default()

	tests := []struct {
		v    float64
		want string
	}{
		{0, "#000000"},
		{0.25, "#202020"},
		{0.5, "#404040"},
		{0.75, "#606060"},
		{1, "#808080"},
		{-0.5, "#000000"},
		{1.41, "#808080"},
	}
	for _, tt := range tests {
		if got := g.Hex(tt.v); got != tt.want {
			t.Errorf("Hex(%.2f) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestBackground(t *testing.T) {
	if got := Default().Background().Hex(); got != "#232323" {
		t.Errorf("expected background #232323, got %s", got)
	}
}

func TestParseStopsErrors(t *testing.T) {
	if _, err := ParseStops("#000000", "nope"); err == nil {
		t.Error("expected error for malformed hex")
	}
	if _, err := ParseStops("#000000"); !errors.Is(err, ErrTooFewStops) {
		t.Errorf("expected ErrTooFewStops, got %v", err)
	}
}

func TestTwoStopGradient(t *testing.T) {
	g, err := New(colorful.Color{}, colorful.Color{R: 1, G: 1, B: 1})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if got := g.Hex(0.5); got != "#808080" {
		t.Errorf("expected midpoint #808080, got %s", got)
	}
}

func TestEdgeShadeFloor(t *testing.T) {
	for _, v := range []float64{0, 0.1, 0.5, 1, 1.4142} {
		if s := EdgeShade(v, 0.3); s < 0.3 {
			t.Errorf("EdgeShade(%f) = %f, below floor", v, s)
		}
	}
	if s := EdgeShade(1, 0.3); s != 1 {
		t.Errorf("expected full displacement to reach 1, got %f", s)
	}
}

func TestStopsCopy(t *testing.T) {
	g := Default()
	s := g.Stops()
	s[0] = colorful.Color{R: 1}
	if g.Hex(0) != "#000000" {
		t.Error("mutating Stops() leaked into the gradient")
	}
}
