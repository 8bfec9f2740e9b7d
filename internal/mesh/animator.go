// Package mesh implements the displaced triangle grid behind the site's pages.
//
// An Animator owns a Grid, a clock and a noise field. Tick perturbs interior
// points from the noise field; Render turns the grid into an ordered list of
// filled triangles whose shade follows local displacement. Nothing here knows
// how the triangles reach a screen.
package mesh

import (
	"math"

	"github.com/magnify-ai/fluidmesh/internal/noise"
	"github.com/magnify-ai/fluidmesh/internal/palette"
)

type Animator struct {
	params Params
	grid   *Grid
	field  noise.Field
	clock  float64
	frame  int
}

// New mounts an animator on a width x height container. A nil field gets a
// freshly seeded simplex field. Params are used as given; callers that accept
// user input should run Params.Validate first.
func New(width, height float64, field noise.Field, opts ...Option) *Animator {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	if p.Gradient == nil {
		p.Gradient = palette.Default()
	}
	if field == nil {
		field = noise.NewSimplex(0)
	}
	return &Animator{
		params: p,
		grid:   NewGrid(p.Columns, p.Rows, width, height),
		field:  field,
	}
}

func (a *Animator) Params() Params { return a.params }
func (a *Animator) Grid() *Grid    { return a.grid }
func (a *Animator) Clock() float64 { return a.clock }
func (a *Animator) Frame() int     { return a.frame }

// Tick advances the clock by one frame and recomputes every point.
func (a *Animator) Tick() {
	a.clock += a.params.Speed
	a.frame++

	g := a.grid
	scale := a.params.NoiseScale
	for i := range g.Points {
		pt := &g.Points[i]
		if g.IsBoundary(i) {
			pt.X, pt.Y = pt.OriginalX, pt.OriginalY
			pt.Displacement = 0
			continue
		}

		nx, ny := a.Sample(pt.OriginalX*scale, pt.OriginalY*scale)
		pt.X = pt.OriginalX + nx*a.params.MaxDisplacement
		pt.Y = pt.OriginalY + ny*a.params.MaxDisplacement
		pt.Displacement = math.Sqrt(nx*nx + ny*ny)
	}
}

// Sample returns the x and y noise values for scaled coordinates (sx, sy) at
// the current clock. The y sample swaps the inputs and shifts time by the axis
// offset.
func (a *Animator) Sample(sx, sy float64) (float64, float64) {
	nx := noise.Clamp(a.field.Eval(sx, sy, a.clock))
	ny := noise.Clamp(a.field.Eval(sy, sx, a.clock+a.params.AxisOffset))
	return nx, ny
}

// Render emits the current grid as triangles, reusing dst's backing array.
// Cells are visited row-major; each cell yields triangle A then triangle B.
func (a *Animator) Render(dst []Triangle) DrawList {
	g := a.grid
	stride := g.Stride()
	pts := g.Points
	tris := dst[:0]

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Columns; x++ {
			i := y*stride + x
			if i+stride+1 >= len(pts) {
				continue
			}
			edge := g.IsEdgeCell(x, y)
			tris = append(tris,
				a.triangle([3]int{i, i + 1, i + stride}, edge),
				a.triangle([3]int{i + 1, i + stride + 1, i + stride}, edge),
			)
		}
	}

	return DrawList{
		Frame:      a.frame,
		Time:       a.clock,
		Width:      g.Width,
		Height:     g.Height,
		Background: a.params.Gradient.Background(),
		Triangles:  tris,
	}
}

// Step is Tick followed by Render.
func (a *Animator) Step(dst []Triangle) DrawList {
	a.Tick()
	return a.Render(dst)
}

func (a *Animator) triangle(idx [3]int, edge bool) Triangle {
	pts := a.grid.Points
	var t Triangle
	t.Indices = idx
	t.Edge = edge

	sum := 0.0
	for k, i := range idx {
		t.Vertices[k] = Vec2{X: pts[i].X, Y: pts[i].Y}
		sum += pts[i].Displacement
	}
	t.AvgDisplacement = sum / 3

	t.Shade = t.AvgDisplacement
	if edge {
		t.Shade = palette.EdgeShade(t.AvgDisplacement, a.params.EdgeFloor)
	}
	t.Fill = a.params.Gradient.At(t.Shade)
	t.FillHex = t.Fill.Hex()
	return t
}
