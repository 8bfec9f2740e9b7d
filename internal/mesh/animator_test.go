package mesh_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/noise"
)

var _ = Describe("Grid", func() {
	It("has (columns+1)*(rows+1) points laid out row-major", func() {
		g := mesh.NewGrid(12, 8, 1200, 800)
		Expect(g.Points).To(HaveLen(117))
		Expect(g.Points[0].OriginalX).To(Equal(0.0))
		Expect(g.Points[12].OriginalX).To(Equal(1200.0))
		Expect(g.Points[13].OriginalY).To(Equal(100.0))
		Expect(g.Points[116].OriginalX).To(Equal(1200.0))
		Expect(g.Points[116].OriginalY).To(Equal(800.0))
	})

	It("classifies the outer ring as boundary", func() {
		g := mesh.NewGrid(12, 8, 1200, 800)
		Expect(g.BoundaryCount()).To(Equal(2*13 + 2*7))
		Expect(g.IsBoundary(g.Index(0, 4))).To(BeTrue())
		Expect(g.IsBoundary(g.Index(12, 4))).To(BeTrue())
		Expect(g.IsBoundary(g.Index(6, 0))).To(BeTrue())
		Expect(g.IsBoundary(g.Index(6, 8))).To(BeTrue())
		Expect(g.IsBoundary(g.Index(1, 1))).To(BeFalse())
		Expect(g.IsBoundary(g.Index(11, 7))).To(BeFalse())
	})

	It("collapses to the origin for a zero-sized container", func() {
		g := mesh.NewGrid(12, 8, 0, 0)
		for _, p := range g.Points {
			Expect(p.OriginalX).To(BeZero())
			Expect(p.OriginalY).To(BeZero())
		}
	})
})

var _ = Describe("Animator", func() {
	var a *mesh.Animator

	BeforeEach(func() {
		a = mesh.New(1200, 800, noise.NewSimplex(42))
	})

	It("starts with a zero clock and an undisplaced grid", func() {
		Expect(a.Clock()).To(BeZero())
		Expect(a.Frame()).To(BeZero())
		for _, p := range a.Grid().Points {
			Expect(p.Moved()).To(BeFalse())
			Expect(p.Displacement).To(BeZero())
		}
	})

	It("advances the clock by the configured speed each tick", func() {
		a.Tick()
		a.Tick()
		Expect(a.Clock()).To(BeNumerically("~", 2*mesh.DefaultSpeed, 1e-12))
		Expect(a.Frame()).To(Equal(2))
	})

	It("never moves boundary points", func() {
		for f := 0; f < 200; f++ {
			a.Tick()
			g := a.Grid()
			for i, p := range g.Points {
				if g.IsBoundary(i) {
					Expect(p.Displacement).To(BeZero())
					Expect(p.X).To(Equal(p.OriginalX))
					Expect(p.Y).To(Equal(p.OriginalY))
				}
			}
		}
	})

	It("keeps interior displacement within [0, sqrt(2)] and offsets within the max", func() {
		for f := 0; f < 200; f++ {
			a.Tick()
			g := a.Grid()
			for i, p := range g.Points {
				if g.IsBoundary(i) {
					continue
				}
				Expect(p.Displacement).To(BeNumerically(">=", 0))
				Expect(p.Displacement).To(BeNumerically("<=", math.Sqrt2+1e-12))
				Expect(math.Abs(p.X - p.OriginalX)).To(BeNumerically("<=", mesh.DefaultMaxDisplacement))
				Expect(math.Abs(p.Y - p.OriginalY)).To(BeNumerically("<=", mesh.DefaultMaxDisplacement))
			}
		}
	})

	It("recomputes displacement instead of accumulating it", func() {
		b := mesh.New(1200, 800, noise.Constant(0.5))
		for f := 0; f < 10; f++ {
			b.Tick()
		}
		p := b.Grid().Points[b.Grid().Index(3, 3)]
		Expect(p.X).To(BeNumerically("~", p.OriginalX+20, 1e-9))
		Expect(p.Y).To(BeNumerically("~", p.OriginalY+20, 1e-9))
		Expect(p.Displacement).To(BeNumerically("~", math.Sqrt(0.5), 1e-12))
	})

	It("samples x and y from swapped coordinates with the axis offset", func() {
		var calls [][3]float64
		field := noise.Func(func(x, y, z float64) float64 {
			calls = append(calls, [3]float64{x, y, z})
			return 0
		})
		b := mesh.New(1200, 800, field, mesh.WithGrid(2, 2))
		b.Tick()

		// 3x3 grid has a single interior point at (600, 400).
		Expect(calls).To(HaveLen(2))
		Expect(calls[0][0]).To(BeNumerically("~", 600*mesh.DefaultNoiseScale, 1e-12))
		Expect(calls[0][1]).To(BeNumerically("~", 400*mesh.DefaultNoiseScale, 1e-12))
		Expect(calls[0][2]).To(BeNumerically("~", mesh.DefaultSpeed, 1e-12))
		Expect(calls[1][0]).To(BeNumerically("~", 400*mesh.DefaultNoiseScale, 1e-12))
		Expect(calls[1][1]).To(BeNumerically("~", 600*mesh.DefaultNoiseScale, 1e-12))
		Expect(calls[1][2]).To(BeNumerically("~", mesh.DefaultSpeed+mesh.DefaultAxisOffset, 1e-9))
	})

	It("is reproducible for identical inputs and fields", func() {
		b := mesh.New(1200, 800, noise.NewSimplex(42))
		for f := 0; f < 30; f++ {
			a.Tick()
			b.Tick()
		}
		Expect(a.Grid().Points).To(Equal(b.Grid().Points))
	})

	It("re-mounting starts over from t=0", func() {
		for f := 0; f < 5; f++ {
			a.Tick()
		}
		fresh := mesh.New(1200, 800, noise.NewSimplex(42))
		Expect(fresh.Clock()).To(BeZero())
		fresh.Tick()
		first := mesh.New(1200, 800, noise.NewSimplex(42))
		first.Tick()
		Expect(fresh.Grid().Points).To(Equal(first.Grid().Points))
	})
})

var _ = Describe("Render", func() {
	It("emits two triangles per cell with no skipped cells", func() {
		a := mesh.New(1200, 800, noise.NewSimplex(1))
		list := a.Step(nil)
		Expect(list.Triangles).To(HaveLen(mesh.TriangleCount(12, 8)))
		Expect(list.Triangles).To(HaveLen(192))
	})

	It("uses the documented vertex indices in row-major order", func() {
		a := mesh.New(1200, 800, noise.NewSimplex(1))
		list := a.Render(nil)
		stride := 13

		Expect(list.Triangles[0].Indices).To(Equal([3]int{0, 1, stride}))
		Expect(list.Triangles[1].Indices).To(Equal([3]int{1, stride + 1, stride}))

		// second row, third cell
		i := 1*stride + 2
		tA := list.Triangles[2*(1*12+2)]
		tB := list.Triangles[2*(1*12+2)+1]
		Expect(tA.Indices).To(Equal([3]int{i, i + 1, i + stride}))
		Expect(tB.Indices).To(Equal([3]int{i + 1, i + stride + 1, i + stride}))
	})

	It("places vertices at the current displaced positions", func() {
		a := mesh.New(1200, 800, noise.Constant(-0.25))
		list := a.Step(nil)
		g := a.Grid()
		for _, t := range list.Triangles {
			for k, idx := range t.Indices {
				Expect(t.Vertices[k].X).To(Equal(g.Points[idx].X))
				Expect(t.Vertices[k].Y).To(Equal(g.Points[idx].Y))
			}
		}
	})

	It("averages vertex displacement and floors edge shades at 0.3", func() {
		a := mesh.New(1200, 800, noise.NewSimplex(9))
		for f := 0; f < 50; f++ {
			list := a.Step(nil)
			g := a.Grid()
			for _, t := range list.Triangles {
				sum := 0.0
				for _, idx := range t.Indices {
					sum += g.Points[idx].Displacement
				}
				Expect(t.AvgDisplacement).To(BeNumerically("~", sum/3, 1e-12))
				if t.Edge {
					Expect(t.Shade).To(BeNumerically(">=", mesh.DefaultEdgeFloor))
					Expect(t.Shade).To(BeNumerically("~", 0.3+t.AvgDisplacement*0.7, 1e-12))
				} else {
					Expect(t.Shade).To(Equal(t.AvgDisplacement))
				}
			}
		}
	})

	It("fills an undisplaced frame black inside and lifted on the edge ring", func() {
		a := mesh.New(1200, 800, noise.Constant(0))
		list := a.Step(nil)
		for _, t := range list.Triangles {
			if t.Edge {
				Expect(t.FillHex).To(Equal("#262626"))
			} else {
				Expect(t.FillHex).To(Equal("#000000"))
			}
		}
		Expect(list.BackgroundHex()).To(Equal("#232323"))
	})

	It("marks the outer ring of cells as edge cells", func() {
		a := mesh.New(1200, 800, noise.Constant(0))
		list := a.Render(nil)
		edges := 0
		for _, t := range list.Triangles {
			if t.Edge {
				edges++
			}
		}
		// 12x8 cells: the inner 10x6 block is not edge.
		Expect(edges).To(Equal(2 * (12*8 - 10*6)))
	})

	It("reuses the destination slice", func() {
		a := mesh.New(1200, 800, noise.NewSimplex(1))
		buf := make([]mesh.Triangle, 0, 256)
		list := a.Step(buf)
		Expect(cap(list.Triangles)).To(Equal(256))
	})
})

var _ = Describe("End-to-end 1200x800 mount", func() {
	It("matches the reference scenario after one frame", func() {
		a := mesh.New(1200, 800, noise.Constant(0.3))
		g := a.Grid()
		Expect(g.Points).To(HaveLen(117))

		a.Tick()
		boundary, interior := 0, 0
		for i, p := range g.Points {
			if g.IsBoundary(i) {
				boundary++
				Expect(p.Displacement).To(BeZero())
				Expect(p.Moved()).To(BeFalse())
				continue
			}
			interior++
			Expect(p.Moved()).To(BeTrue())
			Expect(math.Abs(p.X - p.OriginalX)).To(BeNumerically("<=", 40))
			Expect(math.Abs(p.Y - p.OriginalY)).To(BeNumerically("<=", 40))
		}
		Expect(boundary).To(Equal(40))
		Expect(interior).To(Equal(77))
	})
})

var _ = Describe("Params", func() {
	It("accepts the defaults", func() {
		Expect(mesh.DefaultParams().Validate()).To(Succeed())
	})

	DescribeTable("rejects unusable values",
		func(mutate func(*mesh.Params)) {
			p := mesh.DefaultParams()
			mutate(&p)
			err := p.Validate()
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, mesh.ErrInvalidParams)).To(BeTrue())
		},
		Entry("zero columns", func(p *mesh.Params) { p.Columns = 0 }),
		Entry("zero rows", func(p *mesh.Params) { p.Rows = 0 }),
		Entry("negative speed", func(p *mesh.Params) { p.Speed = -1 }),
		Entry("negative displacement", func(p *mesh.Params) { p.MaxDisplacement = -1 }),
		Entry("edge floor above one", func(p *mesh.Params) { p.EdgeFloor = 1.5 }),
	)
})
