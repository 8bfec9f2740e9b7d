package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

// drawMesh fills every triangle in draw-list order, scaled from container to
// screen coordinates.
func drawMesh(list *mesh.DrawList, sx, sy float32, opacity float64) {
	for _, t := range list.Triangles {
		a, b, c := screen(t.Vertices, sx, sy)
		a, b, c = counterClockwise(a, b, c)
		rl.DrawTriangle(a, b, c, toColor(t.Fill, opacity))
	}
}

func drawWireframe(list *mesh.DrawList, sx, sy float32) {
	for _, t := range list.Triangles {
		a, b, c := screen(t.Vertices, sx, sy)
		a, b, c = counterClockwise(a, b, c)
		rl.DrawTriangleLines(a, b, c, ColWire)
	}
}

func screen(v [3]mesh.Vec2, sx, sy float32) (rl.Vector2, rl.Vector2, rl.Vector2) {
	return rl.NewVector2(float32(v[0].X)*sx, float32(v[0].Y)*sy),
		rl.NewVector2(float32(v[1].X)*sx, float32(v[1].Y)*sy),
		rl.NewVector2(float32(v[2].X)*sx, float32(v[2].Y)*sy)
}

// counterClockwise orders vertices the way raylib culls them: counter-
// clockwise on a y-down screen, i.e. a negative cross product.
func counterClockwise(a, b, c rl.Vector2) (rl.Vector2, rl.Vector2, rl.Vector2) {
	if cross(a, b, c) > 0 {
		return a, c, b
	}
	return a, b, c
}

func cross(a, b, c rl.Vector2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
