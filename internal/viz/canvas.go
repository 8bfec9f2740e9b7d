package viz

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

const brailleBase = 0x2800

// Braille dot bits, indexed by [subY][subX]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas for the wireframe view. Its resolution in
// dots is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Wireframe clears the canvas and traces every triangle edge of list, scaled
// from the container to the canvas' dot resolution.
func (c *Canvas) Wireframe(list *mesh.DrawList) {
	c.Clear()
	if list.Width <= 0 || list.Height <= 0 {
		return
	}
	sx := float64(c.Width*2-1) / list.Width
	sy := float64(c.Height*4-1) / list.Height
	dot := func(v mesh.Vec2) (int, int) {
		return int(math.Round(v.X * sx)), int(math.Round(v.Y * sy))
	}
	for _, t := range list.Triangles {
		ax, ay := dot(t.Vertices[0])
		bx, by := dot(t.Vertices[1])
		cx, cy := dot(t.Vertices[2])
		c.DrawLine(ax, ay, bx, by)
		c.DrawLine(bx, by, cx, cy)
		c.DrawLine(cx, cy, ax, ay)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// HalfBlock turns an image into rows of upper-half-block cells: each cell's
// foreground is the upper pixel and its background the lower one. Odd image
// heights repeat the last row.
func HalfBlock(img *image.RGBA) string {
	b := img.Bounds()
	styles := make(map[[2]string]lipgloss.Style)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		lower := y + 1
		if lower >= b.Max.Y {
			lower = y
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			key := [2]string{hexAt(img, x, y), hexAt(img, x, lower)}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key[0])).
					Background(lipgloss.Color(key[1]))
				styles[key] = st
			}
			sb.WriteString(st.Render("▀"))
		}
	}
	return sb.String()
}

func hexAt(img *image.RGBA, x, y int) string {
	c, _ := colorful.MakeColor(img.RGBAAt(x, y))
	return c.Hex()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
