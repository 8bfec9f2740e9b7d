package mesh

// Point is one lattice vertex. The original position is fixed at build time;
// X, Y and Displacement are rewritten every frame.
type Point struct {
	OriginalX    float64 `json:"original_x"`
	OriginalY    float64 `json:"original_y"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Displacement float64 `json:"displacement"`
}

// Moved reports whether the point sits away from its original position.
func (p Point) Moved() bool {
	return p.X != p.OriginalX || p.Y != p.OriginalY
}

// Grid is a row-major lattice of (Columns+1) x (Rows+1) points spanning a
// Width x Height container.
type Grid struct {
	Columns int
	Rows    int
	Width   float64
	Height  float64
	Points  []Point
}

// NewGrid lays out the lattice. A zero-sized container collapses every point
// onto the origin, which is tolerated.
func NewGrid(columns, rows int, width, height float64) *Grid {
	g := &Grid{
		Columns: columns,
		Rows:    rows,
		Width:   width,
		Height:  height,
		Points:  make([]Point, 0, (columns+1)*(rows+1)),
	}
	for y := 0; y <= rows; y++ {
		for x := 0; x <= columns; x++ {
			ox := float64(x) / float64(columns) * width
			oy := float64(y) / float64(rows) * height
			g.Points = append(g.Points, Point{OriginalX: ox, OriginalY: oy, X: ox, Y: oy})
		}
	}
	return g
}

// Stride is the number of points per row.
func (g *Grid) Stride() int { return g.Columns + 1 }

// Index maps lattice coordinates to a point index.
func (g *Grid) Index(col, row int) int { return row*g.Stride() + col }

// IsBoundary classifies point i by index arithmetic: first or last column,
// or first or last row.
func (g *Grid) IsBoundary(i int) bool {
	stride := g.Stride()
	col := i % stride
	return col == 0 ||
		col == g.Columns ||
		i < stride ||
		i >= len(g.Points)-stride
}

// IsEdgeCell reports whether cell (x, y) lies on the outer ring of cells.
func (g *Grid) IsEdgeCell(x, y int) bool {
	return y == 0 || y == g.Rows-1 || x == 0 || x == g.Columns-1
}

// BoundaryCount returns how many points the boundary rule selects.
func (g *Grid) BoundaryCount() int {
	n := 0
	for i := range g.Points {
		if g.IsBoundary(i) {
			n++
		}
	}
	return n
}
