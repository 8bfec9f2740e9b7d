package mesh

import "github.com/lucasb-eyer/go-colorful"

// Vec2 is a position on the drawing surface.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Triangle is one filled, unstroked draw command.
type Triangle struct {
	Vertices        [3]Vec2        `json:"vertices"`
	Indices         [3]int         `json:"indices"`
	AvgDisplacement float64        `json:"avg_displacement"`
	Shade           float64        `json:"shade"`
	Fill            colorful.Color `json:"-"`
	FillHex         string         `json:"fill"`
	Edge            bool           `json:"edge"`
}

// DrawList is everything a surface needs to paint one frame.
type DrawList struct {
	Frame      int            `json:"frame"`
	Time       float64        `json:"time"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Background colorful.Color `json:"-"`
	Triangles  []Triangle     `json:"triangles"`
}

// BackgroundHex formats the page background color.
func (d *DrawList) BackgroundHex() string { return d.Background.Hex() }

// TriangleCount is the number of triangles a full render of a columns x rows grid emits.
func TriangleCount(columns, rows int) int { return 2 * columns * rows }
