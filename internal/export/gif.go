package export

import (
	"errors"
	"image"
	"image/color"
	colorpalette "image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
)

var ErrNoFrames = errors.New("export: no frames to encode")

// GIFRecorder collects rasterized frames and encodes them as a looping GIF.
type GIFRecorder struct {
	width, height int
	// Delay between frames in hundredths of a second.
	delay  int
	opts   RasterOptions
	frames []*image.Paletted
	pal    color.Palette
}

func NewGIFRecorder(width, height, delay int, opts RasterOptions) *GIFRecorder {
	if delay <= 0 {
		delay = 2
	}
	return &GIFRecorder{width: width, height: height, delay: delay, opts: opts}
}

// Add rasterizes and quantizes one frame.
func (r *GIFRecorder) Add(list *mesh.DrawList) {
	if r.pal == nil {
		r.pal = paletteFor(list)
	}
	src := Rasterize(list, r.width, r.height, r.opts)
	dst := image.NewPaletted(src.Bounds(), r.pal)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	r.frames = append(r.frames, dst)
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// paletteFor picks a 256-level gray ramp when every fill is neutral and falls
// back to Plan9 otherwise.
func paletteFor(list *mesh.DrawList) color.Palette {
	neutral := func(r, g, b uint8) bool { return r == g && g == b }
	if r, g, b := list.Background.Clamped().RGB255(); !neutral(r, g, b) {
		return colorpalette.Plan9
	}
	for _, t := range list.Triangles {
		if r, g, b := t.Fill.Clamped().RGB255(); !neutral(r, g, b) {
			return colorpalette.Plan9
		}
	}
	return grays()
}

func grays() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

// WriteGIF encodes a finished sequence of frames in one call.
func WriteGIF(w io.Writer, lists []mesh.DrawList, width, height, delay int, opts RasterOptions) error {
	rec := NewGIFRecorder(width, height, delay, opts)
	for i := range lists {
		rec.Add(&lists[i])
	}
	return rec.Encode(w)
}
