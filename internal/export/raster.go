package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/site"
)

type RasterOptions struct {
	Overlay bool
	// Opacity of the mesh over the background. Zero means opaque.
	Opacity float64
}

// Rasterize paints a frame into a w x h image, scaling the container to fit.
func Rasterize(list *mesh.DrawList, w, h int, opts RasterOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(list.Background, 1)), image.Point{}, draw.Src)

	sx, sy := scale(list.Width, w), scale(list.Height, h)
	alpha := opts.Opacity
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}

	z := vector.NewRasterizer(w, h)
	for _, t := range list.Triangles {
		z.Reset(w, h)
		z.DrawOp = draw.Over
		z.MoveTo(float32(t.Vertices[0].X*sx), float32(t.Vertices[0].Y*sy))
		z.LineTo(float32(t.Vertices[1].X*sx), float32(t.Vertices[1].Y*sy))
		z.LineTo(float32(t.Vertices[2].X*sx), float32(t.Vertices[2].Y*sy))
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(t.Fill, alpha)), image.Point{})
	}

	if opts.Overlay {
		veil := color.NRGBA{A: uint8(site.OverlayOpacity*255 + 0.5)}
		draw.Draw(img, img.Bounds(), image.NewUniform(veil), image.Point{}, draw.Over)
	}
	return img
}

// WritePNG encodes a rasterized frame.
func WritePNG(w io.Writer, list *mesh.DrawList, width, height int, opts RasterOptions) error {
	return png.Encode(w, Rasterize(list, width, height, opts))
}

func scale(extent float64, px int) float64 {
	if extent <= 0 {
		return 0
	}
	return float64(px) / extent
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
