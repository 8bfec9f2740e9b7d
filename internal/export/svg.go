package export

import (
	"fmt"
	"strings"

	"github.com/magnify-ai/fluidmesh/internal/mesh"
	"github.com/magnify-ai/fluidmesh/internal/site"
)

type SVGOptions struct {
	// Overlay draws the page's black veil and title over the mesh.
	Overlay bool
	Title   string
	// Opacity of the mesh group, for fade-in frames. Zero means opaque.
	Opacity float64
}

// SVG renders one frame as a standalone SVG document: a background rect and
// one unstroked path per triangle, in draw-list order.
func SVG(list *mesh.DrawList, opts SVGOptions) string {
	if list == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" preserveAspectRatio="xMidYMid slice">
<rect width="100%%" height="100%%" fill="%s"/>
`, list.Width, list.Height, list.Width, list.Height, list.BackgroundHex()))

	if opts.Opacity > 0 && opts.Opacity < 1 {
		sb.WriteString(fmt.Sprintf("<g opacity=\"%.3f\">\n", opts.Opacity))
	} else {
		sb.WriteString("<g>\n")
	}

	for _, t := range list.Triangles {
		a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]
		sb.WriteString(fmt.Sprintf(`<path d="M%.2f,%.2f L%.2f,%.2f L%.2f,%.2f Z" fill="%s" stroke="none"/>
`, a.X, a.Y, b.X, b.Y, c.X, c.Y, t.FillHex))
	}
	sb.WriteString("</g>\n")

	if opts.Overlay {
		sb.WriteString(fmt.Sprintf("<rect width=\"100%%\" height=\"100%%\" fill=\"#000000\" fill-opacity=\"%.2f\"/>\n", site.OverlayOpacity))
		title := opts.Title
		if title == "" {
			title = site.Title
		}
		sb.WriteString(fmt.Sprintf(`<text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-weight="bold" font-size="%.0f" fill="#ffffff">%s</text>
`, list.Height/10, escape(title)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
