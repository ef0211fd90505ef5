// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"github.com/pdiddy/rmlines/pkg/types"
)

// SVG writes the document as a complete SVG to out. The root and group
// elements are always opened and closed, so the output is well-formed
// even for a partially decoded document. Style fallbacks (unknown pens,
// out-of-range colors) are reported on diag.
func SVG(doc *types.Document, opts types.RenderOptions, out io.Writer, diag io.Writer) {
	if diag == nil {
		diag = io.Discard
	}
	m := newMapper(opts.CanvasWidth, opts.CanvasHeight)

	canvas := svg.New(out)
	canvas.Start(opts.CanvasWidth, opts.CanvasHeight)
	canvas.Gid("page-1")

	for _, layer := range doc.Layers {
		for _, stroke := range layer.Strokes {
			renderStroke(canvas, m, stroke, opts, diag)
		}
	}

	// Invisible full-canvas rect for downstream page-navigation
	// hit-testing.
	canvas.Rect(0, 0, opts.CanvasWidth, opts.CanvasHeight, `fill-opacity="0.0"`)

	canvas.Gend()
	canvas.End()
}

func renderStroke(canvas *svg.SVG, m mapper, stroke types.Stroke, opts types.RenderOptions, diag io.Writer) {
	st := Resolve(stroke.Pen, float64(stroke.RawWidth), opts.ColoredAnnotations, diag)
	color := strokeColor(st, stroke.ColorIndex, opts.ColoredAnnotations, diag)

	if !st.Dynamic || len(stroke.Segments) == 0 {
		polyline(canvas, m, stroke.Segments, color, st.Width, st.Opacity)
		return
	}
	for _, r := range splitDynamic(stroke.Pen, float64(stroke.RawWidth), stroke.Segments) {
		polyline(canvas, m, r.points, color, r.width, r.opacity)
	}
}

func polyline(canvas *svg.SVG, m mapper, segs []types.Segment, color string, width, opacity float64) {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3f;opacity:%v", color, width, opacity)

	// svgo's Polyline indexes the final point unconditionally, so an
	// empty or truncated-to-zero stroke is written by hand. Strokes are
	// never dropped once their header was read.
	if len(segs) == 0 {
		fmt.Fprintf(canvas.Writer, "<polyline points=\"\" style=\"%s\" />\n", style)
		return
	}

	xs := make([]float64, len(segs))
	ys := make([]float64, len(segs))
	for i, s := range segs {
		xs[i], ys[i] = m.mapPoint(s)
	}
	canvas.Polyline(xs, ys, style)
}
