// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a decoded Document into SVG markup. Pen styling
// is a pure function of the stroke parameters and the render options;
// nothing in this package holds state across calls, so conversions may
// run concurrently without coordination.
package render

import (
	"fmt"
	"io"

	"github.com/pdiddy/rmlines/pkg/types"
)

// deviceScale is the empirical device-to-A4 divisor applied to every
// computed stroke width.
const deviceScale = 2.3

// noOverride marks a style that uses the stroke's own color index.
const noOverride = -1

// Style is the resolved rendering style for one stroke.
type Style struct {
	// Width is the stroke width in output units, already divided by
	// deviceScale. For dynamic pens it is the fallback width; the
	// per-run widths come from the splitter.
	Width float64

	// Opacity in [0, 1]. Zero still emits the stroke (erase-area
	// strokes are kept for structural fidelity).
	Opacity float64

	// Dynamic marks pens whose width varies along the stroke.
	Dynamic bool

	// colorOverride forces a palette index regardless of the stroke's
	// color field, or noOverride.
	colorOverride int
}

// Resolve maps a pen and its raw width parameter to a rendering style.
// Unrecognised pens fall back to an opaque default and are reported on
// diag rather than failing the conversion.
func Resolve(pen types.PenKind, rawWidth float64, coloredAnnotations bool, diag io.Writer) Style {
	w := rawWidth
	st := Style{Opacity: 1, colorOverride: noOverride}

	switch pen {
	case types.PenBrush, types.PenTiltPencil:
		st.Dynamic = true
		st.Width = w
	case types.PenFineliner, types.PenBallpoint:
		st.Width = 32*w*w - 116*w + 107
	case types.PenMarker:
		st.Width = 64*w - 112
		st.Opacity = 0.9
	case types.PenHighlighter:
		st.Width = 30
		st.Opacity = 0.2
		if coloredAnnotations {
			st.colorOverride = 3
		}
	case types.PenEraser:
		st.Width = 1280*w*w - 4800*w + 4510
		st.colorOverride = 2
	case types.PenPencilSharp:
		st.Width = 16*w - 27
		st.Opacity = 0.9
	case types.PenEraseArea:
		st.Width = w
		st.Opacity = 0
	default:
		fmt.Fprintf(diag, "unknown pen id %d, using default style\n", uint32(pen))
		st.Width = w
	}

	st.Width /= deviceScale
	return st
}

// palette returns the color table for one conversion. The table is
// built per call from the flag; there is no process-wide mutable state.
func palette(coloredAnnotations bool) [4]string {
	if coloredAnnotations {
		return [4]string{"blue", "red", "white", "yellow"}
	}
	return [4]string{"black", "grey", "white", "yellow"}
}

// strokeColor resolves a stroke's color name from its index, the style's
// override, and the active palette. Out-of-range indices resolve to
// black and are reported on diag.
func strokeColor(st Style, colorIndex uint32, coloredAnnotations bool, diag io.Writer) string {
	p := palette(coloredAnnotations)
	idx := int(colorIndex)
	if st.colorOverride != noOverride {
		idx = st.colorOverride
	}
	if idx < 0 || idx >= len(p) {
		fmt.Fprintf(diag, "unknown color index %d, using black\n", colorIndex)
		return "black"
	}
	return p[idx]
}
