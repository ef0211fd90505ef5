// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/pdiddy/rmlines/pkg/types"

// runLength is the segment stride at which dynamic pens recompute their
// width and opacity.
const runLength = 8

// run is one sub-polyline of a dynamic-width stroke, with the style
// computed from the segment opening the run.
type run struct {
	width   float64
	opacity float64
	points  []types.Segment
}

// splitDynamic cuts a dynamic-pen stroke into runs of runLength
// segments. Each run starts at a segment whose index is a multiple of
// runLength and recomputes width/opacity from that segment's pressure
// and tilt; the point preceding the cut is repeated as the new run's
// first point so the visual path stays continuous.
func splitDynamic(pen types.PenKind, baseWidth float64, segs []types.Segment) []run {
	var runs []run
	var cur run
	for i, seg := range segs {
		if i%runLength == 0 {
			if i > 0 {
				runs = append(runs, cur)
			}
			w, o := dynamicStyle(pen, baseWidth, seg)
			cur = run{width: w, opacity: o}
			if i > 0 {
				cur.points = append(cur.points, segs[i-1])
			}
		}
		cur.points = append(cur.points, seg)
	}
	if len(cur.points) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// dynamicStyle computes the width and opacity for one run from its
// opening segment.
func dynamicStyle(pen types.PenKind, baseWidth float64, seg types.Segment) (width, opacity float64) {
	pressure := float64(seg.Pressure)
	tilt := float64(seg.Tilt)

	opacity = 1
	switch pen {
	case types.PenTiltPencil:
		width = (10*tilt - 2) * (8*baseWidth - 14)
		opacity = (pressure - 0.2) * (pressure - 0.2)
	default: // brush
		width = 5 * tilt * (6*baseWidth - 10) * (1 + 2*pressure*pressure*pressure)
	}
	return width / deviceScale, opacity
}
