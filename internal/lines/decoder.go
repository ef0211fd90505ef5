// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lines

import (
	"fmt"
	"io"

	"github.com/pdiddy/rmlines/pkg/types"
)

// maxStrokesPerLayer is the sanity bound on a layer's declared stroke
// count. Native pages realistically hold a few thousand strokes per
// layer; a count past this means the cursor is reading garbage.
const maxStrokesPerLayer = 1_000_000

// segmentSize is the byte width of one segment record: six float32s.
const segmentSize = 24

// Decode parses a lines file into a Document. Recovery decisions are
// written to diag (pass io.Discard to silence them).
//
// Truncation is recoverable by construction: layers, strokes, and
// segments read before the buffer ran out are always kept, and the
// resulting partial Document is valid. The only fatal outcome is a
// header that does not validate, reported as ErrInvalidFormat.
//
// A layer whose stroke count fails the sanity bound is kept as empty and
// decoding stops there: with no length field for a stroke run there is
// no way to resynchronise the cursor onto the next layer boundary, and
// decoding unaligned bytes would corrupt the rest of the document.
func Decode(data []byte, diag io.Writer) (*types.Document, error) {
	if diag == nil {
		diag = io.Discard
	}
	c := newCursor(data)

	h, err := parseHeader(c, diag)
	if err != nil {
		return nil, err
	}
	layout := layoutFor(h.version)

	doc := &types.Document{Version: h.version}

	for i := 0; i < h.layerCount; i++ {
		strokeCount, err := c.uint32()
		if err != nil {
			fmt.Fprintf(diag, "layer %d: buffer exhausted before stroke count, stopping (%d layers decoded)\n", i, len(doc.Layers))
			break
		}

		if strokeCount > maxStrokesPerLayer {
			fmt.Fprintf(diag, "layer %d: stroke count %d fails sanity bound %d, layer kept empty and decoding stopped\n",
				i, strokeCount, maxStrokesPerLayer)
			doc.Layers = append(doc.Layers, types.Layer{})
			break
		}

		layer, complete := decodeLayer(c, layout, strokeCount, i, diag)
		doc.Layers = append(doc.Layers, layer)
		if !complete {
			// The cursor position for the next layer is unknowable
			// once a stroke run was cut short.
			break
		}
	}

	// A validated header promises at least one layer; a buffer that
	// ends right after the header still yields one, empty.
	if len(doc.Layers) == 0 {
		doc.Layers = append(doc.Layers, types.Layer{})
	}

	return doc, nil
}

// decodeLayer reads up to strokeCount strokes. It returns the layer and
// whether the full run was consumed; a false return means the buffer ran
// out mid-stroke and the cursor no longer sits on a record boundary.
func decodeLayer(c *cursor, layout strokeLayout, strokeCount uint32, index int, diag io.Writer) (types.Layer, bool) {
	var layer types.Layer
	for s := uint32(0); s < strokeCount; s++ {
		stroke, segCount, err := decodeStrokeHeader(c, layout)
		if err != nil {
			fmt.Fprintf(diag, "layer %d: buffer exhausted in stroke %d/%d header, keeping %d strokes\n",
				index, s, strokeCount, len(layer.Strokes))
			return layer, false
		}

		for p := uint32(0); p < segCount; p++ {
			seg, err := decodeSegment(c)
			if err != nil {
				fmt.Fprintf(diag, "layer %d: stroke %d truncated at segment %d/%d\n", index, s, p, segCount)
				layer.Strokes = append(layer.Strokes, stroke)
				return layer, false
			}
			stroke.Segments = append(stroke.Segments, seg)
		}
		layer.Strokes = append(layer.Strokes, stroke)
	}
	return layer, true
}

// decodeStrokeHeader reads one stroke record (without its segments) and
// the declared segment count.
func decodeStrokeHeader(c *cursor, layout strokeLayout) (types.Stroke, uint32, error) {
	if c.remaining() < layout.recordSize() {
		return types.Stroke{}, 0, ErrTruncated
	}
	pen, _ := c.uint32()
	color, _ := c.uint32()
	reserved, _ := c.uint32()
	width, _ := c.float32()
	segCount, _ := c.uint32()

	stroke := types.Stroke{
		Pen:        types.PenKind(pen),
		ColorIndex: color,
		Reserved:   reserved,
		RawWidth:   width,
	}
	if layout.hasExtra {
		stroke.Extra, _ = c.uint32()
	}
	return stroke, segCount, nil
}

func decodeSegment(c *cursor) (types.Segment, error) {
	if c.remaining() < segmentSize {
		return types.Segment{}, ErrTruncated
	}
	var seg types.Segment
	seg.X, _ = c.float32()
	seg.Y, _ = c.float32()
	seg.Pressure, _ = c.float32()
	seg.Tilt, _ = c.float32()
	seg.Reserved1, _ = c.float32()
	seg.Reserved2, _ = c.float32()
	return seg, nil
}
