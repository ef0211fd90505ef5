// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the rmlines pipeline:
// the decoded notebook page structures and the configuration structs
// consumed by the CLI.
package types

// Device canvas dimensions of the tablet, in native units. Every stroke
// coordinate in a lines file lives in this space.
const (
	DeviceWidth  = 1404
	DeviceHeight = 1872
)

// FormatVersion identifies the lines-file format generation, taken from
// the version digits in the file signature.
type FormatVersion string

const (
	V3 FormatVersion = "3"
	V4 FormatVersion = "4"
	V5 FormatVersion = "5"
	V6 FormatVersion = "6"
)

// PenKind is the raw tool identifier recorded per stroke. Identifiers
// outside the known range are kept as-is and rendered with a default
// style rather than rejected.
type PenKind uint32

const (
	PenBrush       PenKind = 0
	PenTiltPencil  PenKind = 1
	PenFineliner   PenKind = 2
	PenMarker      PenKind = 3
	PenBallpoint   PenKind = 4
	PenHighlighter PenKind = 5
	PenEraser      PenKind = 6
	PenPencilSharp PenKind = 7
	PenEraseArea   PenKind = 8
)

// Known reports whether p is one of the enumerated pen identifiers.
func (p PenKind) Known() bool {
	return p <= PenEraseArea
}

func (p PenKind) String() string {
	switch p {
	case PenBrush:
		return "brush"
	case PenTiltPencil:
		return "tilt-pencil"
	case PenFineliner:
		return "fineliner"
	case PenMarker:
		return "marker"
	case PenBallpoint:
		return "pen"
	case PenHighlighter:
		return "highlighter"
	case PenEraser:
		return "eraser"
	case PenPencilSharp:
		return "pencil-sharp"
	case PenEraseArea:
		return "erase-area"
	}
	return "unknown"
}

// Segment is one sampled point of a stroke, in device-native coordinates.
// The two reserved fields are carried by the file but unused by rendering.
type Segment struct {
	X         float32
	Y         float32
	Pressure  float32
	Tilt      float32
	Reserved1 float32
	Reserved2 float32
}

// Stroke is one continuous pen gesture: the tool, its raw style
// parameters, and the sampled points in file order. A stroke whose
// segment run was cut short by a truncated buffer keeps the segments
// that were read; it is never dropped once its header has been read.
type Stroke struct {
	// Pen is the raw tool identifier.
	Pen PenKind

	// ColorIndex selects an entry in the rendering palette.
	ColorIndex uint32

	// Reserved is carried but unused.
	Reserved uint32

	// RawWidth is the base width parameter before any pen formula.
	RawWidth float32

	// Extra is the trailing field present in V5/V6 stroke records.
	// Zero for V3/V4 files.
	Extra uint32

	Segments []Segment
}

// Layer is an ordered group of strokes sharing a z-order on one page.
// A layer may be partially populated if decoding stopped inside it.
type Layer struct {
	Strokes []Stroke
}

// Document is one decoded notebook page: the detected format version and
// the layers in file order. It is built once per decode call and never
// mutated afterwards.
type Document struct {
	Version FormatVersion
	Layers  []Layer
}

// StrokeCount returns the total number of strokes across all layers.
func (d *Document) StrokeCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Strokes)
	}
	return n
}

// RenderOptions controls SVG output for a single conversion. The struct
// is supplied once per call and never mutated mid-run.
type RenderOptions struct {
	// CanvasWidth and CanvasHeight set the output canvas size in SVG
	// user units. Defaults are the device dimensions.
	CanvasWidth  float64 `json:"canvas_width" yaml:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height" yaml:"canvas_height"`

	// ColoredAnnotations switches the palette so annotation layers come
	// out blue/red instead of black/grey.
	ColoredAnnotations bool `json:"colored_annotations" yaml:"colored_annotations"`

	// Verbose surfaces every recovery decision on the diagnostic stream.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultRenderOptions returns options targeting the native device canvas.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		CanvasWidth:  DeviceWidth,
		CanvasHeight: DeviceHeight,
	}
}
