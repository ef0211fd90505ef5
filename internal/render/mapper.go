// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/pdiddy/rmlines/pkg/types"

// mapper scales device-native coordinates onto the requested canvas,
// preserving the device aspect ratio. Output that does not match the
// device proportions is letterboxed rather than stretched.
type mapper struct {
	sx, sy float64
}

func newMapper(canvasWidth, canvasHeight float64) mapper {
	deviceRatio := float64(types.DeviceHeight) / float64(types.DeviceWidth)
	ratio := (canvasHeight / canvasWidth) / deviceRatio

	if ratio > 1 {
		return mapper{
			sx: ratio * canvasWidth / float64(types.DeviceWidth),
			sy: canvasHeight / float64(types.DeviceHeight),
		}
	}
	return mapper{
		sx: canvasWidth / float64(types.DeviceWidth),
		sy: (1 / ratio) * canvasHeight / float64(types.DeviceHeight),
	}
}

// mapPoint converts one native point to canvas coordinates.
func (m mapper) mapPoint(s types.Segment) (x, y float64) {
	return float64(s.X) * m.sx, float64(s.Y) * m.sy
}
