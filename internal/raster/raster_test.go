// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"bytes"
	"image/png"
	"testing"
)

const testSVG = `<?xml version="1.0"?>
<svg width="100" height="100" xmlns="http://www.w3.org/2000/svg">
<polyline points="10,10 90,90" style="fill:none;stroke:black;stroke-width:2.000;opacity:1" />
</svg>`

func TestPNG(t *testing.T) {
	data, err := PNG([]byte(testSVG), 200, 200)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("image is %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}

func TestPNGRejectsGarbage(t *testing.T) {
	if _, err := PNG([]byte("<not-svg"), 100, 100); err == nil {
		t.Error("expected an error for unparsable input")
	}
}

func TestPNGRejectsZeroSize(t *testing.T) {
	if _, err := PNG([]byte(testSVG), 0, 100); err == nil {
		t.Error("expected an error for a zero dimension")
	}
}
