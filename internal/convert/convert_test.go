// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/rmlines/internal/backup"
	"github.com/pdiddy/rmlines/pkg/types"
)

// linesFixture builds a minimal valid v5 page: one layer, one fineliner
// stroke with the given points.
func linesFixture(points [][2]float32) []byte {
	var buf bytes.Buffer
	sig := "reMarkable .lines file, version=5"
	buf.WriteString(sig + strings.Repeat(" ", 45-len(sig)))

	u32 := func(v uint32) {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], v)
		buf.Write(tmp[:])
	}
	f32 := func(v float32) { u32(math.Float32bits(v)) }

	u32(1)                              // layer count
	u32(1)                              // strokes in layer 0
	u32(uint32(types.PenFineliner))     // pen
	u32(0)                              // color
	u32(0)                              // reserved
	f32(0.5)                            // width
	u32(uint32(len(points)))            // segment count
	u32(0)                              // v5 extra field
	for _, p := range points {
		f32(p[0])
		f32(p[1])
		f32(0.5) // pressure
		f32(0.1) // tilt
		f32(0)
		f32(0)
	}
	return buf.Bytes()
}

func TestBytesDeterministic(t *testing.T) {
	data := linesFixture([][2]float32{{10, 20}, {30, 40}})
	opts := types.DefaultRenderOptions()

	first, err := Bytes(data, opts, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Bytes(data, opts, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input and options must produce byte-identical SVG")
	}
}

func TestBytesPartialInput(t *testing.T) {
	full := linesFixture([][2]float32{{1, 1}, {2, 2}, {3, 3}})
	// Cut mid-segment: conversion still succeeds with a partial document.
	svg, err := Bytes(full[:len(full)-30], types.DefaultRenderOptions(), io.Discard)
	if err != nil {
		t.Fatalf("truncated input must convert, got %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<polyline") {
		t.Error("partial stroke missing from output")
	}
	if !strings.Contains(out, "</g>") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("partial output must still be well-formed")
	}
}

func TestFileInvalidFormatWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.rm")
	out := filepath.Join(dir, "bad.svg")
	if err := os.WriteFile(in, bytes.Repeat([]byte{0xff}, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	err := File(in, out, types.DefaultRenderOptions(), io.Discard)
	if err == nil {
		t.Fatal("expected an error for a corrupt signature")
	}
	if !IsInvalidFormat(err) {
		t.Errorf("error %v is not the invalid-format condition", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no output file may be created when the header fails validation")
	}
}

func TestFileWritesSVG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.rm")
	out := filepath.Join(dir, "page.svg")
	if err := os.WriteFile(in, linesFixture([][2]float32{{10, 20}}), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := File(in, out, types.DefaultRenderOptions(), io.Discard); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not an SVG document")
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	goodPage := filepath.Join(dir, "good.rm")
	badPage := filepath.Join(dir, "bad.rm")
	if err := os.WriteFile(goodPage, linesFixture(nil), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(badPage, []byte("not a lines file at all, definitely"), 0o644); err != nil {
		t.Fatal(err)
	}

	docs := []backup.Document{
		{UUID: "doc-1", Name: "Notes", Path: "Work/Notes", Pages: []string{goodPage, badPage}},
	}
	cfg := types.ConversionConfig{
		RenderOptions: types.DefaultRenderOptions(),
		OutputDir:     filepath.Join(dir, "out"),
	}

	var log bytes.Buffer
	result := Batch(docs, cfg, &log, io.Discard)
	if result.Converted != 1 || result.Failed != 1 || result.Skipped != 0 {
		t.Fatalf("first run = %+v, want 1 converted, 1 failed", result)
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Error("failure missing from status log")
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "Work", "Notes", "page-001.svg")); err != nil {
		t.Errorf("converted page missing: %v", err)
	}

	// Second run skips the existing output and fails the bad page again.
	log.Reset()
	result = Batch(docs, cfg, &log, io.Discard)
	if result.Skipped != 1 || result.Converted != 0 || result.Failed != 1 {
		t.Fatalf("second run = %+v, want 1 skipped, 1 failed", result)
	}
}
