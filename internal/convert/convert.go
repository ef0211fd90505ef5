// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert is the public entry point of the pipeline: it runs
// decode and render in sequence and writes the resulting SVG. Single
// files and whole-backup batches share the same path.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/rmlines/internal/backup"
	"github.com/pdiddy/rmlines/internal/lines"
	"github.com/pdiddy/rmlines/internal/render"
	"github.com/pdiddy/rmlines/pkg/types"
)

// Bytes converts one page of lines data to SVG. Recoverable decode
// conditions (truncation, unknown pens or colors) degrade to a partial
// but well-formed document; only a header that fails validation returns
// an error, in which case no output is produced.
func Bytes(data []byte, opts types.RenderOptions, diag io.Writer) ([]byte, error) {
	if diag == nil {
		diag = io.Discard
	}
	doc, err := lines.Decode(data, diag)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Fprintf(diag, "decoded version %s, %d layer(s), %d stroke(s)\n",
			doc.Version, len(doc.Layers), doc.StrokeCount())
	}

	var buf strings.Builder
	render.SVG(doc, opts, &buf, diag)
	return []byte(buf.String()), nil
}

// File converts inputPath to an SVG at outputPath. Nothing is written
// when the input does not validate; read and write failures are wrapped
// with their path.
func File(inputPath, outputPath string, opts types.RenderOptions, diag io.Writer) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	svg, err := Bytes(data, opts, diag)
	if err != nil {
		return fmt.Errorf("converting %s: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, svg, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of pages processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any pages failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch converts every page of every document into the output
// directory, mirroring the backup's document tree. Existing outputs are
// skipped so re-runs only touch new pages. Per-page status lines go to
// w, decode diagnostics to diag; failures are reported and do not abort
// the run.
func Batch(docs []backup.Document, cfg types.ConversionConfig, w, diag io.Writer) BatchResult {
	var result BatchResult
	for _, doc := range docs {
		outDir := filepath.Join(cfg.OutputDir, filepath.FromSlash(doc.Path))
		for i, page := range doc.Pages {
			name := fmt.Sprintf("page-%03d.svg", i+1)
			outPath := filepath.Join(outDir, name)
			rel := doc.Path + "/" + name

			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(w, "skipped: %s (already exists)\n", rel)
				result.Skipped++
				continue
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", rel, err)
				result.Failed++
				continue
			}
			if err := File(page, outPath, cfg.RenderOptions, diag); err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", rel, err)
				result.Failed++
				continue
			}
			fmt.Fprintf(w, "converted: %s\n", rel)
			result.Converted++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// IsInvalidFormat reports whether err is the fatal bad-header condition,
// as opposed to an I/O failure.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, lines.ErrInvalidFormat)
}
