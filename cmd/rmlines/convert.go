// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rmlines/internal/backup"
	"github.com/pdiddy/rmlines/internal/convert"
	"github.com/pdiddy/rmlines/internal/raster"
	"github.com/pdiddy/rmlines/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.rm] [output.svg]",
	Short: "Convert a stroke page (or a whole backup) to SVG",
	Long: `Convert decodes a binary stroke page and renders it as SVG. With a single
argument the output path is the input with a .svg extension. Pass --png to
also write a rasterised PNG next to the SVG.

With --all, every page of every document in --backup-dir is converted into
--output-dir, mirroring the document tree. Existing outputs are skipped, so
re-runs only convert new pages.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Float64("width", types.DeviceWidth, "output canvas width")
	convertCmd.Flags().Float64("height", types.DeviceHeight, "output canvas height")
	convertCmd.Flags().Bool("colored", false, "render annotation colors (blue/red palette)")
	convertCmd.Flags().Bool("verbose", false, "report every recovery decision on stderr")
	convertCmd.Flags().Bool("png", false, "also write a rasterised PNG")
	convertCmd.Flags().String("png-output", "", "PNG output path (default: SVG path with .png)")
	convertCmd.Flags().Bool("all", false, "convert every page in --backup-dir")
	convertCmd.Flags().String("backup-dir", "", "tablet backup directory (for --all)")
	convertCmd.Flags().String("output-dir", "out", "output directory (for --all)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := renderOptionsFromFlags(cmd)
	diag := io.Writer(io.Discard)
	if opts.Verbose {
		diag = os.Stderr
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		return runConvertAll(cmd, opts, diag)
	}

	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("expected an input file (and optional output file), got %d arguments", len(args))
	}
	inputPath := args[0]
	outputPath := replaceExt(inputPath, ".svg")
	if len(args) == 2 {
		outputPath = args[1]
	}

	if err := convert.File(inputPath, outputPath, opts, diag); err != nil {
		return err
	}

	if png, _ := cmd.Flags().GetBool("png"); png {
		return writePNG(cmd, outputPath, opts)
	}
	return nil
}

func runConvertAll(cmd *cobra.Command, opts types.RenderOptions, diag io.Writer) error {
	backupDir, _ := cmd.Flags().GetString("backup-dir")
	if backupDir == "" {
		return fmt.Errorf("--all requires --backup-dir")
	}
	outputDir, _ := cmd.Flags().GetString("output-dir")

	docs, err := backup.ScanDir(backupDir)
	if err != nil {
		return err
	}

	cfg := types.ConversionConfig{RenderOptions: opts, OutputDir: outputDir}
	result := convert.Batch(docs, cfg, os.Stdout, diag)
	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed conversion", result.Failed)
	}
	return nil
}

func writePNG(cmd *cobra.Command, svgPath string, opts types.RenderOptions) error {
	pngPath, _ := cmd.Flags().GetString("png-output")
	if pngPath == "" {
		pngPath = replaceExt(svgPath, ".png")
	}

	svgData, err := os.ReadFile(svgPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", svgPath, err)
	}
	pngData, err := raster.PNG(svgData, int(opts.CanvasWidth), int(opts.CanvasHeight))
	if err != nil {
		return err
	}
	if err := os.WriteFile(pngPath, pngData, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", pngPath, err)
	}
	return nil
}

func renderOptionsFromFlags(cmd *cobra.Command) types.RenderOptions {
	opts := types.DefaultRenderOptions()
	if w, _ := cmd.Flags().GetFloat64("width"); w > 0 {
		opts.CanvasWidth = w
	}
	if h, _ := cmd.Flags().GetFloat64("height"); h > 0 {
		opts.CanvasHeight = h
	}
	opts.ColoredAnnotations, _ = cmd.Flags().GetBool("colored")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")
	return opts
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
