// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rmlines/internal/backup"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the SQLite catalog of a tablet backup",
	Long: `Index scans a local tablet backup and rebuilds the catalog database
(catalog.db) from it. The catalog lets other tooling browse the document
tree without rescanning the backup's sidecar files.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("backup-dir", ".", "tablet backup directory")
	indexCmd.Flags().String("catalog-dir", "", "catalog directory (default: backup dir)")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	backupDir, _ := cmd.Flags().GetString("backup-dir")
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = backupDir
	}

	docs, err := backup.ScanDir(backupDir)
	if err != nil {
		return err
	}

	store, err := backup.NewStore(catalogDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Rebuild(context.Background(), docs); err != nil {
		return err
	}

	pages := 0
	for _, d := range docs {
		pages += len(d.Pages)
	}
	fmt.Printf("Catalogued %d document(s), %d page(s)\n", len(docs), pages)
	return nil
}
