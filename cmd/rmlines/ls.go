// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rmlines/internal/backup"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the document tree of a tablet backup",
	Long: `Ls scans a local backup of the tablet's data directory and prints the
document tree: display path, page count, and last-modified time. Deleted
and trashed documents are omitted.`,
	RunE: runLs,
}

func init() {
	lsCmd.Flags().String("backup-dir", ".", "tablet backup directory")
	lsCmd.Flags().String("format", "table", "output format: table or yaml")

	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	backupDir, _ := cmd.Flags().GetString("backup-dir")
	format, _ := cmd.Flags().GetString("format")

	docs, err := backup.ScanDir(backupDir)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		data, err := yaml.Marshal(docs)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		os.Stdout.Write(data)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tPAGES\tMODIFIED")
		for _, d := range docs {
			fmt.Fprintf(w, "%s\t%d\t%s\n", d.Path, len(d.Pages), d.LastModified.Format("2006-01-02 15:04"))
		}
		w.Flush()
	default:
		return fmt.Errorf("unknown format %q (use table or yaml)", format)
	}
	return nil
}
