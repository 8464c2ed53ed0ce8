package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ModaVista/internal/catalog"
	"ModaVista/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the demo catalog to an xlsx workbook",
	Long: `Write the seeded catalog (Products and Categories sheets) to an
xlsx workbook.

Examples:
  storefront export                      # writes catalog.xlsx
  storefront export --out /tmp/cat.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), exportOut)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "catalog.xlsx", "Output file")
}

func runExport(ctx context.Context, path string) error {
	st := store.New()
	store.Seed(st, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := catalog.NewService(st).ExportXLSX(ctx, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
