package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/salesrep/internal/importer"
)

func newPackagesCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Import package details from a CSV export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return importCSV(cmd, opts, "packages", file, (*importer.Importer).Packages)
		},
	}
	cmd.Flags().StringVar(&file, "file", "package_list.csv", "CSV file with package rows")
	return cmd
}

func newCustomersCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Import customers from a CSV export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return importCSV(cmd, opts, "customers", file, (*importer.Importer).Customers)
		},
	}
	cmd.Flags().StringVar(&file, "file", "customers.csv", "CSV file with customer rows")
	return cmd
}

func newProductsCmd(opts *options) *cobra.Command {
	var file, sheet string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Import the product catalogue from an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("opening %s: %w", file, err)
			}
			return opts.run(cmd, "products", func(ctx context.Context, imp *importer.Importer) (importer.Result, error) {
				return imp.Products(ctx, file, sheet)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "catalogue.xlsx", "xlsx workbook with the product catalogue")
	cmd.Flags().StringVar(&sheet, "sheet", importer.DefaultProductSheet, "worksheet holding the products")
	return cmd
}

type csvImport func(imp *importer.Importer, ctx context.Context, r io.Reader) (importer.Result, error)

func importCSV(cmd *cobra.Command, opts *options, kind, file string, load csvImport) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	return opts.run(cmd, kind, func(ctx context.Context, imp *importer.Importer) (importer.Result, error) {
		return load(imp, ctx, f)
	})
}
