// Package cli defines the cobra command tree for the catalogue importer.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/bootstrap"
	"github.com/mamadbah2/salesrep/internal/config"
	"github.com/mamadbah2/salesrep/internal/importer"
	"github.com/mamadbah2/salesrep/internal/repository"
	"github.com/mamadbah2/salesrep/pkg/logger"
)

// StoreOpener returns the store imports are written to.
type StoreOpener func(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.Store, error)

type options struct {
	envFile string
	dryRun  bool
	open    StoreOpener
}

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	return newRootCmd(bootstrap.OpenStore)
}

func newRootCmd(open StoreOpener) *cobra.Command {
	opts := &options{open: open}

	root := &cobra.Command{
		Use:           "importer",
		Short:         "Load catalogue reference data into the store",
		Long:          "Import packages and customers from CSV exports and the product catalogue from an xlsx workbook.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env", "", "env file to load (default: .env when present)")
	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "parse input without writing to the store")

	root.AddCommand(
		newPackagesCmd(opts),
		newCustomersCmd(opts),
		newProductsCmd(opts),
	)

	return root
}

// run opens the configured store and hands an importer to fn.
func (o *options) run(cmd *cobra.Command, kind string, fn func(ctx context.Context, imp *importer.Importer) (importer.Result, error)) error {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := o.open(ctx, *cfg, log.Named("repo"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
		}
	}()

	res, err := fn(ctx, importer.New(store, o.dryRun, log.Named("importer")))
	if err != nil {
		return fmt.Errorf("importing %s: %w", kind, err)
	}

	printResult(cmd, kind, res, o.dryRun)
	return nil
}

func printResult(cmd *cobra.Command, kind string, res importer.Result, dryRun bool) {
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "%s: %d parsed, %d skipped (dry run, nothing written)\n", kind, res.Parsed, res.Skipped)
		return
	}
	fmt.Fprintf(out, "%s: %d parsed, %d skipped, %d inserted\n", kind, res.Parsed, res.Skipped, res.Inserted)
}
