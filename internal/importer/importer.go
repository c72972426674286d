// Package importer loads catalogue reference data (packages, customers and
// products) from spreadsheet exports into the store.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
)

// DefaultProductSheet is the worksheet read when none is given.
const DefaultProductSheet = "Products"

// Result summarises one import run.
type Result struct {
	Parsed   int
	Skipped  int
	Inserted int
}

// ParsePackages decodes a package list CSV whose headers match the stored
// field keys. Rows without a code are dropped and counted.
func ParsePackages(r io.Reader) ([]models.Package, int, error) {
	var rows []models.Package
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, 0, fmt.Errorf("decode packages csv: %w", err)
	}
	kept, skipped := keepCoded(rows, func(p models.Package) string { return p.Code })
	return kept, skipped, nil
}

// ParseCustomers decodes a customer list CSV.
func ParseCustomers(r io.Reader) ([]models.Customer, int, error) {
	var rows []models.Customer
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, 0, fmt.Errorf("decode customers csv: %w", err)
	}
	kept, skipped := keepCoded(rows, func(c models.Customer) string { return c.Code })
	return kept, skipped, nil
}

// ParseProducts reads the product catalogue from an xlsx worksheet. Columns
// are located by header name; only the Code column is mandatory.
func ParseProducts(path, sheet string) ([]models.Product, int, error) {
	if sheet == "" {
		sheet = DefaultProductSheet
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if book.GetSheetIndex(sheet) == 0 {
		return nil, 0, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
	}

	return productsFromRows(book.GetRows(sheet))
}

func productsFromRows(rows [][]string) ([]models.Product, int, error) {
	if len(rows) == 0 {
		return nil, 0, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["code"]; !ok {
		return nil, 0, fmt.Errorf("product sheet has no Code column")
	}

	cell := func(row []string, header string) string {
		i, ok := cols[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	products := make([]models.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		products = append(products, models.Product{
			Code:        cell(row, "code"),
			Description: cell(row, "description"),
			Size:        cell(row, "size"),
			PackQty:     cell(row, "qty"),
			UnitPrice:   cell(row, "price [c]"),
		})
	}

	kept, skipped := keepCoded(products, func(p models.Product) string { return p.Code })
	return kept, skipped, nil
}

func keepCoded[T any](rows []T, code func(T) string) ([]T, int) {
	kept := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(code(row)) == "" {
			continue
		}
		kept = append(kept, row)
	}
	return kept, len(rows) - len(kept)
}

// Importer writes parsed reference data to the store.
type Importer struct {
	writer repository.CatalogueWriter
	dryRun bool
	logger *zap.Logger
}

// New builds an importer. With dryRun set nothing is written.
func New(writer repository.CatalogueWriter, dryRun bool, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{writer: writer, dryRun: dryRun, logger: logger}
}

// Packages parses and stores a package list CSV.
func (i *Importer) Packages(ctx context.Context, r io.Reader) (Result, error) {
	rows, skipped, err := ParsePackages(r)
	if err != nil {
		return Result{}, err
	}
	return i.store(ctx, "packages", len(rows), skipped, func() (int, error) {
		return i.writer.InsertPackages(ctx, rows)
	})
}

// Customers parses and stores a customer list CSV.
func (i *Importer) Customers(ctx context.Context, r io.Reader) (Result, error) {
	rows, skipped, err := ParseCustomers(r)
	if err != nil {
		return Result{}, err
	}
	return i.store(ctx, "customers", len(rows), skipped, func() (int, error) {
		return i.writer.InsertCustomers(ctx, rows)
	})
}

// Products parses and stores the product catalogue workbook.
func (i *Importer) Products(ctx context.Context, path, sheet string) (Result, error) {
	rows, skipped, err := ParseProducts(path, sheet)
	if err != nil {
		return Result{}, err
	}
	return i.store(ctx, "products", len(rows), skipped, func() (int, error) {
		return i.writer.InsertProducts(ctx, rows)
	})
}

func (i *Importer) store(ctx context.Context, kind string, parsed, skipped int, insert func() (int, error)) (Result, error) {
	res := Result{Parsed: parsed, Skipped: skipped}
	if skipped > 0 {
		i.logger.Warn("rows without code skipped", zap.String("kind", kind), zap.Int("skipped", skipped))
	}
	if i.dryRun || parsed == 0 {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	n, err := insert()
	if err != nil {
		return res, fmt.Errorf("insert %s: %w", kind, err)
	}
	res.Inserted = n

	i.logger.Info("import finished", zap.String("kind", kind), zap.Int("inserted", n), zap.Int("skipped", skipped))
	return res, nil
}
