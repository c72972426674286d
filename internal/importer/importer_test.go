package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository/memory"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	book := excelize.NewFile()
	if sheet != "Sheet1" {
		book.NewSheet(sheet)
	}
	for r, row := range rows {
		for c, value := range row {
			book.SetCellStr(sheet, excelize.ToAlphaString(c)+strconv.Itoa(r+1), value)
		}
	}
	path := filepath.Join(t.TempDir(), "catalogue.xlsx")
	require.NoError(t, book.SaveAs(path))
	return path
}

func TestParsePackages(t *testing.T) {
	packages, skipped, err := ParsePackages(openFixture(t, "packages.csv"))
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	require.Len(t, packages, 2)
	assert.Equal(t, "TT9", packages[0].Code)
	assert.Equal(t, "£410.00", packages[0].PalletPrice)
	assert.Equal(t, "110", packages[0].PerfLengthMM)
	assert.Equal(t, "KR2", packages[1].Code)
	assert.Equal(t, "48", packages[1].PalletCount)
}

func TestParseCustomers(t *testing.T) {
	customers, skipped, err := ParseCustomers(openFixture(t, "customers.csv"))
	require.NoError(t, err)

	assert.Zero(t, skipped)
	require.Len(t, customers, 2)
	assert.Equal(t, models.Customer{
		Code: "C200", Name: "Harbour Stores", Mobile: "07700 900123",
		Address1: "Dock Road", Address2: "Unit 4", City: "Hull", PostCode: "HU1 2BB",
	}, customers[1])
}

func TestParseProducts(t *testing.T) {
	path := writeWorkbook(t, "Products", [][]string{
		{"Description", "Code", "Price [C]", "Qty", "Size"},
		{"Kitchen roll", "A1", "2.50", "24", "2ply"},
		{"No code", "", "1.00", "", ""},
		{"Toilet tissue", " B2 ", "6.75"},
	})

	products, skipped, err := ParseProducts(path, "")
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	require.Len(t, products, 2)
	assert.Equal(t, models.Product{Code: "A1", Description: "Kitchen roll", Size: "2ply", PackQty: "24", UnitPrice: "2.50"}, products[0])
	assert.Equal(t, "B2", products[1].Code)
	assert.Empty(t, products[1].Size)
}

func TestParseProductsErrors(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]string{{"Description"}, {"Kitchen roll"}})

	_, _, err := ParseProducts(path, "Products")
	assert.ErrorContains(t, err, "no sheet")

	_, _, err = ParseProducts(path, "Sheet1")
	assert.ErrorContains(t, err, "Code column")

	_, _, err = ParseProducts(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}

func TestImporterWritesToStore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	imp := New(repo, false, nil)

	res, err := imp.Packages(ctx, openFixture(t, "packages.csv"))
	require.NoError(t, err)
	assert.Equal(t, Result{Parsed: 2, Skipped: 1, Inserted: 2}, res)

	res, err = imp.Customers(ctx, openFixture(t, "customers.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	customer, err := repo.GetCustomerByCode(ctx, "C100")
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", customer.Name)

	packages, err := repo.ListPackages(ctx)
	require.NoError(t, err)
	assert.Len(t, packages, 2)
}

func TestImporterDryRun(t *testing.T) {
	repo := memory.NewRepository()
	res, err := New(repo, true, nil).Customers(context.Background(), openFixture(t, "customers.csv"))
	require.NoError(t, err)

	assert.Equal(t, Result{Parsed: 2}, res)
	customers, err := repo.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestImporterStoreFailure(t *testing.T) {
	repo := memory.NewRepository()
	repo.SetFailure(errors.New("write concern"))

	_, err := New(repo, false, nil).Packages(context.Background(), openFixture(t, "packages.csv"))
	assert.True(t, errors.Is(err, models.ErrStore))
}
