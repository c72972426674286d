// Package repository declares the document store contract the services
// depend on. Implementations live in the mongodb and memory subpackages.
package repository

import (
	"context"

	"github.com/mamadbah2/salesrep/internal/domain/models"
)

// Collection names, kept compatible with the existing data.
const (
	CustomersCollection = "customers"
	ProductsCollection  = "products"
	VisitsCollection    = "visitings"
	PackagesCollection  = "packages"
)

// CustomerReader reads the customers collection.
type CustomerReader interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomerByCode(ctx context.Context, code string) (models.Customer, error)
}

// ProductReader fetches the whole catalogue.
type ProductReader interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// PackageReader fetches package records.
type PackageReader interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
}

// VisitStore persists visits. Update applies a partial field patch;
// there is no version check, the last write wins.
type VisitStore interface {
	InsertVisit(ctx context.Context, visit models.Visit) (string, error)
	GetVisit(ctx context.Context, id string) (models.Visit, error)
	ListVisitsByCustomer(ctx context.Context, customerCode string) ([]models.Visit, error)
	ListVisitsByDate(ctx context.Context, date string) ([]models.Visit, error)
	ListOpenVisits(ctx context.Context) ([]models.Visit, error)
	UpdateVisit(ctx context.Context, id string, patch models.VisitPatch) error
}

// CatalogueWriter bulk loads reference data.
type CatalogueWriter interface {
	InsertCustomers(ctx context.Context, customers []models.Customer) (int, error)
	InsertProducts(ctx context.Context, products []models.Product) (int, error)
	InsertPackages(ctx context.Context, packages []models.Package) (int, error)
}

// Store is everything a backend offers.
type Store interface {
	CustomerReader
	ProductReader
	PackageReader
	VisitStore
	CatalogueWriter
	Close(ctx context.Context) error
}
