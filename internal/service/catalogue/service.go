// Package catalogue serves the read-only reference data: products,
// customers and packages, with in-memory substring search.
package catalogue

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
)

// Reader is the slice of the store the catalogue needs.
type Reader interface {
	repository.CustomerReader
	repository.ProductReader
	repository.PackageReader
}

// Service lists and searches reference data.
type Service struct {
	repo   Reader
	logger *zap.Logger
}

// NewService wires a catalogue service.
func NewService(repo Reader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListProducts fetches the full catalogue and filters it by q.
func (s *Service) ListProducts(ctx context.Context, q string) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return FilterProducts(products, q), nil
}

// ListCustomers fetches every customer and filters them by q.
func (s *Service) ListCustomers(ctx context.Context, q string) ([]models.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	return FilterCustomers(customers, q), nil
}

// GetCustomer returns the customer with the exact code.
func (s *Service) GetCustomer(ctx context.Context, code string) (models.Customer, error) {
	if strings.TrimSpace(code) == "" {
		return models.Customer{}, fmt.Errorf("customer code is required: %w", models.ErrValidation)
	}
	return s.repo.GetCustomerByCode(ctx, code)
}

// ListPackages returns every package.
func (s *Service) ListPackages(ctx context.Context) ([]models.Package, error) {
	packages, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	s.logger.Debug("packages loaded", zap.Int("count", len(packages)))
	return packages, nil
}
