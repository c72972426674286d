// Package memory is an in-process repository.Store. It keeps insertion order
// for every collection and copies documents in and out, so callers never
// share state with the store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
)

var _ repository.Store = (*Repository)(nil)

// Repository implements repository.Store in memory.
type Repository struct {
	mu        sync.RWMutex
	customers []models.Customer
	products  []models.Product
	packages  []models.Package
	visits    []models.Visit
	failWith  error
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{}
}

// Close is a no-op.
func (r *Repository) Close(context.Context) error { return nil }

// SetFailure makes every subsequent call return err wrapped in ErrStore.
// A nil err restores normal operation.
func (r *Repository) SetFailure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

func (r *Repository) fail(op string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.failWith == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, models.ErrStore, r.failWith)
}

func newID() string {
	return uuid.NewString()
}

func copyVisit(v models.Visit) models.Visit {
	if v.Products != nil {
		v.Products = append(make([]models.TallyEntry, 0, len(v.Products)), v.Products...)
	}
	return v
}

// ListCustomers returns every customer.
func (r *Repository) ListCustomers(context.Context) ([]models.Customer, error) {
	if err := r.fail("list customers"); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Customer{}, r.customers...), nil
}

// GetCustomerByCode looks a customer up by exact code.
func (r *Repository) GetCustomerByCode(_ context.Context, code string) (models.Customer, error) {
	if err := r.fail("get customer"); err != nil {
		return models.Customer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return models.Customer{}, fmt.Errorf("customer %q: %w", code, models.ErrNotFound)
}

// ListProducts returns the catalogue.
func (r *Repository) ListProducts(context.Context) ([]models.Product, error) {
	if err := r.fail("list products"); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product{}, r.products...), nil
}

// ListPackages returns every package.
func (r *Repository) ListPackages(context.Context) ([]models.Package, error) {
	if err := r.fail("list packages"); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Package{}, r.packages...), nil
}

// InsertCustomers appends customers, assigning ids where missing.
func (r *Repository) InsertCustomers(_ context.Context, customers []models.Customer) (int, error) {
	if err := r.fail("insert customers"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range customers {
		if c.ID == "" {
			c.ID = newID()
		}
		r.customers = append(r.customers, c)
	}
	return len(customers), nil
}

// InsertProducts appends products, assigning ids where missing.
func (r *Repository) InsertProducts(_ context.Context, products []models.Product) (int, error) {
	if err := r.fail("insert products"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		if p.ID == "" {
			p.ID = newID()
		}
		r.products = append(r.products, p)
	}
	return len(products), nil
}

// InsertPackages appends packages, assigning ids where missing.
func (r *Repository) InsertPackages(_ context.Context, packages []models.Package) (int, error) {
	if err := r.fail("insert packages"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range packages {
		if p.ID == "" {
			p.ID = newID()
		}
		r.packages = append(r.packages, p)
	}
	return len(packages), nil
}

// InsertVisit stores a visit under a fresh id.
func (r *Repository) InsertVisit(_ context.Context, visit models.Visit) (string, error) {
	if err := r.fail("insert visit"); err != nil {
		return "", err
	}
	visit = copyVisit(visit)
	visit.ID = newID()
	if visit.Products == nil {
		visit.Products = []models.TallyEntry{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, visit)
	return visit.ID, nil
}

// GetVisit fetches a visit by id.
func (r *Repository) GetVisit(_ context.Context, id string) (models.Visit, error) {
	if err := r.fail("get visit"); err != nil {
		return models.Visit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.visitIndex(id); i >= 0 {
		return copyVisit(r.visits[i]), nil
	}
	return models.Visit{}, fmt.Errorf("visit %q: %w", id, models.ErrNotFound)
}

// ListVisitsByCustomer filters on exact customer code.
func (r *Repository) ListVisitsByCustomer(_ context.Context, customerCode string) ([]models.Visit, error) {
	if err := r.fail("list customer visits"); err != nil {
		return nil, err
	}
	return r.filterVisits(func(v models.Visit) bool { return v.CustomerCode == customerCode }), nil
}

// ListVisitsByDate filters on exact date.
func (r *Repository) ListVisitsByDate(_ context.Context, date string) ([]models.Visit, error) {
	if err := r.fail("list visits by date"); err != nil {
		return nil, err
	}
	return r.filterVisits(func(v models.Visit) bool { return v.Date == date }), nil
}

// ListOpenVisits returns visits not marked completed.
func (r *Repository) ListOpenVisits(context.Context) ([]models.Visit, error) {
	if err := r.fail("list open visits"); err != nil {
		return nil, err
	}
	return r.filterVisits(func(v models.Visit) bool { return !v.Completed }), nil
}

// UpdateVisit applies a partial patch.
func (r *Repository) UpdateVisit(_ context.Context, id string, patch models.VisitPatch) error {
	if err := r.fail("update visit"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.visitIndex(id)
	if i < 0 {
		return fmt.Errorf("visit %q: %w", id, models.ErrNotFound)
	}

	v := &r.visits[i]
	if expected, ok := patch.ExpectedProducts(); ok && !slices.Equal(v.Products, expected) {
		return fmt.Errorf("visit %q tally changed: %w", id, models.ErrConflict)
	}
	if patch.Completed != nil {
		v.Completed = *patch.Completed
	}
	if patch.Products != nil {
		v.Products = append([]models.TallyEntry{}, (*patch.Products)...)
	}
	if patch.TotalPrice != nil {
		v.TotalPrice = *patch.TotalPrice
	}
	return nil
}

func (r *Repository) visitIndex(id string) int {
	for i := range r.visits {
		if r.visits[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) filterVisits(keep func(models.Visit) bool) []models.Visit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Visit, 0)
	for _, v := range r.visits {
		if keep(v) {
			out = append(out, copyVisit(v))
		}
	}
	return out
}
