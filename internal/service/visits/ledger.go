// Package visits owns the customer visit ledger: creating visit notes,
// listing a customer's visits newest first and toggling completion.
package visits

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
)

// Ledger implements the visit operations on top of a VisitStore.
type Ledger struct {
	repo     repository.VisitStore
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithLocation sets the timezone used to stamp new visits.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.location = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLedger constructs a visit ledger.
func NewLedger(repo repository.VisitStore, logger *zap.Logger, opts ...Option) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{
		repo:     repo,
		logger:   logger,
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create records a new visit note for a customer, stamped with the current
// date and minute.
func (l *Ledger) Create(ctx context.Context, customerCode, note string) (models.Visit, error) {
	customerCode = strings.TrimSpace(customerCode)
	if customerCode == "" {
		return models.Visit{}, fmt.Errorf("customer code is required: %w", models.ErrValidation)
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return models.Visit{}, fmt.Errorf("note is required: %w", models.ErrValidation)
	}

	now := l.now().In(l.location)
	visit := models.Visit{
		CustomerCode: customerCode,
		Date:         now.Format(models.VisitDateLayout),
		Time:         now.Format(models.VisitTimeLayout),
		Note:         note,
		Completed:    false,
		TotalPrice:   models.ZeroTotal,
		Products:     []models.TallyEntry{},
	}

	id, err := l.repo.InsertVisit(ctx, visit)
	if err != nil {
		return models.Visit{}, fmt.Errorf("create visit: %w", err)
	}
	visit.ID = id

	l.logger.Info("visit created",
		zap.String("visit_id", id),
		zap.String("customer_code", customerCode),
		zap.String("date", visit.Date))
	return visit, nil
}

// ListForCustomer returns the customer's visits, most recent first.
func (l *Ledger) ListForCustomer(ctx context.Context, customerCode string) ([]models.Visit, error) {
	visits, err := l.repo.ListVisitsByCustomer(ctx, customerCode)
	if err != nil {
		return nil, fmt.Errorf("list visits for %q: %w", customerCode, err)
	}
	SortNewestFirst(visits)
	return visits, nil
}

// ListForDate returns every visit recorded on the given day.
func (l *Ledger) ListForDate(ctx context.Context, day time.Time) ([]models.Visit, error) {
	date := day.In(l.location).Format(models.VisitDateLayout)
	visits, err := l.repo.ListVisitsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list visits on %s: %w", date, err)
	}
	SortNewestFirst(visits)
	return visits, nil
}

// Get returns a single visit.
func (l *Ledger) Get(ctx context.Context, id string) (models.Visit, error) {
	if strings.TrimSpace(id) == "" {
		return models.Visit{}, fmt.Errorf("visit id is required: %w", models.ErrValidation)
	}
	return l.repo.GetVisit(ctx, id)
}

// ToggleCompleted flips the completion flag of a visit and returns the
// updated visit. Concurrent toggles are not coordinated.
func (l *Ledger) ToggleCompleted(ctx context.Context, id string) (models.Visit, error) {
	visit, err := l.Get(ctx, id)
	if err != nil {
		return models.Visit{}, err
	}

	completed := !visit.Completed
	if err := l.repo.UpdateVisit(ctx, id, models.VisitPatch{Completed: &completed}); err != nil {
		return models.Visit{}, fmt.Errorf("toggle completed: %w", err)
	}
	visit.Completed = completed

	l.logger.Info("visit completion toggled", zap.String("visit_id", id), zap.Bool("completed", completed))
	return visit, nil
}

// SortNewestFirst orders visits by date and time, descending. Entries with
// the same timestamp keep their relative order; undated entries go last.
func SortNewestFirst(visits []models.Visit) {
	sort.SliceStable(visits, func(i, j int) bool {
		ti, okI := visits[i].RecordedAt()
		tj, okJ := visits[j].RecordedAt()
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}
