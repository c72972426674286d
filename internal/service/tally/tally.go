// Package tally maintains the per-visit product quantities and keeps each
// visit's total_price in line with them.
package tally

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
	"github.com/mamadbah2/salesrep/internal/service/catalogue"
)

// Store is the slice of the document store the tally needs.
type Store interface {
	repository.VisitStore
	repository.ProductReader
}

// Service implements quantity edits, the display projection and total price
// reconciliation.
type Service struct {
	repo    Store
	logger  *zap.Logger
	workers int
}

// NewService wires a tally service. workers bounds the reconciliation sweep.
func NewService(repo Store, workers int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Service{repo: repo, logger: logger, workers: workers}
}

// ApplyCount returns a copy of entries with productCode set to count.
// A positive count updates the existing entry in place or appends a new one;
// zero removes the entry, since absence means zero.
func ApplyCount(entries []models.TallyEntry, productCode string, count int) []models.TallyEntry {
	out := make([]models.TallyEntry, 0, len(entries)+1)
	found := false

	for _, entry := range entries {
		if entry.ProductCode != productCode {
			out = append(out, entry)
			continue
		}
		if found {
			// duplicate code in legacy data; keep only the first
			continue
		}
		found = true
		if count > 0 {
			entry.Count = count
			out = append(out, entry)
		}
	}

	if !found && count > 0 {
		out = append(out, models.TallyEntry{ProductCode: productCode, Count: count})
	}
	return out
}

// SetQuantity sets one product's count on a visit and re-derives the visit
// total. The tally and total_price are written together in one update, so a
// failure leaves the stored visit unchanged.
func (s *Service) SetQuantity(ctx context.Context, visitID, productCode string, raw any) (models.Reconciliation, error) {
	if strings.TrimSpace(productCode) == "" {
		return models.Reconciliation{}, fmt.Errorf("product code is required: %w", models.ErrValidation)
	}
	count := NormalizeQuantity(raw)

	visit, err := s.repo.GetVisit(ctx, visitID)
	if err != nil {
		return models.Reconciliation{}, err
	}

	entries := ApplyCount(visit.Products, productCode, count)

	total, unmatched, err := s.totalFor(ctx, visitID, entries)
	if err != nil {
		return models.Reconciliation{}, err
	}

	patch := models.VisitPatch{Products: &entries, TotalPrice: &total}
	if err := s.repo.UpdateVisit(ctx, visitID, patch); err != nil {
		return models.Reconciliation{}, fmt.Errorf("save tally: %w", err)
	}

	visit.Products = entries
	visit.TotalPrice = total

	s.logger.Info("tally updated",
		zap.String("visit_id", visitID),
		zap.String("product_code", productCode),
		zap.Int("count", count),
		zap.String("total_price", total))
	return models.Reconciliation{Visit: visit, Unmatched: unmatched}, nil
}

// Projection lists every catalogue product matching q with its count on the
// visit, zero when the visit has no entry for it. It never writes.
func (s *Service) Projection(ctx context.Context, visitID, q string) ([]models.TallyLine, error) {
	visit, err := s.repo.GetVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}

	counts := make(map[string]int, len(visit.Products))
	for _, entry := range visit.Products {
		if _, seen := counts[entry.ProductCode]; !seen {
			counts[entry.ProductCode] = entry.Count
		}
	}

	filtered := catalogue.FilterProducts(products, q)
	lines := make([]models.TallyLine, 0, len(filtered))
	for _, p := range filtered {
		lines = append(lines, models.TallyLine{Product: p, Count: counts[p.Code]})
	}
	return lines, nil
}

// totalFor prices entries against the full catalogue. The catalogue is not
// read for an empty tally.
func (s *Service) totalFor(ctx context.Context, visitID string, entries []models.TallyEntry) (string, []string, error) {
	if len(entries) == 0 {
		return models.ZeroTotal, nil, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("load catalogue: %w", err)
	}

	result := ComputeTotal(entries, IndexCatalogue(products))
	s.logPricing(visitID, result)
	return result.Formatted(), result.Unmatched, nil
}
