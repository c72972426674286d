package tally

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/salesrep/internal/domain/models"
)

// Total is the priced sum of a tally.
type Total struct {
	Amount  decimal.Decimal
	Entries int
	// Unmatched holds tally codes absent from the catalogue.
	Unmatched []string
	// Unpriced holds matched codes whose price could not be parsed.
	Unpriced []string
}

// Formatted renders the total the way it is stored: "0" for an empty
// tally, otherwise exactly two decimals.
func (t Total) Formatted() string {
	if t.Entries == 0 {
		return models.ZeroTotal
	}
	return t.Amount.StringFixed(2)
}

// IndexCatalogue maps product codes to products. The first product wins
// when a code repeats.
func IndexCatalogue(products []models.Product) map[string]models.Product {
	index := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, exists := index[p.Code]; !exists {
			index[p.Code] = p
		}
	}
	return index
}

// ComputeTotal sums unit price x count over entries. Codes missing from the
// catalogue and unparseable prices contribute nothing.
func ComputeTotal(entries []models.TallyEntry, catalogue map[string]models.Product) Total {
	total := Total{Amount: decimal.Zero, Entries: len(entries)}

	for _, entry := range entries {
		product, ok := catalogue[entry.ProductCode]
		if !ok {
			total.Unmatched = append(total.Unmatched, entry.ProductCode)
			continue
		}

		price, err := parsePrice(product.UnitPrice)
		if err != nil {
			total.Unpriced = append(total.Unpriced, entry.ProductCode)
			continue
		}

		total.Amount = total.Amount.Add(price.Mul(decimal.NewFromInt(int64(entry.Count))))
	}

	return total
}

func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "£"))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}
	return decimal.NewFromString(raw)
}

// Recompute re-derives a visit's total_price from its stored tally and the
// full catalogue and persists it.
func (s *Service) Recompute(ctx context.Context, visitID string) (models.Reconciliation, error) {
	visit, err := s.repo.GetVisit(ctx, visitID)
	if err != nil {
		return models.Reconciliation{}, err
	}

	total, unmatched, err := s.totalFor(ctx, visitID, visit.Products)
	if err != nil {
		return models.Reconciliation{}, err
	}

	if err := s.repo.UpdateVisit(ctx, visitID, models.VisitPatch{TotalPrice: &total}); err != nil {
		return models.Reconciliation{}, fmt.Errorf("save total price: %w", err)
	}
	visit.TotalPrice = total

	s.logger.Debug("total price recomputed", zap.String("visit_id", visitID), zap.String("total_price", total))
	return models.Reconciliation{Visit: visit, Unmatched: unmatched}, nil
}

// SweepResult counts what a reconciliation sweep did.
type SweepResult struct {
	Checked int64
	Updated int64
	// Stale counts visits whose tally changed after the sweep read them.
	// They are left alone; the edit that changed them wrote a fresh total.
	Stale  int64
	Failed int64
}

// ReconcileOpen re-prices every open visit against a single catalogue
// snapshot and rewrites the totals that drifted. Individual failures are
// logged and counted; only a cancelled context aborts the sweep.
func (s *Service) ReconcileOpen(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	open, err := s.repo.ListOpenVisits(ctx)
	if err != nil {
		return result, fmt.Errorf("list open visits: %w", err)
	}
	if len(open) == 0 {
		return result, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return result, fmt.Errorf("load catalogue: %w", err)
	}
	index := IndexCatalogue(products)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, visit := range open {
		visit := visit
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			atomic.AddInt64(&result.Checked, 1)

			total := ComputeTotal(visit.Products, index)
			formatted := total.Formatted()
			if formatted == visit.TotalPrice {
				return nil
			}

			patch := models.VisitPatch{TotalPrice: &formatted, IfProducts: &visit.Products}
			err := s.repo.UpdateVisit(gctx, visit.ID, patch)
			if errors.Is(err, models.ErrConflict) {
				atomic.AddInt64(&result.Stale, 1)
				s.logger.Debug("visit tally changed during sweep", zap.String("visit_id", visit.ID))
				return nil
			}
			if err != nil {
				atomic.AddInt64(&result.Failed, 1)
				s.logger.Warn("reconcile visit failed", zap.String("visit_id", visit.ID), zap.Error(err))
				return nil
			}
			atomic.AddInt64(&result.Updated, 1)
			s.logger.Debug("visit total corrected",
				zap.String("visit_id", visit.ID),
				zap.String("from", visit.TotalPrice),
				zap.String("to", formatted))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	s.logger.Info("reconciliation sweep finished",
		zap.Int64("checked", result.Checked),
		zap.Int64("updated", result.Updated),
		zap.Int64("stale", result.Stale),
		zap.Int64("failed", result.Failed))
	return result, nil
}

func (s *Service) logPricing(visitID string, total Total) {
	if len(total.Unmatched) > 0 {
		s.logger.Debug("tally codes missing from catalogue",
			zap.String("visit_id", visitID),
			zap.Strings("codes", total.Unmatched))
	}
	if len(total.Unpriced) > 0 {
		s.logger.Warn("catalogue prices could not be parsed",
			zap.String("visit_id", visitID),
			zap.Strings("codes", total.Unpriced))
	}
}
