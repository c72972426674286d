package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository/sheets"
)

const (
	dateLayout       = "2006-01-02"
	visitsWriteRange = "Visits!A:G"
)

// ErrExportDisabled is returned by ExportDay when no sheet writer is configured.
var ErrExportDisabled = errors.New("sheet export is not configured")

// VisitLister provides the visits recorded on a day.
type VisitLister interface {
	ListForDate(ctx context.Context, day time.Time) ([]models.Visit, error)
}

// Service builds daily visit summaries and exports them.
type Service struct {
	visits VisitLister
	sheet  sheets.Writer
	logger *zap.Logger
}

// NewService wires a new reporting service instance. sheet may be nil, in
// which case only summaries are available.
func NewService(visits VisitLister, sheet sheets.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{visits: visits, sheet: sheet, logger: logger}
}

// BuildDailyReport aggregates the visits of one day.
func (s *Service) BuildDailyReport(ctx context.Context, day time.Time) (models.DailyVisitReport, error) {
	visits, err := s.visits.ListForDate(ctx, day)
	if err != nil {
		return models.DailyVisitReport{}, fmt.Errorf("load visits: %w", err)
	}

	report := models.DailyVisitReport{
		Date:   day.Format(dateLayout),
		Visits: len(visits),
		Rows:   visits,
	}

	total := decimal.Zero
	customers := make(map[string]struct{}, len(visits))
	for _, v := range visits {
		customers[v.CustomerCode] = struct{}{}
		if v.Completed {
			report.Completed++
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(v.TotalPrice))
		if err != nil {
			s.logger.Debug("skip visit with invalid total", zap.String("visit_id", v.ID), zap.String("total_price", v.TotalPrice))
			continue
		}
		total = total.Add(amount)
	}

	report.Customers = len(customers)
	report.TotalValue = total.StringFixed(2)
	return report, nil
}

// DailySummary returns the report as a short human readable message.
func (s *Service) DailySummary(ctx context.Context, day time.Time) (string, error) {
	report, err := s.BuildDailyReport(ctx, day)
	if err != nil {
		return "", err
	}
	return FormatSummary(report), nil
}

// FormatSummary renders a report for chat delivery.
func FormatSummary(report models.DailyVisitReport) string {
	if report.Visits == 0 {
		return fmt.Sprintf("Visits (%s): no visits recorded.", report.Date)
	}
	return fmt.Sprintf("Visits (%s): %d visits to %d customers, %d completed. Ordered value £%s.",
		report.Date, report.Visits, report.Customers, report.Completed, report.TotalValue)
}

// ExportDay appends one sheet row per visit of the day and returns the report.
func (s *Service) ExportDay(ctx context.Context, day time.Time) (models.DailyVisitReport, error) {
	if s.sheet == nil {
		return models.DailyVisitReport{}, ErrExportDisabled
	}

	report, err := s.BuildDailyReport(ctx, day)
	if err != nil {
		return models.DailyVisitReport{}, err
	}

	rows := make([][]interface{}, 0, len(report.Rows))
	for _, v := range report.Rows {
		rows = append(rows, []interface{}{v.Date, v.Time, v.CustomerCode, v.Note, v.Completed, v.TotalPrice, itemCount(v)})
	}

	if err := s.sheet.AppendRows(ctx, visitsWriteRange, rows); err != nil {
		return models.DailyVisitReport{}, fmt.Errorf("export visits: %w", err)
	}

	s.logger.Info("daily visits exported", zap.String("date", report.Date), zap.Int("rows", len(rows)))
	return report, nil
}

func itemCount(v models.Visit) int {
	var n int
	for _, entry := range v.Products {
		n += entry.Count
	}
	return n
}
