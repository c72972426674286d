package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
)

// VisitLedger records and lists customer visits.
type VisitLedger interface {
	Create(ctx context.Context, customerCode, note string) (models.Visit, error)
	ListForCustomer(ctx context.Context, customerCode string) ([]models.Visit, error)
	Get(ctx context.Context, id string) (models.Visit, error)
	ToggleCompleted(ctx context.Context, id string) (models.Visit, error)
}

// TallyService edits the per-visit product tally.
type TallyService interface {
	SetQuantity(ctx context.Context, visitID, productCode string, raw any) (models.Reconciliation, error)
	Projection(ctx context.Context, visitID, q string) ([]models.TallyLine, error)
	Recompute(ctx context.Context, visitID string) (models.Reconciliation, error)
}

// VisitHandler serves the visit list, visit detail and product picker.
type VisitHandler struct {
	ledger VisitLedger
	tally  TallyService
	logger *zap.Logger
}

// NewVisitHandler constructs the HTTP handler adapter.
func NewVisitHandler(ledger VisitLedger, tally TallyService, logger *zap.Logger) *VisitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitHandler{ledger: ledger, tally: tally, logger: logger}
}

// ListForCustomer returns a customer's visits, newest first.
func (h *VisitHandler) ListForCustomer(c *gin.Context) {
	visits, err := h.ledger.ListForCustomer(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, "failed listing visits", err)
		return
	}
	c.JSON(http.StatusOK, visits)
}

// Create adds a visit note for the customer in the path.
func (h *VisitHandler) Create(c *gin.Context) {
	var req models.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "invalid visit payload", fmt.Errorf("invalid request body: %w", models.ErrValidation))
		return
	}

	visit, err := h.ledger.Create(c.Request.Context(), c.Param("code"), req.Note)
	if err != nil {
		respondError(c, h.logger, "failed creating visit", err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// Get returns a single visit.
func (h *VisitHandler) Get(c *gin.Context) {
	visit, err := h.ledger.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed loading visit", err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// ToggleCompleted flips the completed flag and returns the stored visit.
func (h *VisitHandler) ToggleCompleted(c *gin.Context) {
	visit, err := h.ledger.ToggleCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed toggling visit", err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// Products returns every catalogue product with its count on the visit.
func (h *VisitHandler) Products(c *gin.Context) {
	lines, err := h.tally.Projection(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, "failed projecting tally", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// SetQuantity writes one product count and returns the reconciled visit.
func (h *VisitHandler) SetQuantity(c *gin.Context) {
	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "invalid quantity payload", fmt.Errorf("invalid request body: %w", models.ErrValidation))
		return
	}

	res, err := h.tally.SetQuantity(c.Request.Context(), c.Param("id"), c.Param("code"), req.Quantity)
	if err != nil {
		respondError(c, h.logger, "failed setting quantity", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Recompute recalculates the visit total from the current catalogue.
func (h *VisitHandler) Recompute(c *gin.Context) {
	res, err := h.tally.Recompute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed recomputing total", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
