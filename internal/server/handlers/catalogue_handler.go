package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
)

// CatalogueService is the read side of customers, products and packages.
type CatalogueService interface {
	ListProducts(ctx context.Context, q string) ([]models.Product, error)
	ListCustomers(ctx context.Context, q string) ([]models.Customer, error)
	GetCustomer(ctx context.Context, code string) (models.Customer, error)
	ListPackages(ctx context.Context) ([]models.Package, error)
}

// CatalogueHandler serves the browse and search screens.
type CatalogueHandler struct {
	svc    CatalogueService
	logger *zap.Logger
}

// NewCatalogueHandler constructs the HTTP handler adapter.
func NewCatalogueHandler(svc CatalogueService, logger *zap.Logger) *CatalogueHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogueHandler{svc: svc, logger: logger}
}

// ListProducts returns the catalogue filtered by ?q=.
func (h *CatalogueHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, "failed listing products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListCustomers returns customers filtered by ?q=.
func (h *CatalogueHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, "failed listing customers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns a single customer by code.
func (h *CatalogueHandler) GetCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, "failed loading customer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// ListPackages returns every package.
func (h *CatalogueHandler) ListPackages(c *gin.Context) {
	packages, err := h.svc.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed listing packages", err)
		return
	}
	c.JSON(http.StatusOK, packages)
}
