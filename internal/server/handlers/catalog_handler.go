package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/service/catalog"
)

// Catalog manages the entities of the distribution network.
type Catalog interface {
	CreateLocation(ctx context.Context, req models.CreateLocationRequest) (*models.Location, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	CreateStorageUnit(ctx context.Context, req models.CreateStorageUnitRequest) (*models.StorageUnit, error)
	CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error)
	CreateDemand(ctx context.Context, req models.CreateDemandRequest) (*models.Demand, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListStorageUnits(ctx context.Context) ([]models.StorageUnit, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	ListDemands(ctx context.Context) ([]models.Demand, error)
	Summary(ctx context.Context) (*models.NetworkSummary, error)
}

// CatalogHandler exposes entity creation and listing.
type CatalogHandler struct {
	svc    Catalog
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc Catalog, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// CreateLocation handles POST /locations.
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req models.CreateLocationRequest
	if !h.bind(c, &req) {
		return
	}
	loc, err := h.svc.CreateLocation(c.Request.Context(), req)
	h.created(c, "location", loc, err)
}

// CreateProduct handles POST /products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if !h.bind(c, &req) {
		return
	}
	p, err := h.svc.CreateProduct(c.Request.Context(), req)
	h.created(c, "product", p, err)
}

// CreateStorageUnit handles POST /storage-units.
func (h *CatalogHandler) CreateStorageUnit(c *gin.Context) {
	var req models.CreateStorageUnitRequest
	if !h.bind(c, &req) {
		return
	}
	u, err := h.svc.CreateStorageUnit(c.Request.Context(), req)
	h.created(c, "storage unit", u, err)
}

// CreateRoute handles POST /routes.
func (h *CatalogHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if !h.bind(c, &req) {
		return
	}
	r, err := h.svc.CreateRoute(c.Request.Context(), req)
	h.created(c, "route", r, err)
}

// CreateDemand handles POST /demands.
func (h *CatalogHandler) CreateDemand(c *gin.Context) {
	var req models.CreateDemandRequest
	if !h.bind(c, &req) {
		return
	}
	d, err := h.svc.CreateDemand(c.Request.Context(), req)
	h.created(c, "demand", d, err)
}

// ListLocations handles GET /locations.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locs, err := h.svc.ListLocations(c.Request.Context())
	h.listed(c, "locations", locs, err)
}

// ListProducts handles GET /products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	h.listed(c, "products", products, err)
}

// ListStorageUnits handles GET /storage-units.
func (h *CatalogHandler) ListStorageUnits(c *gin.Context) {
	units, err := h.svc.ListStorageUnits(c.Request.Context())
	h.listed(c, "storage units", units, err)
}

// ListRoutes handles GET /routes.
func (h *CatalogHandler) ListRoutes(c *gin.Context) {
	routes, err := h.svc.ListRoutes(c.Request.Context())
	h.listed(c, "routes", routes, err)
}

// ListDemands handles GET /demands.
func (h *CatalogHandler) ListDemands(c *gin.Context) {
	demands, err := h.svc.ListDemands(c.Request.Context())
	h.listed(c, "demands", demands, err)
}

// Summary handles GET /network/summary.
func (h *CatalogHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	h.listed(c, "network summary", summary, err)
}

func (h *CatalogHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid catalog payload", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *CatalogHandler) created(c *gin.Context, entity string, body interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusCreated, body)
		return
	}

	var validationErr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
	case errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, catalog.ErrNotWarehouse):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Storage units can only be created at WAREHOUSE locations"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	default:
		h.logger.Error("failed creating "+entity, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create " + entity})
	}
}

func (h *CatalogHandler) listed(c *gin.Context, what string, body interface{}, err error) {
	if err != nil {
		h.logger.Error("failed loading "+what, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load " + what})
		return
	}
	c.JSON(http.StatusOK, body)
}
