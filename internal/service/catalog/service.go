// Package catalog creates and lists network entities. It enforces the
// integrity rules the feasibility checks rely on: referenced entities exist,
// only warehouses own storage, and ranges are ordered.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/repository"
)

// Repository is the entity store surface needed by the catalog.
type Repository interface {
	CreateLocation(ctx context.Context, loc models.Location) (*models.Location, error)
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	CreateStorageUnit(ctx context.Context, u models.StorageUnit) (*models.StorageUnit, error)
	CreateRoute(ctx context.Context, r models.Route) (*models.Route, error)
	CreateDemand(ctx context.Context, d models.Demand) (*models.Demand, error)

	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)

	ListLocations(ctx context.Context) ([]models.Location, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListStorageUnits(ctx context.Context) ([]models.StorageUnit, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	ListDemands(ctx context.Context) ([]models.Demand, error)
}

// Service implements entity creation and listing.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService constructs a catalog service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("location_type", validLocationType); err != nil {
		panic(fmt.Sprintf("register location_type validation: %v", err))
	}

	return &Service{repo: repo, validate: v, logger: logger}
}

// CreateLocation validates and stores a location.
func (s *Service) CreateLocation(ctx context.Context, req models.CreateLocationRequest) (*models.Location, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}

	loc, err := s.repo.CreateLocation(ctx, models.Location{
		Name: strings.TrimSpace(req.Name),
		Type: models.ParseLocationType(req.Type),
		City: strings.TrimSpace(req.City),
	})
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	s.logger.Info("location created", zap.Int64("id", loc.ID), zap.String("type", string(loc.Type)))
	return loc, nil
}

// CreateProduct validates and stores a product.
func (s *Service) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if req.MinTemperature.GreaterThan(*req.MaxTemperature) {
		return nil, &ValidationError{Reason: "minTemperature must not exceed maxTemperature"}
	}

	p, err := s.repo.CreateProduct(ctx, models.Product{
		Name:           strings.TrimSpace(req.Name),
		MinTemperature: *req.MinTemperature,
		MaxTemperature: *req.MaxTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created", zap.Int64("id", p.ID), zap.String("band", p.Band().String()))
	return p, nil
}

// CreateStorageUnit stores a unit after checking its location is a warehouse.
func (s *Service) CreateStorageUnit(ctx context.Context, req models.CreateStorageUnitRequest) (*models.StorageUnit, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if req.MinTemperature.GreaterThan(*req.MaxTemperature) {
		return nil, &ValidationError{Reason: "minTemperature must not exceed maxTemperature"}
	}

	loc, err := s.lookupLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.Type.CanHoldStorage() {
		return nil, ErrNotWarehouse
	}

	u, err := s.repo.CreateStorageUnit(ctx, models.StorageUnit{
		LocationID:     req.LocationID,
		MinTemperature: *req.MinTemperature,
		MaxTemperature: *req.MaxTemperature,
		Capacity:       req.Capacity,
	})
	if err != nil {
		return nil, mapReferenceError("create storage unit", err, ErrLocationNotFound)
	}

	s.logger.Info("storage unit created", zap.Int64("id", u.ID), zap.Int64("location_id", u.LocationID), zap.Int64("capacity", u.Capacity))
	return u, nil
}

// CreateRoute stores a route between two existing locations.
func (s *Service) CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	for _, id := range []int64{req.FromLocationID, req.ToLocationID} {
		if _, err := s.lookupLocation(ctx, id); err != nil {
			return nil, err
		}
	}

	r, err := s.repo.CreateRoute(ctx, models.Route{
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Capacity:       req.Capacity,
		MinShipment:    req.MinShipment,
	})
	if err != nil {
		return nil, mapReferenceError("create route", err, ErrLocationNotFound)
	}

	s.logger.Info("route created", zap.Int64("id", r.ID), zap.Int64("from", r.FromLocationID), zap.Int64("to", r.ToLocationID))
	return r, nil
}

// CreateDemand stores a demand for an existing location and product.
func (s *Service) CreateDemand(ctx context.Context, req models.CreateDemandRequest) (*models.Demand, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid date %q", req.Date)}
	}

	if _, err := s.lookupLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	d, err := s.repo.CreateDemand(ctx, models.Demand{
		LocationID:  req.LocationID,
		ProductID:   req.ProductID,
		Date:        date,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
	})
	if err != nil {
		return nil, mapReferenceError("create demand", err, ErrLocationNotFound)
	}

	s.logger.Info("demand created", zap.Int64("id", d.ID), zap.String("date", models.FormatDate(d.Date)))
	return d, nil
}

// ListLocations returns every location.
func (s *Service) ListLocations(ctx context.Context) ([]models.Location, error) {
	return s.repo.ListLocations(ctx)
}

// ListProducts returns every product.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// ListStorageUnits returns every storage unit.
func (s *Service) ListStorageUnits(ctx context.Context) ([]models.StorageUnit, error) {
	return s.repo.ListStorageUnits(ctx)
}

// ListRoutes returns every route.
func (s *Service) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.repo.ListRoutes(ctx)
}

// ListDemands returns every demand.
func (s *Service) ListDemands(ctx context.Context) ([]models.Demand, error) {
	return s.repo.ListDemands(ctx)
}

// Summary loads every entity collection concurrently.
func (s *Service) Summary(ctx context.Context) (*models.NetworkSummary, error) {
	var summary models.NetworkSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		summary.Locations, err = s.repo.ListLocations(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Products, err = s.repo.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.StorageUnits, err = s.repo.ListStorageUnits(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Routes, err = s.repo.ListRoutes(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Demands, err = s.repo.ListDemands(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load network summary: %w", err)
	}
	return &summary, nil
}

func (s *Service) lookupLocation(ctx context.Context, id int64) (*models.Location, error) {
	loc, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("lookup location: %w", err)
	}
	return loc, nil
}

// mapReferenceError handles references that vanished between lookup and insert.
func mapReferenceError(op string, err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func validLocationType(fl validator.FieldLevel) bool {
	switch models.ParseLocationType(fl.Field().String()) {
	case models.LocationWarehouse, models.LocationRetailer, models.LocationSupplier:
		return true
	}
	return false
}
