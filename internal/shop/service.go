package shop

import (
	"context"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterShopInput) (*Shop, error)
	MyShop(ctx context.Context) (*Shop, error)
	GetBySlug(ctx context.Context, slug string) (*Shop, error)
	List(ctx context.Context, limit, page int) ([]*Shop, error)
	Nearby(ctx context.Context, input NearbyInput) ([]*NearbyShop, error)
	ShopIDForOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register creates the caller's shop. A seller gets exactly one; the
// database enforces the uniqueness.
func (s *service) Register(ctx context.Context, input RegisterShopInput) (*Shop, error) {
	log := logger.FromCtx(ctx).With(zap.String("service", "shop"), zap.String("method", "Register"))

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	id := uuid.New()
	sh := &Shop{
		ID:          id,
		OwnerID:     ownerID,
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name, id.String()),
		Description: input.Description,
		LogoURL:     input.LogoURL,
		City:        input.City,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}
	created, err := s.repo.Create(ctx, sh)
	if err != nil {
		return nil, err
	}
	log.Info("shop registered", zap.String("shopID", created.ID.String()))
	return created, nil
}

func validateCoordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	// Either both or neither.
	if lat == nil || lng == nil {
		return ErrInvalidCoordinate
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

func (s *service) MyShop(ctx context.Context) (*Shop, error) {
	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Shop, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, limit, page int) ([]*Shop, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return s.repo.ListActive(ctx, limit, (page-1)*limit)
}

func (s *service) Nearby(ctx context.Context, input NearbyInput) ([]*NearbyShop, error) {
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, ErrInvalidCoordinate
	}
	if input.RadiusKm <= 0 || input.RadiusKm > 100 {
		input.RadiusKm = 10
	}
	if input.Limit <= 0 || input.Limit > 50 {
		input.Limit = 20
	}
	return s.repo.Nearby(ctx, input)
}

func (s *service) ShopIDForOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	sh, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return uuid.Nil, err
	}
	return sh.ID, nil
}
