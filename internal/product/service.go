package product

import (
	"context"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShopResolver maps a seller to their shop so product writes can be scoped
// to it.
type ShopResolver interface {
	ShopIDForOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error)
}

type Service interface {
	Search(ctx context.Context, filter *ProductFilterInput, sort *ProductSortInput, limit, page int) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*Product, error)
	GetTrending(ctx context.Context, limit int) ([]*Product, error)
	ListMine(ctx context.Context, limit, page int) ([]*Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListBrands(ctx context.Context) ([]*Brand, error)
}

type service struct {
	repo  Repository
	shops ShopResolver
}

func NewService(repo Repository, shops ShopResolver) Service {
	return &service{repo: repo, shops: shops}
}

func clampPage(limit, page int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func (s *service) Search(ctx context.Context, filter *ProductFilterInput, sort *ProductSortInput, limit, page int) ([]*Product, error) {
	limit, offset := clampPage(limit, page)
	return s.repo.Search(ctx, filter, sort, limit, offset)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) GetFeatured(ctx context.Context, limit int) ([]*Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	return s.repo.GetFeatured(ctx, limit)
}

func (s *service) GetTrending(ctx context.Context, limit int) ([]*Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	return s.repo.GetTrending(ctx, limit)
}

func (s *service) ownShopID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, ErrNotShopOwner
	}
	return s.shops.ShopIDForOwner(ctx, userID)
}

func (s *service) ListMine(ctx context.Context, limit, page int) ([]*Product, error) {
	shopID, err := s.ownShopID(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset := clampPage(limit, page)
	return s.repo.GetByShop(ctx, shopID, limit, offset)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("service", "product"), zap.String("method", "Create"))

	shopID, err := s.ownShopID(ctx)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	p := &Product{
		ID:            uuid.New(),
		ShopID:        shopID,
		CategoryID:    input.CategoryID,
		BrandID:       input.BrandID,
		Name:          input.Name,
		Slug:          utils.Slugify(input.Name, shopID.String()),
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Sizes:         input.Sizes,
		Colors:        input.Colors,
		ImageURL:      input.ImageURL,
		IsActive:      true,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	log.Info("product created", zap.String("productID", created.ID.String()))
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*Product, error) {
	shopID, err := s.ownShopID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ShopID != shopID {
		return nil, ErrNotShopOwner
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		p.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		p.OriginalPrice = input.OriginalPrice
	}
	if input.Sizes != nil {
		p.Sizes = input.Sizes
	}
	if input.Colors != nil {
		p.Colors = input.Colors
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	shopID, err := s.ownShopID(ctx)
	if err != nil {
		return err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.ShopID != shopID {
		return ErrNotShopOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListBrands(ctx context.Context) ([]*Brand, error) {
	return s.repo.ListBrands(ctx)
}
