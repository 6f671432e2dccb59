package cart

import (
	"context"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*CartItem, error)
	Add(ctx context.Context, params AddItemParams) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*CartItem, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	return s.repo.GetItems(ctx, userID)
}

func (s *service) Add(ctx context.Context, params AddItemParams) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Cart"),
		zap.String("method", "Add"),
		zap.String("user_id", userID.String()),
		zap.String("product_id", params.ProductID.String()),
		zap.Int("quantity", params.Quantity),
	)

	item := &CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: params.ProductID,
		Quantity:  params.Quantity,
		Size:      params.Size,
		Color:     params.Color,
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		log.Error("failed to add to cart", zap.Error(err))
		return err
	}

	log.Info("item added to cart")
	return nil
}

func (s *service) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	return s.repo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *service) Remove(ctx context.Context, itemID uuid.UUID) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	return s.repo.Remove(ctx, userID, itemID)
}

func (s *service) Clear(ctx context.Context) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	return s.repo.Clear(ctx, userID)
}
