package order

import (
	"context"
	"errors"
	"fmt"

	"vastra-be/internal/config"
	"vastra-be/internal/logger"
	"vastra-be/internal/user"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ShopResolver maps a seller to their shop so status transitions can be
// scoped to orders that carry the shop's items.
type ShopResolver interface {
	ShopIDForOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, page int) ([]*Order, error)
	ListShopOrders(ctx context.Context, shopID uuid.UUID, limit, page int) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
}

type service struct {
	repo   Repository
	shops  ShopResolver
	policy config.CheckoutPolicy
}

func NewService(repo Repository, shops ShopResolver, policy config.CheckoutPolicy) Service {
	return &service{repo: repo, shops: shops, policy: policy}
}

func (s *service) pricing() PricingPolicy {
	return PricingPolicy{
		FreeShippingThreshold: s.policy.FreeShippingThreshold,
		ShippingFee:           s.policy.ShippingFee,
	}
}

// PlaceOrder validates the checkout input, then hands the cart to the
// repository for the atomic conversion. Retries carrying the same
// idempotency key return the already-created order instead of a duplicate.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("service", "order"), zap.String("method", "PlaceOrder"))

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	if !ValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if input.IdempotencyKey == "" {
		return nil, ErrMissingIdempotencyKey
	}
	if input.AddressID == uuid.Nil {
		return nil, ErrAddressNotFound
	}
	if _, err := s.repo.GetUserAddress(ctx, input.AddressID, userID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByIdempotencyKey(ctx, userID, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		log.Info("idempotent replay, returning existing order", zap.String("orderID", existing.ID.String()))
		return existing, nil
	}

	status := StatusConfirmed
	if s.policy.RequireManualConfirmation {
		status = StatusPending
	}

	id := uuid.New()
	o := &Order{
		ID:             id,
		UserID:         userID,
		OrderNumber:    NewOrderNumber(id),
		PaymentMethod:  input.PaymentMethod,
		Status:         status,
		AddressID:      input.AddressID,
		IdempotencyKey: input.IdempotencyKey,
	}

	created, err := s.repo.CreateFromCart(ctx, o, s.pricing())
	if err != nil {
		if errors.Is(err, ErrCartEmpty) {
			return nil, err
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			// A concurrent request with the same key won the race.
			existing, lookupErr := s.repo.GetByIdempotencyKey(ctx, userID, input.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		log.Error("order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	return created, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	role, _ := utils.GetUserRoleFromContext(ctx)

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// A foreign order reads the same as a missing one.
	if o.UserID != userID && role != string(user.RoleAdmin) {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, page int) ([]*Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return s.repo.FetchOrders(ctx, filter, sort, limit, (page-1)*limit)
}

func (s *service) ListShopOrders(ctx context.Context, shopID uuid.UUID, limit, page int) ([]*Order, error) {
	role, _ := utils.GetUserRoleFromContext(ctx)
	if role != string(user.RoleSeller) && role != string(user.RoleAdmin) {
		return nil, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return s.repo.FetchShopOrders(ctx, shopID, limit, (page-1)*limit)
}

// UpdateStatus applies a lifecycle transition on behalf of a seller or
// admin. A seller may only move orders that carry their shop's items; the
// transition is validated against the order's current status before the
// write, and the write itself re-checks it.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	role, _ := utils.GetUserRoleFromContext(ctx)
	if role != string(user.RoleSeller) && role != string(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != string(user.RoleAdmin) {
		shopID, err := s.shops.ShopIDForOwner(ctx, userID)
		if err != nil {
			return nil, ErrForbidden
		}
		owns, err := s.repo.OrderHasShopItems(ctx, orderID, shopID)
		if err != nil {
			return nil, err
		}
		// A foreign order reads the same as a missing one.
		if !owns {
			return nil, ErrOrderNotFound
		}
	}
	if !CanTransition(o.Status, status) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, status); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

// CancelOrder lets a buyer cancel their own order while it has not yet
// shipped.
func (s *service) CancelOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if o.Status == StatusShipped || !CanTransition(o.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, StatusCancelled); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled
	return o, nil
}
