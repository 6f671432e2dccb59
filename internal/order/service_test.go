package order

import (
	"context"
	"errors"
	"testing"

	"vastra-be/internal/address"
	"vastra-be/internal/config"
	"vastra-be/internal/user"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFromCart(ctx context.Context, o *Order, policy PricingPolicy) (*Order, error) {
	args := m.Called(ctx, o, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*Order, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) FetchOrders(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, offset int) ([]*Order, error) {
	args := m.Called(ctx, filter, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) FetchShopOrders(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*Order, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetUserAddress(ctx context.Context, addressID, userID uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, addressID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockRepository) OrderHasShopItems(ctx context.Context, orderID, shopID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID, shopID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to OrderStatus) error {
	args := m.Called(ctx, orderID, from, to)
	return args.Error(0)
}

type stubShops struct {
	shopID uuid.UUID
	err    error
}

func (s stubShops) ShopIDForOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	return s.shopID, s.err
}

var testPolicy = config.CheckoutPolicy{FreeShippingThreshold: 999, ShippingFee: 99}

func buyerCtx(userID uuid.UUID) context.Context {
	return utils.SetUserContext(context.Background(), userID, "buyer@example.com", string(user.RoleBuyer))
}

func sellerCtx(userID uuid.UUID) context.Context {
	return utils.SetUserContext(context.Background(), userID, "seller@example.com", string(user.RoleSeller))
}

func TestService_PlaceOrder(t *testing.T) {
	userID := uuid.New()
	addressID := uuid.New()

	validInput := PlaceOrderInput{
		AddressID:      addressID,
		PaymentMethod:  PaymentCard,
		IdempotencyKey: "idem-1",
	}

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetUserAddress", ctx, addressID, userID).Return(&address.Address{ID: addressID, UserID: userID}, nil)
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(nil, nil)
		repo.On("CreateFromCart", ctx, mock.AnythingOfType("*order.Order"), PricingPolicy{FreeShippingThreshold: 999, ShippingFee: 99}).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*Order)
				assert.Equal(t, StatusConfirmed, o.Status)
				assert.Equal(t, userID, o.UserID)
				assert.NotEmpty(t, o.OrderNumber)
			}).
			Return(&Order{ID: uuid.New(), UserID: userID, Status: StatusConfirmed, TotalAmount: 1000}, nil)

		o, err := svc.PlaceOrder(ctx, validInput)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("manual confirmation policy places pending orders", func(t *testing.T) {
		repo := new(MockRepository)
		policy := testPolicy
		policy.RequireManualConfirmation = true
		svc := NewService(repo, stubShops{}, policy)
		ctx := buyerCtx(userID)

		repo.On("GetUserAddress", ctx, addressID, userID).Return(&address.Address{ID: addressID, UserID: userID}, nil)
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(nil, nil)
		repo.On("CreateFromCart", ctx, mock.AnythingOfType("*order.Order"), mock.Anything).
			Run(func(args mock.Arguments) {
				assert.Equal(t, StatusPending, args.Get(1).(*Order).Status)
			}).
			Return(&Order{Status: StatusPending}, nil)

		o, err := svc.PlaceOrder(ctx, validInput)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository), stubShops{}, testPolicy)
		_, err := svc.PlaceOrder(context.Background(), validInput)
		assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	})

	t.Run("invalid payment method", func(t *testing.T) {
		svc := NewService(new(MockRepository), stubShops{}, testPolicy)
		input := validInput
		input.PaymentMethod = "bitcoin"
		_, err := svc.PlaceOrder(buyerCtx(userID), input)
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})

	t.Run("missing idempotency key", func(t *testing.T) {
		svc := NewService(new(MockRepository), stubShops{}, testPolicy)
		input := validInput
		input.IdempotencyKey = ""
		_, err := svc.PlaceOrder(buyerCtx(userID), input)
		assert.ErrorIs(t, err, ErrMissingIdempotencyKey)
	})

	t.Run("foreign address rejected before checkout", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetUserAddress", ctx, addressID, userID).Return(nil, ErrAddressNotFound)

		_, err := svc.PlaceOrder(ctx, validInput)
		assert.ErrorIs(t, err, ErrAddressNotFound)
		repo.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("idempotent replay returns existing order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)
		existing := &Order{ID: uuid.New(), UserID: userID, IdempotencyKey: "idem-1"}

		repo.On("GetUserAddress", ctx, addressID, userID).Return(&address.Address{ID: addressID, UserID: userID}, nil)
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(existing, nil)

		o, err := svc.PlaceOrder(ctx, validInput)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, o.ID)
		repo.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate resolves to the winner's order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)
		winner := &Order{ID: uuid.New(), UserID: userID, IdempotencyKey: "idem-1"}

		repo.On("GetUserAddress", ctx, addressID, userID).Return(&address.Address{ID: addressID, UserID: userID}, nil)
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(nil, nil).Once()
		repo.On("CreateFromCart", ctx, mock.Anything, mock.Anything).
			Return(nil, &pq.Error{Code: "23505", Constraint: "orders_user_idem_key"})
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(winner, nil).Once()

		o, err := svc.PlaceOrder(ctx, validInput)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, o.ID)
	})

	t.Run("empty cart", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetUserAddress", ctx, addressID, userID).Return(&address.Address{ID: addressID, UserID: userID}, nil)
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(nil, nil)
		repo.On("CreateFromCart", ctx, mock.Anything, mock.Anything).Return(nil, ErrCartEmpty)

		_, err := svc.PlaceOrder(ctx, validInput)
		assert.ErrorIs(t, err, ErrCartEmpty)
	})

	t.Run("repository failure maps to creation error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetUserAddress", ctx, addressID, userID).Return(&address.Address{ID: addressID, UserID: userID}, nil)
		repo.On("GetByIdempotencyKey", ctx, userID, "idem-1").Return(nil, nil)
		repo.On("CreateFromCart", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := svc.PlaceOrder(ctx, validInput)
		assert.ErrorIs(t, err, ErrOrderCreationFailed)
	})
}

func TestService_GetOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("owner reads own order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: userID}, nil)

		o, err := svc.GetOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, o.ID)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: uuid.New()}, nil)

		_, err := svc.GetOrder(ctx, orderID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	sellerID := uuid.New()
	shopID := uuid.New()
	orderID := uuid.New()

	t.Run("valid transition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{shopID: shopID}, testPolicy)
		ctx := sellerCtx(sellerID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, Status: StatusConfirmed}, nil)
		repo.On("OrderHasShopItems", ctx, orderID, shopID).Return(true, nil)
		repo.On("UpdateStatus", ctx, orderID, StatusConfirmed, StatusShipped).Return(nil)

		o, err := svc.UpdateStatus(ctx, orderID, StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, StatusShipped, o.Status)
	})

	t.Run("skipping a stage is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{shopID: shopID}, testPolicy)
		ctx := sellerCtx(sellerID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, Status: StatusPending}, nil)
		repo.On("OrderHasShopItems", ctx, orderID, shopID).Return(true, nil)

		_, err := svc.UpdateStatus(ctx, orderID, StatusShipped)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("buyer role is forbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository), stubShops{}, testPolicy)
		_, err := svc.UpdateStatus(buyerCtx(uuid.New()), orderID, StatusShipped)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("seller cannot move another shop's order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{shopID: shopID}, testPolicy)
		ctx := sellerCtx(sellerID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, Status: StatusConfirmed}, nil)
		repo.On("OrderHasShopItems", ctx, orderID, shopID).Return(false, nil)

		_, err := svc.UpdateStatus(ctx, orderID, StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("seller without a shop is forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{err: errors.New("no shop")}, testPolicy)
		ctx := sellerCtx(sellerID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, Status: StatusConfirmed}, nil)

		_, err := svc.UpdateStatus(ctx, orderID, StatusShipped)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin moves any order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := utils.SetUserContext(context.Background(), uuid.New(), "admin@example.com", string(user.RoleAdmin))

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, Status: StatusShipped}, nil)
		repo.On("UpdateStatus", ctx, orderID, StatusShipped, StatusDelivered).Return(nil)

		o, err := svc.UpdateStatus(ctx, orderID, StatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, StatusDelivered, o.Status)
		repo.AssertNotCalled(t, "OrderHasShopItems", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CancelOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("buyer cancels before shipping", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: userID, Status: StatusConfirmed}, nil)
		repo.On("UpdateStatus", ctx, orderID, StatusConfirmed, StatusCancelled).Return(nil)

		o, err := svc.CancelOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
	})

	t.Run("shipped orders are no longer cancellable by the buyer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: userID, Status: StatusShipped}, nil)

		_, err := svc.CancelOrder(ctx, orderID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, stubShops{}, testPolicy)
		ctx := buyerCtx(userID)

		repo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: uuid.New(), Status: StatusConfirmed}, nil)

		_, err := svc.CancelOrder(ctx, orderID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
