package product

import (
	"context"
	"strings"
	"testing"

	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Search(ctx context.Context, filter *ProductFilterInput, sort *ProductSortInput, limit, offset int) ([]*Product, error) {
	args := m.Called(ctx, filter, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetFeatured(ctx context.Context, limit int) ([]*Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetTrending(ctx context.Context, limit int) ([]*Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByShop(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*Product, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ListBrands(ctx context.Context) ([]*Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Brand), args.Error(1)
}

type MockShopResolver struct {
	mock.Mock
}

func (m *MockShopResolver) ShopIDForOwner(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func sellerCtx(userID uuid.UUID) context.Context {
	return utils.SetUserContext(context.Background(), userID, "seller@example.com", "seller")
}

func TestService_Create(t *testing.T) {
	sellerID := uuid.New()
	shopID := uuid.New()

	t.Run("success slugs the name under the shop prefix", func(t *testing.T) {
		repo := new(MockRepository)
		shops := new(MockShopResolver)
		svc := NewService(repo, shops)
		ctx := sellerCtx(sellerID)

		shops.On("ShopIDForOwner", ctx, sellerID).Return(shopID, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*product.Product")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*Product)
				assert.Equal(t, shopID, p.ShopID)
				assert.True(t, p.IsActive)
				assert.True(t, strings.HasPrefix(p.Slug, strings.SplitN(shopID.String(), "-", 2)[0]))
			}).
			Return(&Product{ID: uuid.New(), ShopID: shopID, Name: "Linen Shirt"}, nil)

		p, err := svc.Create(ctx, CreateProductInput{Name: "Linen Shirt", Price: 500})
		require.NoError(t, err)
		assert.Equal(t, shopID, p.ShopID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		shops := new(MockShopResolver)
		shops.On("ShopIDForOwner", mock.Anything, sellerID).Return(shopID, nil)
		svc := NewService(new(MockRepository), shops)

		_, err := svc.Create(sellerCtx(sellerID), CreateProductInput{Price: 10})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		shops := new(MockShopResolver)
		shops.On("ShopIDForOwner", mock.Anything, sellerID).Return(shopID, nil)
		svc := NewService(new(MockRepository), shops)

		_, err := svc.Create(sellerCtx(sellerID), CreateProductInput{Name: "x", Price: 0})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestService_Update(t *testing.T) {
	sellerID := uuid.New()
	shopID := uuid.New()
	productID := uuid.New()

	t.Run("foreign shop product is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		shops := new(MockShopResolver)
		svc := NewService(repo, shops)
		ctx := sellerCtx(sellerID)

		shops.On("ShopIDForOwner", ctx, sellerID).Return(shopID, nil)
		repo.On("GetByID", ctx, productID).Return(&Product{ID: productID, ShopID: uuid.New()}, nil)

		name := "Renamed"
		_, err := svc.Update(ctx, productID, UpdateProductInput{Name: &name})
		assert.ErrorIs(t, err, ErrNotShopOwner)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		repo := new(MockRepository)
		shops := new(MockShopResolver)
		svc := NewService(repo, shops)
		ctx := sellerCtx(sellerID)
		desc := "old description"

		shops.On("ShopIDForOwner", ctx, sellerID).Return(shopID, nil)
		repo.On("GetByID", ctx, productID).
			Return(&Product{ID: productID, ShopID: shopID, Name: "Linen Shirt", Price: 500, Description: &desc}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*product.Product")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*Product)
				assert.Equal(t, "Linen Shirt", p.Name)
				assert.Equal(t, 750.0, p.Price)
				assert.Equal(t, &desc, p.Description)
			}).
			Return(nil)

		price := 750.0
		p, err := svc.Update(ctx, productID, UpdateProductInput{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 750.0, p.Price)
	})
}

func TestDiscountPercent(t *testing.T) {
	orig := 1000.0
	p := &Product{Price: 750, OriginalPrice: &orig}
	assert.Equal(t, 25, p.DiscountPercent())

	assert.Equal(t, 0, (&Product{Price: 750}).DiscountPercent())

	same := 750.0
	assert.Equal(t, 0, (&Product{Price: 750, OriginalPrice: &same}).DiscountPercent())
}
