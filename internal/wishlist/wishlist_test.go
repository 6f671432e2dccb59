package wishlist

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vastra-be/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_List(t *testing.T) {
	repo, mock := newTestRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM wishlist_items w JOIN products p ON p.id = w.product_id WHERE w.user_id = $1`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "created_at", "name", "slug", "price", "image_url", "is_active"}).
			AddRow(uuid.New(), userID, uuid.New(), time.Now(), "Linen Shirt", "linen-shirt-aa11", 500.0, nil, true))

	items, err := repo.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Linen Shirt", items[0].Product.Name)
}

func TestRepository_Add(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	query := regexp.QuoteMeta(`INSERT INTO wishlist_items (id, user_id, product_id) VALUES ($1, $2, $3) ON CONFLICT (user_id, product_id) DO NOTHING`)

	t.Run("added", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(query).WithArgs(sqlmock.AnyArg(), userID, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Add(context.Background(), userID, productID))
	})

	t.Run("unknown product", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(query).WithArgs(sqlmock.AnyArg(), userID, productID).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "wishlist_items_product_id_fkey"})

		err := repo.Add(context.Background(), userID, productID)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Remove(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`)

	t.Run("removed", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(query).WithArgs(userID, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := repo.Remove(context.Background(), userID, productID)
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(query).WithArgs(userID, productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.Remove(context.Background(), userID, productID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID) ([]*WishlistItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*WishlistItem), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockRepository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func buyerCtx(userID uuid.UUID) context.Context {
	return utils.SetUserContext(context.Background(), userID, "buyer@example.com", "buyer")
}

func TestService_Toggle(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("adds when absent", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := buyerCtx(userID)

		repo.On("Remove", ctx, userID, productID).Return(false, nil)
		repo.On("Add", ctx, userID, productID).Return(nil)

		res, err := svc.Toggle(ctx, productID)
		require.NoError(t, err)
		assert.True(t, res.Added)
	})

	t.Run("removes when present", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := buyerCtx(userID)

		repo.On("Remove", ctx, userID, productID).Return(true, nil)

		res, err := svc.Toggle(ctx, productID)
		require.NoError(t, err)
		assert.False(t, res.Added)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Toggle(context.Background(), productID)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
