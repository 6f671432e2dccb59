package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrProductNotFound = errors.New("product not found")
)

const pgForeignKeyViolation = pq.ErrorCode("23503")

type Repository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*WishlistItem, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, userID uuid.UUID) ([]*WishlistItem, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "wishlist"), zap.String("method", "List"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at, p.name, p.slug, p.price, p.image_url, p.is_active
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		log.Error("failed to fetch wishlist", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}
	defer rows.Close()

	var items []*WishlistItem
	for rows.Next() {
		var it WishlistItem
		err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt,
			&it.Product.Name, &it.Product.Slug, &it.Product.Price, &it.Product.ImageURL, &it.Product.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wishlist items: %w", err)
	}
	return items, nil
}

func (r *repository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}
	return count, nil
}

// Add is idempotent; wishing the same product twice is a no-op.
func (r *repository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, user_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`,
		uuid.New(), userID, productID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

type Service interface {
	Toggle(ctx context.Context, productID uuid.UUID) (*ToggleResult, error)
	List(ctx context.Context) ([]*WishlistItem, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Toggle removes the product when it is already wished, otherwise adds it.
func (s *service) Toggle(ctx context.Context, productID uuid.UUID) (*ToggleResult, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if removed {
		return &ToggleResult{ProductID: productID, Added: false}, nil
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return nil, err
	}
	return &ToggleResult{ProductID: productID, Added: true}, nil
}

func (s *service) List(ctx context.Context) ([]*WishlistItem, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.List(ctx, userID)
}

func (s *service) Count(ctx context.Context) (int, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return 0, ErrUnauthenticated
	}
	return s.repo.Count(ctx, userID)
}
