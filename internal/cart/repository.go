package cart

import (
	"context"
	"database/sql"
	"errors"

	"vastra-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetItems(ctx context.Context, userID uuid.UUID) ([]*CartItem, error)
	GetItemByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*CartItem, error)

	// Upsert inserts the row or, when a (user, product, size, color) row
	// already exists, adds to its quantity. The unique index on those four
	// columns backs the conflict clause.
	Upsert(ctx context.Context, item *CartItem) error

	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItems(ctx context.Context, userID uuid.UUID) ([]*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "GetItems"),
		zap.String("user_id", userID.String()),
	)

	const q = `
		SELECT
			c.id, c.user_id, c.product_id, c.quantity, c.size, c.color,
			c.created_at, c.updated_at,
			p.name, COALESCE(b.name, '') AS brand, p.price, p.image_url
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.Size, &item.Color,
			&item.CreatedAt, &item.UpdatedAt,
			&item.Product.Name, &item.Product.Brand, &item.Product.Price,
			&item.Product.ImageURL,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *repository) GetItemByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*CartItem, error) {
	const q = `
		SELECT id, user_id, product_id, quantity, size, color, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, q, userID, productID, size, color).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.Size, &item.Color, &item.CreatedAt, &item.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) Upsert(ctx context.Context, item *CartItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "Upsert"),
		zap.String("product_id", item.ProductID.String()),
	)

	const q = `
		INSERT INTO cart_items (id, user_id, product_id, quantity, size, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, q,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.Size, item.Color,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return ErrProductNotFound
		}
		log.Error("upsert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, quantity, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
