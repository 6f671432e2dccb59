package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vastra-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, s *Shop) (*Shop, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Shop, error)
	GetBySlug(ctx context.Context, slug string) (*Shop, error)
	ListActive(ctx context.Context, limit, offset int) ([]*Shop, error)
	Nearby(ctx context.Context, input NearbyInput) ([]*NearbyShop, error)
	Update(ctx context.Context, s *Shop) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const shopColumns = `id, owner_id, name, slug, description, logo_url, city, latitude, longitude, rating, is_active, created_at`

func scanShop(row interface{ Scan(...any) error }) (*Shop, error) {
	var s Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Description, &s.LogoURL,
		&s.City, &s.Latitude, &s.Longitude, &s.Rating, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Shop) (*Shop, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "shop"), zap.String("method", "Create"))

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shops (id, owner_id, name, slug, description, logo_url, city, latitude, longitude, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING created_at`,
		s.ID, s.OwnerID, s.Name, s.Slug, s.Description, s.LogoURL, s.City, s.Latitude, s.Longitude,
	).Scan(&s.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrShopAlreadyExists
		}
		log.Error("failed to create shop", zap.Error(err))
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	s.IsActive = true
	return s, nil
}

func (r *repository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Shop, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shopColumns+` FROM shops WHERE owner_id = $1`, ownerID)
	s, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop: %w", err)
	}
	return s, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Shop, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shopColumns+` FROM shops WHERE slug = $1 AND is_active = TRUE`, slug)
	s, err := scanShop(row)
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop: %w", err)
	}
	return s, nil
}

func (r *repository) ListActive(ctx context.Context, limit, offset int) ([]*Shop, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shopColumns+` FROM shops
		WHERE is_active = TRUE
		ORDER BY rating DESC, created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shops: %w", err)
	}
	defer rows.Close()

	var shops []*Shop
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shops: %w", err)
	}
	return shops, nil
}

// Nearby delegates the distance math to the get_nearby_shops SQL function,
// which returns active shops within the radius ordered nearest first.
func (r *repository) Nearby(ctx context.Context, input NearbyInput) ([]*NearbyShop, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "shop"), zap.String("method", "Nearby"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, slug, description, logo_url, city, latitude, longitude, rating, is_active, created_at, distance_km
		FROM get_nearby_shops($1, $2, $3)
		LIMIT $4`,
		input.Latitude, input.Longitude, input.RadiusKm, input.Limit)
	if err != nil {
		log.Error("failed to fetch nearby shops", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch nearby shops: %w", err)
	}
	defer rows.Close()

	var shops []*NearbyShop
	for rows.Next() {
		var s NearbyShop
		err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Description, &s.LogoURL,
			&s.City, &s.Latitude, &s.Longitude, &s.Rating, &s.IsActive, &s.CreatedAt, &s.DistanceKm)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearby shop: %w", err)
		}
		shops = append(shops, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nearby shops: %w", err)
	}
	return shops, nil
}

func (r *repository) Update(ctx context.Context, s *Shop) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shops
		SET name = $1, description = $2, logo_url = $3, city = $4, latitude = $5, longitude = $6, is_active = $7
		WHERE id = $8`,
		s.Name, s.Description, s.LogoURL, s.City, s.Latitude, s.Longitude, s.IsActive, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update shop: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrShopNotFound
	}
	return nil
}
