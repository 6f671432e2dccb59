package user

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
	Create(ctx context.Context, p *Profile) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Profile) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "Create"),
		zap.String("email", p.Email),
	)

	const q = `
		INSERT INTO profiles (id, email, password, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, q,
		p.ID, p.Email, p.Password, p.FullName, p.Phone, p.Role,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			log.Info("email already registered")
			return nil, ErrEmailExists
		}
		log.Error("failed to insert profile", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	const q = `
		SELECT id, email, password, full_name, phone, role, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&p.ID, &p.Email, &p.Password, &p.FullName, &p.Phone, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "GetProfile"),
		zap.String("user_id", userID.String()),
	)

	const q = `
		SELECT id, email, full_name, phone, role, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Error("failed to scan profile", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", userID.String()),
	)

	// COALESCE keeps existing values where the input is nil
	const q = `
		UPDATE profiles
		SET full_name = COALESCE($2, full_name),
		    phone = COALESCE($3, phone),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, full_name, phone, role, created_at, updated_at
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, q, userID, params.FullName, params.Phone).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated")
	return &p, nil
}
