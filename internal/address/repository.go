package address

import (
	"context"
	"database/sql"
	"errors"

	"vastra-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetDefault clears the user's previous default and marks the given
	// address in a single transaction, so at most one default survives.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id, type,
	full_name, phone,
	address_line_1, address_line_2,
	city, state, postal_code, country,
	is_default, created_at
`

func scanAddress(row interface{ Scan(...any) error }, a *Address) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.Type,
		&a.FullName, &a.Phone,
		&a.Line1, &a.Line2,
		&a.City, &a.State, &a.PostalCode, &a.Country,
		&a.IsDefault, &a.CreatedAt,
	)
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.String("user_id", userID.String()),
	)

	const q = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		var a Address
		if err := scanAddress(rows, &a); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Address, error) {
	const q = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1
		LIMIT 1
	`

	var a Address
	err := scanAddress(r.db.QueryRowContext(ctx, q, id), &a)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("address query failed", zap.Error(err))
		return nil, err
	}

	return &a, nil
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.String("address_id", addr.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if addr.IsDefault {
		if _, err := tx.ExecContext(ctx, `
			UPDATE addresses
			SET is_default = false
			WHERE user_id = $1 AND is_default = true
		`, addr.UserID); err != nil {
			log.Error("failed to clear previous default", zap.Error(err))
			return err
		}
	}

	const q = `
		INSERT INTO addresses (
			id, user_id, type,
			full_name, phone,
			address_line_1, address_line_2,
			city, state, postal_code, country,
			is_default
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`

	if _, err := tx.ExecContext(ctx, q,
		addr.ID, addr.UserID, addr.Type,
		addr.FullName, addr.Phone,
		addr.Line1, addr.Line2,
		addr.City, addr.State, addr.PostalCode, addr.Country,
		addr.IsDefault,
	); err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Update"),
		zap.String("address_id", addr.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if addr.IsDefault {
		if _, err := tx.ExecContext(ctx, `
			UPDATE addresses
			SET is_default = false
			WHERE user_id = $1 AND is_default = true AND id <> $2
		`, addr.UserID, addr.ID); err != nil {
			log.Error("failed to clear previous default", zap.Error(err))
			return err
		}
	}

	const q = `
		UPDATE addresses
		SET type = $3,
		    full_name = $4,
		    phone = $5,
		    address_line_1 = $6,
		    address_line_2 = $7,
		    city = $8,
		    state = $9,
		    postal_code = $10,
		    country = $11,
		    is_default = $12
		WHERE id = $1 AND user_id = $2
	`

	res, err := tx.ExecContext(ctx, q,
		addr.ID, addr.UserID, addr.Type,
		addr.FullName, addr.Phone,
		addr.Line1, addr.Line2,
		addr.City, addr.State, addr.PostalCode, addr.Country,
		addr.IsDefault,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "SetDefault"),
		zap.String("user_id", userID.String()),
		zap.String("address_id", addressID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = false
		WHERE user_id = $1 AND is_default = true
	`, userID); err != nil {
		log.Error("failed to clear default", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = true
		WHERE user_id = $1 AND id = $2
	`, userID, addressID)
	if err != nil {
		log.Error("failed to set default", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
