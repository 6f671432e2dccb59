package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := &Profile{
			ID:       uuid.New(),
			Email:    "buyer@example.com",
			Password: "hashed",
			FullName: "Asha Rao",
			Role:     RoleBuyer,
		}

		mock.ExpectQuery(`INSERT INTO profiles`).
			WithArgs(p.ID, p.Email, p.Password, p.FullName, nil, p.Role).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		created, err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, p.ID, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		p := &Profile{ID: uuid.New(), Email: "dup@example.com", Role: RoleBuyer}

		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_email_key"})

		_, err := repo.Create(ctx, p)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		p := &Profile{ID: uuid.New(), Email: "x@example.com", Role: RoleBuyer}

		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(errors.New("db down"))

		_, err := repo.Create(ctx, p)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		rows := sqlmock.NewRows([]string{
			"id", "email", "password", "full_name", "phone", "role", "created_at", "updated_at",
		}).AddRow(id, "buyer@example.com", "hashed", "Asha Rao", nil, "buyer", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT id, email, password, full_name, phone, role, created_at, updated_at FROM profiles WHERE email = \$1`).
			WithArgs("buyer@example.com").
			WillReturnRows(rows)

		p, err := repo.FindByEmail(ctx, "buyer@example.com")
		assert.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, RoleBuyer, p.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM profiles WHERE email = \$1`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestRepository_GetProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "email", "full_name", "phone", "role", "created_at", "updated_at",
		}).AddRow(userID, "a@b.c", "Asha", nil, "buyer", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT id, email, full_name, phone, role, created_at, updated_at FROM profiles WHERE id = \$1`).
			WithArgs(userID).
			WillReturnRows(rows)

		p, err := repo.GetProfile(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, userID, p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM profiles WHERE id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetProfile(ctx, userID)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	name := "New Name"
	phone := "+91-900000000"

	rows := sqlmock.NewRows([]string{
		"id", "email", "full_name", "phone", "role", "created_at", "updated_at",
	}).AddRow(userID, "a@b.c", name, phone, "buyer", time.Now(), time.Now())

	mock.ExpectQuery(`UPDATE profiles SET full_name = COALESCE`).
		WithArgs(userID, &name, &phone).
		WillReturnRows(rows)

	p, err := repo.UpdateProfile(ctx, userID, UpdateProfileParams{FullName: &name, Phone: &phone})
	assert.NoError(t, err)
	assert.Equal(t, name, p.FullName)
	assert.Equal(t, phone, *p.Phone)
}
