package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := context.Background()
		userID := uuid.New()
		email := "user@example.com"
		role := "buyer"

		ctx = SetUserContext(ctx, userID, email, role)
		assert.NotNil(t, ctx)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)

		assert.Equal(t, email, GetUserEmailFromContext(ctx))

		gotRole, ok := GetUserRoleFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, role, gotRole)
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shopID   string
		expected string
	}{
		{
			name:     "Simple name",
			input:    "Denim Jacket",
			shopID:   "a1b2c3d4-0000-0000-0000-000000000000",
			expected: "a1b2c3d4-denim-jacket",
		},
		{
			name:     "Special characters collapse",
			input:    "  Silk -- Saree!! (Red) ",
			shopID:   "feed0000-1111",
			expected: "feed0000-silk-saree-red",
		},
		{
			name:     "Uppercase",
			input:    "KURTA Set",
			shopID:   "cafe",
			expected: "cafe-kurta-set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input, tt.shopID))
		})
	}
}
