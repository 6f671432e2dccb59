package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := GenerateJWT(userID, RoleSeller, "seller@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "seller", claims.Role)
		assert.Equal(t, "seller@example.com", claims.Email)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := ParseJWT("not-a-token")
		assert.Error(t, err)
	})

	t.Run("Missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := GenerateJWT(userID, RoleBuyer, "a@b.c")
		assert.Error(t, err)
	})
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleBuyer))
	assert.True(t, ValidRole(RoleSeller))
	assert.False(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(Role("superuser")))
}
