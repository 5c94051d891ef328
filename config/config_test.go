package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSecret(t *testing.T) {
	t.Run("reads the environment at call time", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "rotated-secret")
		assert.Equal(t, []byte("rotated-secret"), config.JWTSecret())
	})

	t.Run("falls back for local development", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		os.Unsetenv("JWT_SECRET")
		assert.Equal(t, []byte("food_marketplace_dev_secret"), config.JWTSecret())
	})

	t.Run("dotenv-supplied secret signs tokens", func(t *testing.T) {
		// Simulate the startup sequence: the config package is long
		// initialized when main loads .env. The secret it supplies must
		// still be the one that signs and verifies tokens.
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=dotenv-secret\n"), 0o600))

		t.Setenv("JWT_SECRET", "")
		os.Unsetenv("JWT_SECRET")
		require.NoError(t, godotenv.Load(envFile))

		token, err := middleware.GenerateToken(&models.User{ID: 7, Email: "alice@example.com"})
		require.NoError(t, err)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte("dotenv-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)

		_, err = jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte("food_marketplace_dev_secret"), nil
		})
		assert.Error(t, err, "the dev fallback must not verify a token signed with the configured secret")
	})
}
