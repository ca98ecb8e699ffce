package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults for optional settings", func(t *testing.T) {
		req := require.New(t)

		t.Setenv("DATABASE_URL", "postgres://localhost/talkie")
		t.Setenv("REDIS_URL", "redis://localhost:6379")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		req.NoError(err)
		req.Equal("8080", cfg.Port)
		req.Equal(time.Hour, cfg.AccessTokenTTL)
		req.Equal(2*time.Hour, cfg.MailTokenTTL)
	})

	t.Run("should honour explicit settings", func(t *testing.T) {
		req := require.New(t)

		t.Setenv("DATABASE_URL", "postgres://localhost/talkie")
		t.Setenv("REDIS_URL", "redis://localhost:6379")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9000")
		t.Setenv("ACCESS_TOKEN_TTL", "30m")

		cfg, err := Load()
		req.NoError(err)
		req.Equal("9000", cfg.Port)
		req.Equal(30*time.Minute, cfg.AccessTokenTTL)
	})

	t.Run("should fail when required settings are missing", func(t *testing.T) {
		req := require.New(t)

		for _, key := range []string{"DATABASE_URL", "REDIS_URL", "JWT_SECRET"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		_, err := Load()
		req.Error(err)
	})
}
