package cookies_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookies"
	"github.com/dmitrymomot/cookies/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults and key", func(t *testing.T) {
		t.Setenv("COOKIES_TEST_COOKIE_SECRET", strings.Repeat("s", 32))

		cfg, err := cookies.LoadConfig(config.WithPrefix("COOKIES_TEST_"), config.WithEnvFiles())
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)

		key, err := cfg.Key()
		require.NoError(t, err)
		assert.Len(t, key.Master(), 64)
		assert.NotNil(t, cfg.Logger("test"))
	})

	t.Run("short secret", func(t *testing.T) {
		cfg := cookies.Config{CookieSecret: "short"}
		_, err := cfg.Key()
		assert.ErrorIs(t, err, cookies.ErrMasterTooShort)
	})
}
