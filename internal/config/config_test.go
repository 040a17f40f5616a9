package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, "winepick_session", cfg.SessionCookieName)
	assert.True(t, cfg.RunMigrations)
	assert.NotEmpty(t, cfg.JWTSecret)
	require.NotNil(t, cfg.Loc)
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.Loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, time.UTC, cfg.Ubicacion())
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ZonaHorariaInvalida(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Marte/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestQRLink(t *testing.T) {
	cfg := &Config{BaseURL: "https://vinos.example.com/"}

	assert.Equal(t, "https://vinos.example.com/p/MAL-001", cfg.QRLink("MAL-001"))
	assert.Equal(t, "https://vinos.example.com/p/a%2Fb%20c", cfg.QRLink("a/b c"))
	assert.Equal(t, time.UTC, cfg.Ubicacion())
}
