package config_test

import (
	"testing"

	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 60*24*7, cfg.JWT.Expiration)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.False(t, cfg.Session.CookieSecure)
	assert.False(t, cfg.Session.StrictRevocation)
	assert.False(t, cfg.HTTP.MaskForbidden)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionCookieSegura(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_MASK_FORBIDDEN", "true")
	t.Setenv("DB_PORT", "6543")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.True(t, cfg.Session.CookieSecure)
	assert.True(t, cfg.HTTP.MaskForbidden)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoad_RevocacionEstrictaRequiereRedis(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("SESSION_STRICT_REVOCATION", "true")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Session.StrictRevocation)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "bo", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/bo?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
