package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()
	assert.Equal(t, "admin.db", cfg.DatabaseURL)
	assert.Equal(t, "3002", cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "/var/lib/valygo/admin.db")
	t.Setenv("PORT", "8080")
	t.Setenv("ADMIN_EMAIL", "boot@valygo.io")

	cfg := Load()
	assert.Equal(t, "/var/lib/valygo/admin.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "boot@valygo.io", cfg.AdminEmail)
}
