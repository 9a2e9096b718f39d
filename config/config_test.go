package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("DB_TYPE", "SQLite")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "disk", cfg.UploadBackend)
	assert.Equal(t, "*/10 * * * *", cfg.SweepSchedule)
	assert.Equal(t, "* * * * *", cfg.ReminderSchedule)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadRequiresSecretAndDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/servicehub")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{DBType: "postgres", DatabaseURL: "x", JWTSecret: "s", JWTTTL: time.Hour, UploadBackend: "disk"}
	}

	cfg := base()
	cfg.DBType = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.UploadBackend = "cloudinary"
	assert.Error(t, cfg.Validate())
	cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret = "c", "k", "s"
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.JWTTTL = 0
	assert.Error(t, cfg.Validate())
}
