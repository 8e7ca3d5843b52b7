package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerPort:  "8000",
		DBHost:      "localhost",
		DBPort:      "5432",
		DBUser:      "foodgram",
		DBName:      "foodgram",
		DBSSLMode:   "disable",
		JWTSecret:   "secret",
		MediaDir:    "media",
		PageSize:    6,
		MaxPageSize: 100,
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	// Every other setting has a default.
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("PAGE_SIZE", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validConfig()))

	missing := validConfig()
	missing.DBUser = ""
	missing.JWTSecret = ""
	err := Validate(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	noStorage := validConfig()
	noStorage.MediaDir = ""
	assert.Error(t, Validate(noStorage))
	noStorage.S3Bucket = "bucket"
	assert.NoError(t, Validate(noStorage))

	badPages := validConfig()
	badPages.MaxPageSize = 3
	assert.Error(t, Validate(badPages))
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "pw"
	assert.Equal(t,
		"host=localhost port=5432 user=foodgram password=pw dbname=foodgram sslmode=disable",
		cfg.DSN())
}
