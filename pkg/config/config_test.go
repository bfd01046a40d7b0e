package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("PIX_ACCESS_TOKEN", "test-token")
	defer func() {
		for _, key := range []string{"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "REDIS_HOST", "REDIS_PORT", "JWT_SECRET", "PIX_ACCESS_TOKEN"} {
			os.Unsetenv(key)
		}
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "test-token", cfg.PixAccessToken)
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("NEGOTIATION_FEE")
	os.Unsetenv("PIX_API_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.mercadopago.com", cfg.PixAPIBaseURL)
	assert.Equal(t, 0.49, cfg.NegotiationFee)
	assert.Equal(t, 4.90, cfg.Highlight24hFee)
	assert.Equal(t, 17.90, cfg.Highlight7dFee)
}

func TestLoadConfig_FeeOverride(t *testing.T) {
	os.Setenv("NEGOTIATION_FEE", "0.99")
	defer os.Unsetenv("NEGOTIATION_FEE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, 0.99, cfg.NegotiationFee)
}
