package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DBPassword:         "db-pass",
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 720 * time.Hour,
		SMTPUser:           "mailer@example.com",
		SMTPPassword:       "smtp-pass",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing access secret", mutate: func(c *Config) { c.AccessTokenSecret = "" }},
		{name: "missing refresh secret", mutate: func(c *Config) { c.RefreshTokenSecret = "" }},
		{name: "missing db password", mutate: func(c *Config) { c.DBPassword = "" }},
		{name: "missing smtp user", mutate: func(c *Config) { c.SMTPUser = "" }},
		{name: "missing smtp password", mutate: func(c *Config) { c.SMTPPassword = "" }},
		{name: "non-positive access expiry", mutate: func(c *Config) { c.AccessTokenExpiry = 0 }},
		{name: "non-positive refresh expiry", mutate: func(c *Config) { c.RefreshTokenExpiry = -time.Hour }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validConfig()
			test.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_NoInsecureSecretDefaults(t *testing.T) {
	// Secrets must not fall back to built-in values; Load leaves them empty
	// and Validate refuses to start.
	cfg := Load()
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		assert.Error(t, cfg.Validate())
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	cfg := Load()

	assert.Equal(t, time.Hour, cfg.AccessTokenExpiry)
	assert.Equal(t, 720*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, "9999", cfg.Port)
	assert.False(t, cfg.IsProduction())
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "svc",
		DBPassword: "pw",
		DBName:     "bitwatch",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal user=svc password=pw dbname=bitwatch port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}
