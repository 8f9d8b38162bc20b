package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medguide-server/internal/domain"
)

func TestNewManagerDefaults(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	cfg := manager.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.History.Backend)
	assert.NotEmpty(t, cfg.History.SQLitePath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.NotEmpty(t, cfg.Extractor.BaseURL)
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestManagerValidate(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)
	assert.NoError(t, manager.Validate())
}

func TestManagerValidateRejectsBadConfig(t *testing.T) {
	_, err := NewManager()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *domain.Config)
	}{
		{"Invalid port", func(c *domain.Config) { c.Server.Port = 0 }},
		{"Unknown backend", func(c *domain.Config) { c.History.Backend = "mongodb" }},
		{"Missing sqlite path", func(c *domain.Config) { c.History.SQLitePath = "" }},
		{"Missing extractor URL", func(c *domain.Config) { c.Extractor.BaseURL = "" }},
		{"Invalid log level", func(c *domain.Config) { c.Logging.Level = "verbose" }},
		{"Postgres without host", func(c *domain.Config) {
			c.History.Backend = "postgres"
			c.Database.Host = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh, err := NewManager()
			require.NoError(t, err)
			tt.mutate(fresh.GetConfig())
			assert.Error(t, fresh.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&domain.LoggingConfig{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)

	logger = NewLogger(&domain.LoggingConfig{Level: "nonsense", Format: "json"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
