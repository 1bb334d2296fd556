package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, DriverMemory, cfg.PersistenceDriver)
	assert.Equal(t, BootModeEager, cfg.BootMode)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PERSISTENCE_DRIVER", DriverDynamoDB)
	t.Setenv("BOOT_MODE", BootModeLazy)
	t.Setenv("TABLE_NAME", "tournaments-prod")
	t.Setenv("ENABLE_EVENTS", "true")
	t.Setenv("EVENT_BUS_NAME", "tournament-bus")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverDynamoDB, cfg.PersistenceDriver)
	assert.Equal(t, BootModeLazy, cfg.BootMode)
	assert.Equal(t, "tournaments-prod", cfg.DynamoDBTable)
	assert.True(t, cfg.EnableEvents)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid memory", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.PersistenceDriver = "postgres" }, true},
		{"unknown boot mode", func(c *Config) { c.BootMode = "deferred" }, true},
		{"dynamodb without table", func(c *Config) {
			c.PersistenceDriver = DriverDynamoDB
			c.DynamoDBTable = ""
		}, true},
		{"events without bus", func(c *Config) {
			c.EnableEvents = true
			c.EventBusName = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				PersistenceDriver: DriverMemory,
				BootMode:          BootModeEager,
				DynamoDBTable:     "tournaments",
				EventBusName:      "tournament-events",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
