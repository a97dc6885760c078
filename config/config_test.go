package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "tra_passenger.csv", cfg.PassengerCSV)
	assert.Equal(t, "tra_point.csv", cfg.PointCSV)
	assert.Equal(t, "tra_data.csv", cfg.CSVOutputPath)
	assert.Equal(t, "tra_data.json", cfg.JSONOutputPath)
	assert.Empty(t, cfg.XLSXOutputPath)
	assert.Equal(t, "Name", cfg.JoinKey)
	assert.Equal(t, "Point", cfg.PointField)
	assert.True(t, cfg.SortByKey)
	assert.True(t, cfg.InferNumeric)
	assert.False(t, cfg.PostgresEnabled)
	assert.Equal(t, 30*time.Second, cfg.PostgresTimeout)
	assert.Equal(t, ',', cfg.Delimiter())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PASSENGER_CSV", "in/passenger.csv")
	t.Setenv("CSV_DELIMITER", ";")
	t.Setenv("SORT_BY_KEY", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "in/passenger.csv", cfg.PassengerCSV)
	assert.Equal(t, ';', cfg.Delimiter())
	assert.False(t, cfg.SortByKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"multi-char delimiter", "CSV_DELIMITER", ";;"},
		{"non-boolean flag", "SORT_BY_KEY", "sometimes"},
		{"zero retries", "MAX_RETRIES", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "tra", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tra sslmode=disable", cfg.DSN())
}
