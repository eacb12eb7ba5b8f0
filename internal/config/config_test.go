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

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://covid.ourworldindata.org/data/owid-covid-data.csv", cfg.DatasetURL)
	assert.Empty(t, cfg.DatasetFile)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 10, cfg.SnapshotTopN)
	assert.Equal(t, []string{"United States", "India", "Brazil", "Russia", "United Kingdom"}, cfg.DefaultCountries)
	assert.Len(t, cfg.DefaultContinents, 6)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATASET_FILE", "/tmp/owid.csv")
	t.Setenv("REFRESH_INTERVAL", "30m")
	t.Setenv("SNAPSHOT_TOP_N", "25")
	t.Setenv("DEFAULT_COUNTRIES", "France, Germany,,France")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/owid.csv", cfg.DatasetFile)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 25, cfg.SnapshotTopN)
	assert.Equal(t, []string{"France", "Germany"}, cfg.DefaultCountries)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"REFRESH_INTERVAL": "10s",
		"SNAPSHOT_TOP_N":   "0",
		"PORT":             "http",
		"DATASET_URL":      "not a url",
		"HTTP_TIMEOUT":     "soon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
