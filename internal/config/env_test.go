package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	var c Config
	c.LoadDefaults()

	parseEnv(&c, map[string]string{
		"TRAINING_STORE_DRIVER":    "postgres",
		"TRAINING_DATABASE_DSN":    "postgres://u:p@db:5432/training",
		"TRAINING_DEFAULT_MODULES": "maps,dashboards",
		"TRAINING_MAX_CONCURRENCY": "8",
		"TRAINING_HTTP_TIMEOUT":    "5s",
		"UNRELATED":                "x",
	})

	assert.Equal(t, StorePostgres, c.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/training", c.DatabaseDSN)
	assert.Equal(t, []string{"maps", "dashboards"}, c.DefaultModules)
	assert.Equal(t, 8, c.MaxConcurrency)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)

	// untouched
	assert.Equal(t, AssetsHTTP, c.AssetSource)
	assert.Equal(t, "training", c.S3Bucket)
}

func TestParseEnv_InvalidValuePanics(t *testing.T) {
	var c Config
	require.Panics(t, func() {
		parseEnv(&c, map[string]string{"TRAINING_MAX_CONCURRENCY": "many"})
	})
}
