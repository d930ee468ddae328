// Package config handles configuration for the training module repository:
// defaults, environment variables, an optional JSON file and command-line
// flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Asset sources for bundled default modules.
const (
	AssetsHTTP = "http"
	AssetsS3   = "s3"
	AssetsNone = "none"
)

// DefaultModuleIDs are the factory-bundled modules shipped with the app.
var DefaultModuleIDs = []string{
	"dashboards",
	"data-entry",
	"event-capture",
	"event-visualizer",
	"data-visualizer",
	"pivot-tables",
	"maps",
	"bulk-load",
	"tracker-capture",
}

// Config holds runtime settings.
//
// Fields:
//   - StoreDriver: one of postgres, sqlite, redis, memory.
//   - DatabaseDSN: PostgreSQL DSN (pgx) or SQLite file name.
//   - RedisAddr / RedisPrefix: Redis backend address and key prefix.
//   - AssetSource: where bundled modules come from (http, s3, none).
//   - AssetBaseURL: base URL serving modules/{id}.zip for the http source.
//   - S3*: object storage settings for the s3 source.
//   - InstanceURL / InstanceUser / InstancePassword: DHIS2 instance API access.
//     When InstanceURL is empty, InstanceVersion and InstalledApps are used instead.
//   - PoEditorToken / PoEditorEndpoint: translation provider access. An empty
//     token disables translation sync.
//   - TokenSecret / AuthToken: HS256 secret and the signed token describing the
//     acting user.
//   - DefaultModules: ids eligible for bootstrap.
//   - MaxConcurrency: fan-out bound for bootstrap fetches, list building and translation fetches.
//   - HTTPTimeout: timeout of every outbound HTTP request.
type Config struct {
	StoreDriver      string        `env:"STORE_DRIVER"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPrefix      string        `env:"REDIS_PREFIX"`
	AssetSource      string        `env:"ASSET_SOURCE"`
	AssetBaseURL     string        `env:"ASSET_BASE_URL"`
	S3RootUser       string        `env:"S3_ROOT_USER"`
	S3RootPassword   string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket         string        `env:"S3_BUCKET"`
	S3Region         string        `env:"S3_REGION"`
	S3BaseEndpoint   string        `env:"S3_BASE_ENDPOINT"`
	S3Prefix         string        `env:"S3_PREFIX"`
	InstanceURL      string        `env:"INSTANCE_URL"`
	InstanceUser     string        `env:"INSTANCE_USER"`
	InstancePassword string        `env:"INSTANCE_PASSWORD"`
	InstanceVersion  string        `env:"INSTANCE_VERSION"`
	InstalledApps    []string      `env:"INSTALLED_APPS"`
	PoEditorToken    string        `env:"POEDITOR_TOKEN"`
	PoEditorEndpoint string        `env:"POEDITOR_ENDPOINT"`
	TokenSecret      string        `env:"TOKEN_SECRET"`
	AuthToken        string        `env:"AUTH_TOKEN"`
	DefaultModules   []string      `env:"DEFAULT_MODULES"`
	MaxConcurrency   int           `env:"MAX_CONCURRENCY"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the token secret is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.StoreDriver = StoreSQLite
	c.DatabaseDSN = "training.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "training:"
	c.AssetSource = AssetsHTTP
	c.AssetBaseURL = "http://127.0.0.1:8080/"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "training"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3Prefix = ""
	c.InstanceVersion = "2.36.0"
	c.PoEditorEndpoint = "https://api.poeditor.com/v2/"
	c.TokenSecret = "secretKey"
	c.DefaultModules = append([]string(nil), DefaultModuleIDs...)
	c.MaxConcurrency = 4
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from TRAINING_* environment variables, an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, nil)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
