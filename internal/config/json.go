package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/trainingkeeper/internal/flagx"
	"github.com/dmitrijs2005/trainingkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30s" and integer nanoseconds are accepted.
//
// Only keys present in the file override the current values.
type JsonConfig struct {
	StoreDriver      *string         `json:"store_driver"`
	DatabaseDSN      *string         `json:"database_dsn"`
	RedisAddr        *string         `json:"redis_addr"`
	RedisPrefix      *string         `json:"redis_prefix"`
	AssetSource      *string         `json:"asset_source"`
	AssetBaseURL     *string         `json:"asset_base_url"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	S3Prefix         *string         `json:"s3_prefix"`
	InstanceURL      *string         `json:"instance_url"`
	InstanceUser     *string         `json:"instance_user"`
	InstancePassword *string         `json:"instance_password"`
	InstanceVersion  *string         `json:"instance_version"`
	InstalledApps    []string        `json:"installed_apps"`
	PoEditorToken    *string         `json:"poeditor_token"`
	PoEditorEndpoint *string         `json:"poeditor_endpoint"`
	TokenSecret      *string         `json:"token_secret"`
	AuthToken        *string         `json:"auth_token"`
	DefaultModules   []string        `json:"default_modules"`
	MaxConcurrency   *int            `json:"max_concurrency"`
	HTTPTimeout      *timex.Duration `json:"http_timeout"`
}

// parseJson loads the file named by -c/-config (if any) over config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.StoreDriver, c.StoreDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPrefix, c.RedisPrefix)
	setString(&config.AssetSource, c.AssetSource)
	setString(&config.AssetBaseURL, c.AssetBaseURL)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.InstanceURL, c.InstanceURL)
	setString(&config.InstanceUser, c.InstanceUser)
	setString(&config.InstancePassword, c.InstancePassword)
	setString(&config.InstanceVersion, c.InstanceVersion)
	setString(&config.PoEditorToken, c.PoEditorToken)
	setString(&config.PoEditorEndpoint, c.PoEditorEndpoint)
	setString(&config.TokenSecret, c.TokenSecret)
	setString(&config.AuthToken, c.AuthToken)

	if c.InstalledApps != nil {
		config.InstalledApps = c.InstalledApps
	}
	if c.DefaultModules != nil {
		config.DefaultModules = c.DefaultModules
	}
	if c.MaxConcurrency != nil {
		config.MaxConcurrency = *c.MaxConcurrency
	}
	if c.HTTPTimeout != nil {
		config.HTTPTimeout = c.HTTPTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
