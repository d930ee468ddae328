package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name declared in Config tags.
const EnvPrefix = "TRAINING_"

// parseEnv overlays Config with the TRAINING_* variables that are set.
// Unset variables leave the current value untouched. A nil environment means
// the process environment. Malformed values panic, like the other layers.
func parseEnv(config *Config, environment map[string]string) {
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(config, opts); err != nil {
		panic(err)
	}
}
