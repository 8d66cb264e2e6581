// Package config loads the settings the grimoire CLI wires into the engine.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/on-the-ground/grimoire/log"
)

const (
	defaultLogLevel    = log.LogInfo
	defaultLogEncoding = "console"
	defaultMaxAttempts = 3
	defaultMinPower    = 10
)

type Log struct {
	Level    log.LogLevel
	Encoding string
}

type Retry struct {
	MaxAttempts int // default: 3
}

type Validation struct {
	MinPower int // default: 10
}

type Dispatch struct {
	Strict bool
}

type Tracing struct {
	Enabled bool
}

type Config struct {
	Log        Log
	Retry      Retry
	Validation Validation
	Dispatch   Dispatch
	Tracing    Tracing
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log:        Log{Level: defaultLogLevel, Encoding: defaultLogEncoding},
		Retry:      Retry{MaxAttempts: defaultMaxAttempts},
		Validation: Validation{MinPower: defaultMinPower},
	}
}

// Load reads configuration from defaults, the optional YAML file at path and
// GRIMOIRE_* environment variables, in increasing precedence.
// An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault(ConfigLogLevel, string(defaultLogLevel))
	v.SetDefault(ConfigLogEncoding, defaultLogEncoding)
	v.SetDefault(ConfigRetryMaxAttempts, defaultMaxAttempts)
	v.SetDefault(ConfigValidationMinPower, defaultMinPower)
	v.SetDefault(ConfigDispatchStrict, false)
	v.SetDefault(ConfigTracingEnabled, false)

	// keys already carry the grimoire prefix, so
	// GRIMOIRE_RETRY_MAX_ATTEMPTS overrides grimoire.retry.max_attempts
	v.SetEnvKeyReplacer(strings.NewReplacer(delimiter, "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return normalize(Config{
		Log: Log{
			Level:    log.LogLevel(v.GetString(ConfigLogLevel)),
			Encoding: v.GetString(ConfigLogEncoding),
		},
		Retry:      Retry{MaxAttempts: v.GetInt(ConfigRetryMaxAttempts)},
		Validation: Validation{MinPower: v.GetInt(ConfigValidationMinPower)},
		Dispatch:   Dispatch{Strict: v.GetBool(ConfigDispatchStrict)},
		Tracing:    Tracing{Enabled: v.GetBool(ConfigTracingEnabled)},
	}), nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// normalize replaces out-of-range values with their defaults.
func normalize(c Config) Config {
	c.Log.Level = log.ParseLevel(string(c.Log.Level))
	if c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		c.Log.Encoding = defaultLogEncoding
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = defaultMaxAttempts
	}
	return c
}
