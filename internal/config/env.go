// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/log"
)

// ParseString reads a string from an environment variable or returns the default.
func ParseString(key, defaultValue string) string {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		logger.Debug().Str("key", key).Str("value", v).Str("source", "environment").Msg("using environment variable")
		return v
	}
	logger.Debug().Str("key", key).Str("default", defaultValue).Str("source", "default").Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from an environment variable or returns the default.
// Falls back to the default on parse errors.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			logger.Debug().Str("key", key).Int("value", i).Str("source", "environment").Msg("using environment variable")
			return i
		}
		logger.Warn().Str("key", key).Str("value", v).Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
	}
	return defaultValue
}

// ParseBool reads a boolean from an environment variable or returns the default.
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		logger.Warn().Str("key", key).Str("value", v).Bool("default", defaultValue).
			Msg("invalid boolean in environment variable, using default")
	}
	return defaultValue
}

// ParseDuration reads a duration in Go duration format (e.g. "5s") or returns
// the default on parse errors or empty variables.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logger.Warn().Str("key", key).Str("value", v).Dur("default", defaultValue).
			Msg("invalid duration in environment variable, using default")
	}
	return defaultValue
}
