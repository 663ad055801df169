package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKY_DATA"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TASKY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKY_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKY_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TASKY_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

// boolFromString is a tolerant bool parser; unparseable values are false.
func boolFromString(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
