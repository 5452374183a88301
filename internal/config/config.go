package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// Values come from environment variables with sensible defaults; the CLI
// layer overrides individual fields from flags.
//
// Environment Variables:
// - DOCTRAN_SOURCE_DIR: directory holding the documents to translate
// - DOCTRAN_TARGET_DIR: directory receiving the translated mirror
// - DOCTRAN_SOURCE_LANG: source language code (default: th)
// - DOCTRAN_TARGET_LANG: target language code (default: en)
// - DOCTRAN_CACHE_FILE: cache file path (default: translation_cache.json inside the target dir)
// - DOCTRAN_RECURSIVE: walk subdirectories (default: true)
// - DOCTRAN_EXTENSIONS: comma-separated extension allow-list (default: .xlsx,.xls,.docx,.pdf,.csv,.txt)
// - DOCTRAN_DELAY: pause after each provider call (default: 500ms)
// - DOCTRAN_SCRIPT: Unicode script name forcing the source script gate (optional)
// - DOCTRAN_CRON_EXPR: schedule for watch mode (default: @hourly)
// - DOCTRAN_LOG_LEVEL: debug|info|warn|error|fatal (default: info)
// - DOCTRAN_LOG_FILE: log to this file instead of stdout (optional)
// - DOCTRAN_PROGRESS: draw a progress bar (default: true)

type Config struct {
	SourceDir  string `json:"source_dir"`
	TargetDir  string `json:"target_dir"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`

	CacheFile    string        `json:"cache_file"`
	Recursive    bool          `json:"recursive"`
	Extensions   []string      `json:"extensions"`
	RequestDelay time.Duration `json:"request_delay"`
	SourceScript string        `json:"source_script"`

	CronExpr string `json:"cron_expr"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
	Progress bool   `json:"progress"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		SourceDir:    getEnvString("DOCTRAN_SOURCE_DIR", ""),
		TargetDir:    getEnvString("DOCTRAN_TARGET_DIR", ""),
		SourceLang:   getEnvString("DOCTRAN_SOURCE_LANG", "th"),
		TargetLang:   getEnvString("DOCTRAN_TARGET_LANG", "en"),
		CacheFile:    getEnvString("DOCTRAN_CACHE_FILE", ""),
		Recursive:    getEnvBool("DOCTRAN_RECURSIVE", true),
		Extensions:   getEnvStringSlice("DOCTRAN_EXTENSIONS", []string{".xlsx", ".xls", ".docx", ".pdf", ".csv", ".txt"}),
		RequestDelay: getEnvDuration("DOCTRAN_DELAY", 500*time.Millisecond),
		SourceScript: getEnvString("DOCTRAN_SCRIPT", ""),
		CronExpr:     getEnvString("DOCTRAN_CRON_EXPR", "@hourly"),
		LogLevel:     getEnvString("DOCTRAN_LOG_LEVEL", "info"),
		LogFile:      getEnvString("DOCTRAN_LOG_FILE", ""),
		Progress:     getEnvBool("DOCTRAN_PROGRESS", true),
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the configuration is internally consistent.
// Directory presence is checked later, when a run actually starts.
func (c *Config) Validate() error {
	if c.SourceLang == "" {
		return fmt.Errorf("source language is required")
	}
	if c.TargetLang == "" {
		return fmt.Errorf("target language is required")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment variables with default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvStringSlice gets a comma-separated list from environment variables
// with default
func getEnvStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
