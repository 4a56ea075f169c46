package mcpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int           `validate:"gte=1,lte=1000"`
	CacheFileTTL       time.Duration `validate:"gt=0"`
	CacheContentTTL    time.Duration `validate:"gt=0"`
	CacheSweepInterval time.Duration `validate:"gt=0"`

	// Input limits.
	MaxInlineSize   int64 `validate:"gte=1024"`
	MaxMergeSources int   `validate:"gte=1,lte=1000"`

	// Engine defaults.
	SelfCheck bool
	DedupSeed *uint64
	Target    string `validate:"required,version_name"`
}

// Environment variable names.
const (
	envCacheEnabled       = "REPORTIO_CACHE_ENABLED"
	envCacheMaxSize       = "REPORTIO_CACHE_MAX_SIZE"
	envCacheFileTTL       = "REPORTIO_CACHE_FILE_TTL"
	envCacheContentTTL    = "REPORTIO_CACHE_CONTENT_TTL"
	envCacheSweepInterval = "REPORTIO_CACHE_SWEEP_INTERVAL"
	envMaxInlineSize      = "REPORTIO_MAX_INLINE_SIZE"
	envMaxMergeSources    = "REPORTIO_MAX_MERGE_SOURCES"
	envHeavyChecks        = "REPORTIO_HEAVY_CHECKS"
	envDedupSeed          = "REPORTIO_DEDUP_SEED"
	envTarget             = "REPORTIO_TARGET"
)

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// defaultConfig returns the hardcoded defaults.
func defaultConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       true,
		CacheMaxSize:       16,
		CacheFileTTL:       15 * time.Minute,
		CacheContentTTL:    15 * time.Minute,
		CacheSweepInterval: 60 * time.Second,
		MaxInlineSize:      10 * 1024 * 1024,
		MaxMergeSources:    20,
		Target:             "latest",
	}
}

// loadConfig reads configuration from REPORTIO_* environment variables.
// Unparseable values log a warning and fall back to the hardcoded default;
// parsed values outside their allowed range do the same.
func loadConfig() *serverConfig {
	def := defaultConfig()
	c := &serverConfig{
		CacheEnabled:       envBool(envCacheEnabled, def.CacheEnabled),
		CacheMaxSize:       envInt(envCacheMaxSize, def.CacheMaxSize),
		CacheFileTTL:       envDuration(envCacheFileTTL, def.CacheFileTTL),
		CacheContentTTL:    envDuration(envCacheContentTTL, def.CacheContentTTL),
		CacheSweepInterval: envDuration(envCacheSweepInterval, def.CacheSweepInterval),
		MaxInlineSize:      int64(envInt(envMaxInlineSize, int(def.MaxInlineSize))),
		MaxMergeSources:    envInt(envMaxMergeSources, def.MaxMergeSources),
		SelfCheck:          envBool(envHeavyChecks, false),
		DedupSeed:          envSeed(envDedupSeed),
		Target:             envString(envTarget, def.Target),
	}

	var fieldErrs validator.ValidationErrors
	if err := validateConfig(c); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			slog.Warn("invalid config value, using default", "field", fe.StructField(), "value", fe.Value(), "rule", fe.Tag()) //nolint:gosec // G706: values are structured log fields, not format strings
			resetField(c, def, fe.StructField())
		}
	}
	return c
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// version_name accepts "latest" or a vMAJOR.MINOR name; whether the
	// version exists is checked when a tool resolves it.
	_ = v.RegisterValidation("version_name", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "latest" {
			return true
		}
		major, minor, ok := strings.Cut(strings.TrimPrefix(s, "v"), ".")
		if !ok || !strings.HasPrefix(s, "v") {
			return false
		}
		_, errMajor := strconv.ParseUint(major, 10, 31)
		_, errMinor := strconv.ParseUint(minor, 10, 31)
		return errMajor == nil && errMinor == nil
	})
	return v
}

// validateConfig checks c against its struct tags.
func validateConfig(c *serverConfig) error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("mcpserver: invalid configuration: %w", err)
	}
	return nil
}

func resetField(c, def *serverConfig, field string) {
	switch field {
	case "CacheMaxSize":
		c.CacheMaxSize = def.CacheMaxSize
	case "CacheFileTTL":
		c.CacheFileTTL = def.CacheFileTTL
	case "CacheContentTTL":
		c.CacheContentTTL = def.CacheContentTTL
	case "CacheSweepInterval":
		c.CacheSweepInterval = def.CacheSweepInterval
	case "MaxInlineSize":
		c.MaxInlineSize = def.MaxInlineSize
	case "MaxMergeSources":
		c.MaxMergeSources = def.MaxMergeSources
	case "Target":
		c.Target = def.Target
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envSeed(key string) *uint64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		slog.Warn("invalid seed env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return nil
	}
	return &n
}
