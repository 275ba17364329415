package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ErrMissingBucket is returned when an upload is requested without a bucket.
var ErrMissingBucket = errors.New("missing S3_BUCKET")

// Source describes where and how the schedule page is fetched.
type Source struct {
	BaseURL        string `toml:"base_url"`
	Timezone       string `toml:"timezone"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryCount     int    `toml:"retry_count"`
}

// Output describes the artifact written from the extracted records.
type Output struct {
	CSVName string `toml:"csv_name"`
	UTF8BOM bool   `toml:"utf8_bom"`
	Format  string `toml:"format"`
	Dir     string `toml:"dir"`
}

// Storage describes the object storage destination.
type Storage struct {
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
	Region string `toml:"region"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Tracing configures span export. Tracing is off when Endpoint is empty.
type Tracing struct {
	Endpoint string            `toml:"endpoint"`
	Headers  map[string]string `toml:"headers"`
}

// Config holds every setting of the scraper. None of it changes how a
// page is decoded or extracted.
type Config struct {
	Source  Source  `toml:"source"`
	Output  Output  `toml:"output"`
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`
	Tracing Tracing `toml:"tracing"`
}

// Load reads the TOML file at path (or dorm-menu.toml in the working
// directory when path is empty), then .env, then the process environment.
// It returns the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	return load(path, defaultEnvFile)
}

func load(path, envFile string) (*Config, string, bool, error) {
	cfg := Default()

	if path == "" {
		path = defaultConfigFile
	}
	resolvedPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", false, err
	}

	exists := true
	file, err := os.Open(resolvedPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, "", false, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
				*dst = v
				return
			}
		}
	}
	setString(&c.Source.BaseURL, "DORM_BASE_URL")
	setString(&c.Source.Timezone, "DORM_TIMEZONE")
	setString(&c.Storage.Bucket, "S3_BUCKET")
	setString(&c.Storage.Prefix, "S3_PREFIX")
	setString(&c.Storage.Region, "S3_REGION", "AWS_REGION")
	setString(&c.Output.CSVName, "CSV_NAME")
	setString(&c.Logging.Level, "LOG_LEVEL", "SCRAPY_LOG_LVL")

	// the signal-specific variable is a full URL, the generic one a base
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")); v != "" {
		c.Tracing.Endpoint = v
	} else if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); v != "" {
		c.Tracing.Endpoint = strings.TrimRight(v, "/") + tracesPath
	}

	if v := strings.TrimSpace(os.Getenv("CSV_UTF8_SIG")); v != "" {
		bom, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CSV_UTF8_SIG: %w", err)
		}
		c.Output.UTF8BOM = bom
	}
	return nil
}

func (c *Config) normalize() {
	c.Source.BaseURL = strings.TrimRight(strings.TrimSpace(c.Source.BaseURL), "/")
	c.Source.Timezone = strings.TrimSpace(c.Source.Timezone)
	c.Output.CSVName = strings.TrimSpace(c.Output.CSVName)
	if c.Output.CSVName == "" {
		c.Output.CSVName = defaultCSVName
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Storage.Bucket = strings.TrimSpace(c.Storage.Bucket)
	c.Storage.Prefix = strings.Trim(strings.TrimSpace(c.Storage.Prefix), "/")
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Tracing.Endpoint = strings.TrimSpace(c.Tracing.Endpoint)
}

// Validate checks the values that every command depends on. The bucket is
// checked separately by RequireBucket since local runs do not need it.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.base_url %q must be an absolute http(s) URL", c.Source.BaseURL)
	}
	if _, err := time.LoadLocation(c.Source.Timezone); err != nil {
		return fmt.Errorf("source.timezone: %w", err)
	}
	if c.Source.TimeoutSeconds <= 0 {
		return fmt.Errorf("source.timeout_seconds must be positive, got %d", c.Source.TimeoutSeconds)
	}
	if c.Source.RetryCount < 0 {
		return fmt.Errorf("source.retry_count must not be negative, got %d", c.Source.RetryCount)
	}
	switch c.Output.Format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("output.format %q must be %q or %q", c.Output.Format, FormatCSV, FormatJSON)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if c.Tracing.Endpoint != "" {
		u, err := url.Parse(c.Tracing.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("tracing.endpoint %q must be an absolute http(s) URL", c.Tracing.Endpoint)
		}
	}
	return nil
}

// RequireBucket reports ErrMissingBucket when no destination is configured.
func (c *Config) RequireBucket() error {
	if c.Storage.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}

// Location returns the timezone used to pick "today".
func (s Source) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Timeout returns the per-request timeout.
func (s Source) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
