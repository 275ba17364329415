// Package config loads and validates the scraper configuration.
//
// Values are layered: repository defaults, then an optional TOML file, then
// a .env file, then the process environment (S3_BUCKET, S3_PREFIX,
// S3_REGION/AWS_REGION, CSV_NAME, CSV_UTF8_SIG, LOG_LEVEL/SCRAPY_LOG_LVL,
// DORM_BASE_URL, DORM_TIMEZONE, OTEL_EXPORTER_OTLP_TRACES_ENDPOINT,
// OTEL_EXPORTER_OTLP_ENDPOINT). Variables already present in the
// environment take precedence over the .env file.
package config
