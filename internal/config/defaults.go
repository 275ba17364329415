package config

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

const (
	defaultConfigFile     = "dorm-menu.toml"
	defaultEnvFile        = ".env"
	defaultBaseURL        = "https://dorm.kyonggi.ac.kr:446"
	defaultTimezone       = "Asia/Seoul"
	defaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTimeoutSeconds = 30
	defaultRetryCount     = 2
	defaultCSVName        = "dorm_menu.csv"
	defaultOutputDir      = "."
	defaultLogLevel       = "info"
	tracesPath            = "/v1/traces"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Source: Source{
			BaseURL:        defaultBaseURL,
			Timezone:       defaultTimezone,
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultTimeoutSeconds,
			RetryCount:     defaultRetryCount,
		},
		Output: Output{
			CSVName: defaultCSVName,
			UTF8BOM: true,
			Format:  FormatCSV,
			Dir:     defaultOutputDir,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
