package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"dorm-menu-csv/internal/config"
	"dorm-menu-csv/internal/telemetry"

	"github.com/spf13/cobra"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	telemetry telemetry.Telemetry
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads the configuration once, installs the default logger
// and starts span export when tracing is configured.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		setupLogging(cmd.ErrOrStderr(), cfg.Logging.Level)
		slog.Debug("configuration loaded", "path", resolved, "exists", exists)

		tel, err := telemetry.Setup(cmd.Context(), serviceName, cfg.Tracing)
		if err != nil {
			c.configErr = fmt.Errorf("setup tracing: %w", err)
			return
		}
		c.telemetry = tel
		c.config = cfg
	})
	return c.config, c.configErr
}

// shutdown flushes spans recorded during the command.
func (c *commandContext) shutdown(ctx context.Context) error {
	return c.telemetry.Shutdown(ctx)
}

func setupLogging(w io.Writer, level string) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
