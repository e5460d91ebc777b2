// Package logger builds the structured zap logger used by both pipelines.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the zap logger.
type Config struct {
	// Level is the minimum level to emit ("debug", "info", "warn", "error").
	Level string
	// LogPath, when non-empty, is a directory that receives a log file in
	// addition to stdout output.
	LogPath string
	// Name is the component name stamped on every entry and used for the
	// log file name.
	Name string
}

// New builds a production zap.Logger. The caller owns the instance and is
// expected to pass it into each component rather than rely on globals.
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	level := strings.TrimSpace(cfg.Level)
	if level == "" {
		level = "info"
	}
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if cfg.LogPath != "" {
		if err := os.MkdirAll(cfg.LogPath, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := cfg.Name
		if name == "" {
			name = "updater"
		}
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, filepath.Join(cfg.LogPath, name+".log"))
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	if cfg.Name != "" {
		log = log.With(zap.String("component", cfg.Name))
	}
	return log, nil
}
