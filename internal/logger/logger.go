package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/config"
)

// Setup configures the global zerolog logger. The returned closer releases
// the rotating log file, if one was opened.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var console io.Writer = os.Stderr
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	var closer io.Closer = nopCloser{}
	out := console

	if cfg.File != "" {
		opts := []rotatelogs.Option{rotatelogs.WithLinkName(cfg.File)}
		if cfg.MaxAge > 0 {
			opts = append(opts, rotatelogs.WithMaxAge(cfg.MaxAge))
		}
		if cfg.RotationTime > 0 {
			opts = append(opts, rotatelogs.WithRotationTime(cfg.RotationTime))
		}

		rl, err := rotatelogs.New(cfg.File+".%Y%m%d", opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(console, rl)
		closer = rl
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
