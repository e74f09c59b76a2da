package logger

import (
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init configures the process-wide logger. An empty or unknown level
// falls back to info.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zlog.Logger = zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	zlog.Info().Msg("logger initialized")
}

func Info(msg string, fields map[string]any) {
	zlog.Info().Fields(fields).Msg(msg)
}

func Warn(msg string, fields map[string]any) {
	zlog.Warn().Fields(fields).Msg(msg)
}

func Error(msg string, fields map[string]any) {
	zlog.Error().Fields(fields).Msg(msg)
}

func Fatal(msg string, fields map[string]any) {
	zlog.Fatal().Fields(fields).Msg(msg)
}
