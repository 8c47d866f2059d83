package persistence

import (
	"log/slog"

	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

// newGormLogger routes gorm's printf output into slog. Statement logs at
// info go to trace so they stay out of normal debug output.
func newGormLogger(logger *slog.Logger, cfg *config.DatabaseConfig) gormlogger.Interface {
	level, slogLevel := gormLevels(cfg.LogLevel)

	return gormlogger.New(
		slog.NewLogLogger(logger.With(slog.String("component", "gorm")).Handler(), slogLevel),
		gormlogger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

func gormLevels(level string) (gormlogger.LogLevel, slog.Level) {
	switch level {
	case "silent":
		return gormlogger.Silent, slog.LevelError
	case "error":
		return gormlogger.Error, slog.LevelError
	case "info":
		return gormlogger.Info, logging.LevelTrace
	default:
		return gormlogger.Warn, slog.LevelWarn
	}
}
