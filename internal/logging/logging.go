package logging

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// GormLogger is a gorm logger.Interface that writes through zerolog. Failed
// queries log at error, slow ones at warn, and the rest at debug when the
// gorm level is Info.
type GormLogger struct {
	Logger        zerolog.Logger
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

var _ gormlogger.Interface = GormLogger{}

func NewGormLogger(logger zerolog.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) GormLogger {
	return GormLogger{
		Logger:        logger.With().Str("component", "gorm").Logger(),
		Level:         level,
		SlowThreshold: slowThreshold,
	}
}

func (l GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.Level = level
	return l
}

func (l GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Info {
		l.Logger.Info().Msgf(msg, args...)
	}
}

func (l GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Warn {
		l.Logger.Warn().Msgf(msg, args...)
	}
}

func (l GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Error {
		l.Logger.Error().Msgf(msg, args...)
	}
}

func (l GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.Logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.Logger.Warn().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msgf("slow query >= %v", l.SlowThreshold)
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		l.Logger.Debug().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
	}
}
