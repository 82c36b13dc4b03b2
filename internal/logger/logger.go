// Package logger configures logrus for the service and bridges gorm's SQL
// logging into it.
package logger

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a logrus logger. Unknown levels fall back to info.
func New(opts Options) *logrus.Logger {
	log := logrus.New()
	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(os.Stdout)
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	return log
}

// GormLogger sends gorm's query trace to logrus. Queries are logged at debug,
// slow ones at warn and failures at error. Record-not-found is not an error
// here since lookups by roll report it to the caller.
type GormLogger struct {
	log           logrus.FieldLogger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(log *logrus.Logger) gormLogger.Interface {
	level := gormLogger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = gormLogger.Info
	}
	return &GormLogger{
		log:           log.WithField("component", "gorm"),
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.log.WithFields(logrus.Fields{
		"caller":  utils.FileWithLineNum(),
		"elapsed": elapsed.String(),
		"rows":    rows,
	})
	if id, ok := RequestID(ctx); ok {
		entry = entry.WithField("request_id", id)
	}

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		entry.WithError(err).Error(sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		entry.Warn("slow sql: " + sql)
	case l.LogLevel >= gormLogger.Info:
		entry.Debug(sql)
	}
}

type ctxKey struct{}

// WithRequestID stores the request id so that SQL traces can be correlated
// with the HTTP log line.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
