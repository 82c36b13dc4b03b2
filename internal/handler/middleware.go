package handler

import (
	"context"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"studentrecords/internal/logger"
)

const requestIDHeader = "X-Request-ID"

type entryKey struct{}

// RequestLogger tags each request with an id, exposes a request-scoped log
// entry to handlers and logs one line per request.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			entry := log.WithFields(logrus.Fields{
				"request_id": id,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			ctx := logger.WithRequestID(r.Context(), id)
			ctx = context.WithValue(ctx, entryKey{}, entry)

			m := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

			fields := logrus.Fields{
				"status":   m.Code,
				"bytes":    m.Written,
				"duration": m.Duration.String(),
			}
			switch {
			case m.Code >= http.StatusInternalServerError:
				entry.WithFields(fields).Error("request completed")
			case m.Code >= http.StatusBadRequest:
				entry.WithFields(fields).Warn("request completed")
			default:
				entry.WithFields(fields).Info("request completed")
			}
		})
	}
}

func loggerFrom(r *http.Request) logrus.FieldLogger {
	if entry, ok := r.Context().Value(entryKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.StandardLogger()
}
