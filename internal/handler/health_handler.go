package handler

import (
	"context"
	"net/http"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		loggerFrom(r).WithError(err).Error("database ping failed")
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
