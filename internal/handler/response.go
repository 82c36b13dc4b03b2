package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"studentrecords/internal/model"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		loggerFrom(r).WithError(err).Warn("error encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps the error taxonomy onto status codes. Anything that
// is not a client error is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrDuplicateKey):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Student not found")
	default:
		loggerFrom(r).WithError(err).Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
}

// decodeBody decodes a JSON object body into dst. An empty body or empty
// object is rejected, as is anything that does not fit dst's types.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return model.NewValidationError("invalid request body: %v", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return model.NewValidationError("JSON body required")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return model.NewValidationError("invalid data: body must be a JSON object")
	}
	if len(fields) == 0 {
		return model.NewValidationError("JSON body required")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return model.NewValidationError("invalid data: %s must be %s", typeErr.Field, typeErr.Type)
		}
		return model.NewValidationError("invalid data: %v", err)
	}
	return nil
}
