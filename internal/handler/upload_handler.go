package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"
)

const maxUploadBytes = 10 << 20 // 10MB

// ImportCSV accepts a CSV either as the multipart field "file" or as the raw
// request body and inserts every row, or none of them.
func (h *StudentHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var src io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, r, http.StatusRequestEntityTooLarge, "File too large or bad request")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()
		src = file
	}

	count, err := h.studentService.Import(r.Context(), src)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Imported %d students", count),
		"count":   count,
	})
}
