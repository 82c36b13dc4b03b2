package handler

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Route prefixes. The /api/students prefix is kept for existing frontends.
var routePrefixes = []string{"/records", "/api/students"}

type RouterOptions struct {
	StaticDir   string
	CORSOrigins []string
}

// NewRouter wires the record routes, the health check and the static
// frontend behind request logging, panic recovery and CORS.
func NewRouter(students *StudentHandler, health *HealthHandler, log *logrus.Logger, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", health.Check).Methods(http.MethodGet)
	r.HandleFunc("/api/students/dummy", students.SeedStudents).Methods(http.MethodPost)

	for _, prefix := range routePrefixes {
		r.HandleFunc(prefix, students.ListStudents).Methods(http.MethodGet)
		r.HandleFunc(prefix, students.CreateStudent).Methods(http.MethodPost)
		r.HandleFunc(prefix+"/sorted", students.SortedStudents).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/count", students.CountStudents).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/seed", students.SeedStudents).Methods(http.MethodPost)
		r.HandleFunc(prefix+"/import", students.ImportCSV).Methods(http.MethodPost)
		r.HandleFunc(prefix+"/{roll}", students.GetStudent).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/{roll}", students.UpdateStudent).Methods(http.MethodPut)
		r.HandleFunc(prefix+"/{roll}", students.DeleteStudent).Methods(http.MethodDelete)
	}

	if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods(http.MethodGet, http.MethodHead)
	} else if opts.StaticDir != "" {
		log.WithField("dir", opts.StaticDir).Warn("static directory not found, frontend disabled")
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(true),
	)

	return RequestLogger(log)(recovery(cors(r)))
}
