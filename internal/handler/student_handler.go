package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studentrecords/internal/model"
)

// StudentService is the record pipeline the handlers drive.
type StudentService interface {
	Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error)
	Get(ctx context.Context, roll int) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	ListSorted(ctx context.Context) ([]model.Student, error)
	Update(ctx context.Context, roll int, req *model.UpdateStudentRequest) (*model.Student, error)
	Delete(ctx context.Context, roll int) error
	Count(ctx context.Context) (int64, error)
	Seed(ctx context.Context) (bool, int64, error)
	Import(ctx context.Context, r io.Reader) (int, error)
}

type StudentHandler struct {
	studentService StudentService
}

func NewStudentHandler(studentService StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStudentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	student, err := h.studentService.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Student added",
		"student": student,
	})
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, students)
}

func (h *StudentHandler) SortedStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.ListSorted(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, students)
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	roll, ok := rollParam(w, r)
	if !ok {
		return
	}
	student, err := h.studentService.Get(r.Context(), roll)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, student)
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	roll, ok := rollParam(w, r)
	if !ok {
		return
	}
	var req model.UpdateStudentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	student, err := h.studentService.Update(r.Context(), roll, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Updated",
		"student": student,
	})
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	roll, ok := rollParam(w, r)
	if !ok {
		return
	}
	if err := h.studentService.Delete(r.Context(), roll); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Student %d deleted", roll),
	})
}

func (h *StudentHandler) CountStudents(w http.ResponseWriter, r *http.Request) {
	count, err := h.studentService.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int64{"count": count})
}

// SeedStudents inserts the sample set into an empty store. A non-empty
// store is left alone and its size is reported.
func (h *StudentHandler) SeedStudents(w http.ResponseWriter, r *http.Request) {
	seeded, count, err := h.studentService.Seed(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !seeded {
		writeJSON(w, r, http.StatusOK, map[string]interface{}{
			"message": "Database already has data. Clear it first if you want to add sample data.",
			"count":   count,
		})
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Successfully added %d sample students", count),
		"count":   count,
	})
}

// rollParam parses the {roll} path variable. A value that is not an integer
// cannot name a student, so it is answered with 404.
func rollParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	roll, err := strconv.Atoi(mux.Vars(r)["roll"])
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Student not found")
		return 0, false
	}
	return roll, true
}
