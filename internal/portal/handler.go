package portal

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pjok-digital/backend/internal/attendance"
	"github.com/pjok-digital/backend/internal/grades"
	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/students"
)

// Handler serves the read-only student portal: a student (or parent)
// enters an NIS or scans a card and gets the full report for one
// semester. No write paths live here.
type Handler struct {
	students   *students.Store
	grades     *grades.Service
	attendance *attendance.Service
}

func NewHandler(studentStore *students.Store, gradeService *grades.Service, attendanceService *attendance.Service) *Handler {
	return &Handler{students: studentStore, grades: gradeService, attendance: attendanceService}
}

type reportResponse struct {
	Student    models.Student            `json:"student"`
	Semester   int                       `json:"semester"`
	Grades     *grades.StudentDetail     `json:"grades"`
	Attendance *attendance.StudentReport `json:"attendance"`
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identifier := strings.TrimSpace(vars["identifier"])
	if identifier == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "identifier is required"})
		return
	}

	semester, err := strconv.Atoi(vars["semester"])
	if err != nil || (semester != 1 && semester != 2) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "semester must be 1 or 2"})
		return
	}

	student, err := h.students.GetByIdentifier(identifier)
	if err != nil {
		if err == students.ErrNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[handler] Portal lookup error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load report"})
		return
	}

	gradeDetail, err := h.grades.StudentDetail(semester, student.ID)
	if err != nil {
		log.Printf("[handler] Portal grades error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load report"})
		return
	}

	attendanceReport, err := h.attendance.StudentReport(semester, student.ID)
	if err != nil {
		log.Printf("[handler] Portal attendance error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load report"})
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Student:    *student,
		Semester:   semester,
		Grades:     gradeDetail,
		Attendance: attendanceReport,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
