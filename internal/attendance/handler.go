package attendance

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/students"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func semesterVar(r *http.Request) (int, error) {
	sem, err := strconv.Atoi(mux.Vars(r)["semester"])
	if err != nil || (sem != 1 && sem != 2) {
		return 0, fmt.Errorf("semester must be 1 or 2")
	}
	return sem, nil
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var req models.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	rec, err := h.service.Record(sem, req)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "status must be one of H, S, I, A, D"})
		case ErrInvalidDate:
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date must be YYYY-MM-DD"})
		case students.ErrNotFound:
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
		default:
			log.Printf("[handler] Record attendance error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record attendance"})
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var req models.DeleteAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Remove(sem, req); err != nil {
		switch err {
		case ErrInvalidDate:
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date must be YYYY-MM-DD"})
		case ErrNotFound:
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attendance record not found"})
		default:
			log.Printf("[handler] Remove attendance error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to remove attendance"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var records []models.AttendanceRecord
	switch {
	case r.URL.Query().Get("student_id") != "":
		records, err = h.service.ListByStudent(sem, r.URL.Query().Get("student_id"))
	case r.URL.Query().Get("date") != "":
		var date time.Time
		date, err = parseDate(r.URL.Query().Get("date"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		records, err = h.service.ListByDate(sem, date)
	default:
		records, err = h.service.List(sem)
	}
	if err != nil {
		log.Printf("[handler] List attendance error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attendance"})
		return
	}

	if records == nil {
		records = []models.AttendanceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) Checkin(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var req models.CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "identifier is required"})
		return
	}

	resp, err := h.service.Checkin(sem, req.Identifier, time.Now())
	if err != nil {
		if err == ErrCardNotRecognized {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "card not recognized"})
			return
		}
		log.Printf("[handler] Checkin error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to check in"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	date := time.Now().Truncate(24 * time.Hour)
	if d := r.URL.Query().Get("date"); d != "" {
		date, err = parseDate(d)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
	}

	entries, err := h.service.Log(sem, date)
	if err != nil {
		log.Printf("[handler] Log error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load check-in log"})
		return
	}

	if entries == nil {
		entries = []models.CheckinLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Recap(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	class := r.URL.Query().Get("class")
	if class == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "class is required"})
		return
	}

	rows, days, err := h.service.ClassRecap(sem, class)
	if err != nil {
		log.Printf("[handler] Attendance recap error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build recap"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"meeting_days": days,
		"rows":         rows,
	})
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	class := r.URL.Query().Get("class")
	if class == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "class is required"})
		return
	}

	rows, days, err := h.service.ClassRecap(sem, class)
	if err != nil {
		log.Printf("[handler] Attendance export error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build export"})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="absensi_%s_semester%d.csv"`, class, sem))

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(BuildRecapCSV(rows, days)); err != nil {
		log.Printf("[handler] Attendance export write error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
