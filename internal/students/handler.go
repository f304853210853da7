package students

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pjok-digital/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func validateStudentRequest(req *models.StudentRequest) string {
	req.NIS = strings.TrimSpace(req.NIS)
	req.CardID = strings.TrimSpace(req.CardID)
	req.Name = strings.TrimSpace(req.Name)
	req.ClassName = normalizeClass(req.ClassName)

	if req.NIS == "" {
		return "nis is required"
	}
	if req.Name == "" {
		return "name is required"
	}
	if req.ClassName == "" {
		return "class_name is required"
	}
	if !req.Gender.Valid() {
		return "gender must be 'L' or 'P'"
	}
	return ""
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if msg := validateStudentRequest(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	student, err := h.store.Create(req)
	if err != nil {
		if err == ErrDuplicate {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "NIS or card ID already registered"})
			return
		}
		log.Printf("[handler] Create student error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create student"})
		return
	}

	writeJSON(w, http.StatusCreated, student)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	class := r.URL.Query().Get("class")
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	list, err := h.store.List(class, search)
	if err != nil {
		log.Printf("[handler] List students error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list students"})
		return
	}

	if list == nil {
		list = []models.Student{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	student, err := h.store.Get(id)
	if err != nil {
		if err == ErrNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[handler] Get student error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get student"})
		return
	}

	writeJSON(w, http.StatusOK, student)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if msg := validateStudentRequest(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	student, err := h.store.Update(id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
		case ErrDuplicate:
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "NIS or card ID already registered"})
		default:
			log.Printf("[handler] Update student error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update student"})
		}
		return
	}

	writeJSON(w, http.StatusOK, student)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(id); err != nil {
		if err == ErrNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[handler] Delete student error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete student"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Lookup resolves an NIS or card identifier, the way the card-scan
// station and the portal search do.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(r.URL.Query().Get("identifier"))
	if identifier == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "identifier is required"})
		return
	}

	student, err := h.store.GetByIdentifier(identifier)
	if err != nil {
		if err == ErrNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "card not recognized"})
			return
		}
		log.Printf("[handler] Lookup error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to look up student"})
		return
	}

	writeJSON(w, http.StatusOK, student)
}

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.store.Classes()
	if err != nil {
		log.Printf("[handler] ListClasses error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list classes"})
		return
	}

	if classes == nil {
		classes = []string{}
	}
	writeJSON(w, http.StatusOK, classes)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
