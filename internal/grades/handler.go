package grades

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/students"
)

type Handler struct {
	service *Service
	config  *ConfigStore
}

func NewHandler(service *Service, config *ConfigStore) *Handler {
	return &Handler{service: service, config: config}
}

func semesterVar(r *http.Request) (int, error) {
	sem, err := strconv.Atoi(mux.Vars(r)["semester"])
	if err != nil || (sem != 1 && sem != 2) {
		return 0, fmt.Errorf("semester must be 1 or 2")
	}
	return sem, nil
}

// ── Config ──────────────────────────────────────────────

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	cfg, err := h.config.GetConfig(sem)
	if err != nil {
		log.Printf("[handler] GetConfig error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load config"})
		return
	}

	if cfg.Materials == nil {
		cfg.Materials = []models.MaterialInfo{}
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) UpdateKKM(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var req models.UpdateKKMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.KKM) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "kkm map is required"})
		return
	}
	for level, value := range req.KKM {
		if value < 1 || value > 100 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("kkm for level %s must be between 1 and 100", level)})
			return
		}
	}

	if err := h.config.UpdateKKM(sem, req.KKM); err != nil {
		log.Printf("[handler] UpdateKKM error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update KKM"})
		return
	}

	cfg, err := h.config.GetConfig(sem)
	if err != nil {
		log.Printf("[handler] UpdateKKM reload error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load config"})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// ── Materials ───────────────────────────────────────────

func (h *Handler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var req models.MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Label == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "label is required"})
		return
	}

	m, err := h.config.AddMaterial(sem, req)
	if err != nil {
		log.Printf("[handler] AddMaterial error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add material"})
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid material ID"})
		return
	}

	var req models.MaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Label == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "label is required"})
		return
	}

	m, err := h.config.UpdateMaterial(id, req)
	if err != nil {
		if err == ErrMaterialNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Material not found"})
			return
		}
		log.Printf("[handler] UpdateMaterial error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update material"})
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid material ID"})
		return
	}

	if err := h.config.DeleteMaterial(r.Context(), id); err != nil {
		if err == ErrMaterialNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Material not found"})
			return
		}
		log.Printf("[handler] DeleteMaterial error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete material"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Grades ──────────────────────────────────────────────

func (h *Handler) GetStudentGrades(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	studentID := mux.Vars(r)["id"]

	detail, err := h.service.StudentDetail(sem, studentID)
	if err != nil {
		if err == students.ErrNotFound {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[handler] GetStudentGrades error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load grades"})
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	studentID := mux.Vars(r)["id"]

	var req models.UpdateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !req.Field.Valid() {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid field"})
		return
	}
	if req.Value < 0 || req.Value > 100 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "value must be between 0 and 100"})
		return
	}
	if (req.Field == models.FieldDaily || req.Field == models.FieldDailyRemedial) && req.MaterialID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "material_id is required for daily fields"})
		return
	}

	detail, err := h.service.UpdateGrade(sem, studentID, req)
	if err != nil {
		switch err {
		case students.ErrNotFound:
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
		case ErrMaterialWrongSemester:
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Material does not belong to this semester"})
		default:
			log.Printf("[handler] UpdateGrade error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update grade"})
		}
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ── Recap & Export ──────────────────────────────────────

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

	rows, materials, err := h.service.ClassRecap(sem, class)
	if err != nil {
		log.Printf("[handler] Grade recap error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build recap"})
		return
	}

	if materials == nil {
		materials = []models.MaterialInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"materials": materials,
		"rows":      rows,
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

	rows, materials, err := h.service.ClassRecap(sem, class)
	if err != nil {
		log.Printf("[handler] Grade export error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build export"})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="nilai_%s_semester%d.csv"`, class, sem))

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(BuildRecapCSV(rows, materials)); err != nil {
		log.Printf("[handler] Grade export write error: %v", err)
	}
}

func (h *Handler) RunRemediation(w http.ResponseWriter, r *http.Request) {
	sem, err := semesterVar(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Class is optional; an empty body runs remediation for every class.
	var req models.RemediationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.RunRemediation(r.Context(), sem, req.Class)
	if err != nil {
		log.Printf("[handler] RunRemediation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Remediation failed"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
