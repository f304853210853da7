package state

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pjok-digital/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.store.Snapshot()
	if err != nil {
		log.Printf("[handler] State export error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build snapshot"})
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20) // 20MB limit

	var snapshot models.AppState
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.store.Restore(r.Context(), &snapshot); err != nil {
		log.Printf("[handler] State import error: %v", err)
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Restore failed: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "restored",
		"students": len(snapshot.Students),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
