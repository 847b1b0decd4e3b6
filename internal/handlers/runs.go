package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.runStore.List())
}

func (h *Handler) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	run, ok := h.getRunOrError(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.writeJSON(w, run)
}

func (h *Handler) HandleRunDelete(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if !h.runStore.Delete(runID) {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return
	}
	slog.Info("Deleted run", "run_id", runID)
	w.WriteHeader(http.StatusNoContent)
}
