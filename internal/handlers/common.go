package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storefront-insights/captain/internal/models"
	"github.com/storefront-insights/captain/internal/storage"
	"github.com/storefront-insights/captain/internal/vision"
)

// maxUploadSize caps a single screenshot upload
const maxUploadSize = 10 * 1024 * 1024

type Handler struct {
	runStore *storage.RunStore
	analyzer *vision.Analyzer
}

func New(analyzer *vision.Analyzer) *Handler {
	return &Handler{
		runStore: storage.New(),
		analyzer: analyzer,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "code", code)
	http.Error(w, message, code)
}

func (h *Handler) getRunOrError(w http.ResponseWriter, runID string) (*models.Run, bool) {
	run, exists := h.runStore.Get(runID)
	if !exists {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}

// providerInfo names the provider and model behind the analyzer
func (h *Handler) providerInfo() (string, string) {
	if c, ok := h.analyzer.Capability().(vision.Enabled); ok {
		return c.Name, c.Model
	}
	return "", ""
}
