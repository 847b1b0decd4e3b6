package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-insights/captain/internal/models"
	"github.com/storefront-insights/captain/internal/screenshots"
	"github.com/storefront-insights/captain/internal/vision"
)

// HandleAnalyze scores one uploaded screenshot and stores the run
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !h.analyzer.Enabled() {
		h.writeError(w, vision.LimitedModeMessage, http.StatusServiceUnavailable)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !screenshots.IsImage(header.Filename) {
		h.writeError(w, "Unsupported image type: "+header.Filename, http.StatusBadRequest)
		return
	}

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if len(fileData) >= maxUploadSize {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	screen := strings.TrimSpace(r.FormValue("screen"))
	if screen == "" {
		screen = screenshots.ScreenName(header.Filename)
	}

	analysis := h.analyzer.AnalyzeImage(r.Context(), screen, fileData, screenshots.MIMEType(header.Filename))
	provider, model := h.providerInfo()

	run := &models.Run{
		ID:        uuid.New().String(),
		Screen:    screen,
		Filename:  header.Filename,
		Provider:  provider,
		Model:     model,
		CreatedAt: time.Now(),
		Analysis:  analysis,
	}
	h.runStore.Set(run.ID, run)

	slog.Info("Analyzed uploaded screen", "run_id", run.ID, "screen", screen, "status", analysis.Status, "score", analysis.OverallScore)

	h.writeJSON(w, run)
}
