package screenshots

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CleanupResult summarises a retention pass
type CleanupResult struct {
	Removed []string
	Failed  []string
}

// Cleanup keeps only the current batch: every other deployment-* folder in
// the root is deleted. The pointer and the current batch are never touched.
// Failures are logged and reported in the result, never returned.
func (s *Selector) Cleanup(current DeploymentBatch) CleanupResult {
	var result CleanupResult

	if current.Legacy || current.Dir == "" {
		slog.Debug("Skipping batch cleanup for legacy layout", "root", s.root)
		return result
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		slog.Warn("Failed to list screenshot root for cleanup", "root", s.root, "err", err)
		return result
	}

	keep := absPath(current.Dir)

	for _, entry := range entries {
		name := entry.Name()
		if name == PointerName || !entry.IsDir() || !strings.HasPrefix(name, BatchPrefix) {
			continue
		}

		path := filepath.Join(s.root, name)
		if name == current.ID || absPath(path) == keep {
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			slog.Warn("Failed to remove old batch", "batch", name, "err", err)
			result.Failed = append(result.Failed, name)
			continue
		}

		slog.Info("Removed old screenshot batch", "batch", name)
		result.Removed = append(result.Removed, name)
	}

	return result
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
