package screenshots

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Selector resolves which screenshots to analyze under a storage root
type Selector struct {
	root string
}

// NewSelector creates a selector for the given root directory
func NewSelector(root string) *Selector {
	return &Selector{root: root}
}

// Root returns the storage root
func (s *Selector) Root() string {
	return s.root
}

// Resolve returns the current batch. The "latest" pointer wins; without it
// the root is treated as a single unlabeled batch. A batch with no images
// is returned empty, not as an error.
func (s *Selector) Resolve() (DeploymentBatch, error) {
	dir, id, err := s.resolvePointer()
	if err != nil {
		return DeploymentBatch{}, err
	}

	if dir == "" {
		slog.Debug("No latest pointer, using legacy flat layout", "root", s.root)
		images, err := collectImages(s.root)
		if err != nil {
			return DeploymentBatch{}, err
		}
		return DeploymentBatch{Dir: s.root, Legacy: true, ImagePaths: images}, nil
	}

	images, err := collectImages(dir)
	if err != nil {
		return DeploymentBatch{}, err
	}

	batch := DeploymentBatch{ID: id, Dir: dir, ImagePaths: images}
	if capturedAt, seq, ok := ParseBatchName(id); ok {
		batch.CapturedAt = capturedAt
		batch.Sequence = seq
	} else {
		slog.Debug("Batch name carries no timestamp", "batch", id)
	}

	slog.Info("Resolved screenshot batch", "batch", id, "images", len(images))
	return batch, nil
}

// resolvePointer returns the batch folder and its name designated by the
// pointer, or empty strings when there is no pointer
func (s *Selector) resolvePointer() (string, string, error) {
	pointer := filepath.Join(s.root, PointerName)

	info, err := os.Lstat(pointer)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to stat pointer: %w", err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(pointer)
		if err != nil {
			return "", "", fmt.Errorf("failed to read pointer link: %w", err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(s.root, target)
		}
		return filepath.Clean(target), filepath.Base(target), nil

	case info.IsDir():
		return pointer, PointerName, nil

	default:
		data, err := os.ReadFile(pointer)
		if err != nil {
			return "", "", fmt.Errorf("failed to read pointer file: %w", err)
		}
		name := filepath.Base(strings.TrimSpace(string(data)))
		if name == "" || name == "." || name == string(filepath.Separator) {
			slog.Warn("Pointer file is empty, using legacy flat layout", "pointer", pointer)
			return "", "", nil
		}
		return filepath.Join(s.root, name), name, nil
	}
}

// collectImages maps screen name to path for every allowed image directly
// in dir. A missing dir yields an empty map.
func collectImages(dir string) (map[string]string, error) {
	images := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Screenshot directory does not exist", "dir", dir)
		return images, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		images[ScreenName(entry.Name())] = filepath.Join(dir, entry.Name())
	}

	return images, nil
}

// List returns every labeled batch under the root, newest first
func (s *Selector) List() ([]DeploymentBatch, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot root: %w", err)
	}

	var batches []DeploymentBatch
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), BatchPrefix) {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		images, err := collectImages(dir)
		if err != nil {
			slog.Warn("Failed to read batch", "batch", entry.Name(), "err", err)
			continue
		}
		batch := DeploymentBatch{ID: entry.Name(), Dir: dir, ImagePaths: images}
		batch.CapturedAt, batch.Sequence, _ = ParseBatchName(entry.Name())
		batches = append(batches, batch)
	}

	sort.SliceStable(batches, func(i, j int) bool {
		if !batches[i].CapturedAt.Equal(batches[j].CapturedAt) {
			return batches[i].CapturedAt.After(batches[j].CapturedAt)
		}
		if batches[i].Sequence != batches[j].Sequence {
			return batches[i].Sequence > batches[j].Sequence
		}
		return batches[i].ID > batches[j].ID
	})

	return batches, nil
}
