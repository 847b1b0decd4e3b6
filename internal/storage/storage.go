package storage

import (
	"sort"
	"sync"

	"github.com/storefront-insights/captain/internal/models"
)

type RunStore struct {
	runs map[string]*models.Run
	mu   sync.RWMutex
}

func New() *RunStore {
	return &RunStore{
		runs: make(map[string]*models.Run),
	}
}

func (s *RunStore) Get(runID string) (*models.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, exists := s.runs[runID]
	return run, exists
}

func (s *RunStore) Set(runID string, run *models.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = run
}

// List returns all runs, newest first
func (s *RunStore) List() []*models.Run {
	s.mu.RLock()
	result := make([]*models.Run, 0, len(s.runs))
	for _, v := range s.runs {
		result = append(result, v)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Delete reports whether the run existed
func (s *RunStore) Delete(runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.runs[runID]
	delete(s.runs, runID)
	return exists
}
