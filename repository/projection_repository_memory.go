package repository

import (
	"context"
	"sync"

	"launchpilot/domain"
)

// ProjectionRepositoryMemory is an in-memory implementation of ProjectionRepository.
type ProjectionRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Projection
}

// NewProjectionRepositoryMemory creates a new in-memory projection repository.
func NewProjectionRepositoryMemory() *ProjectionRepositoryMemory {
	return &ProjectionRepositoryMemory{
		data: make(map[string]domain.Projection),
	}
}

// Save stores the projection in memory, replacing any previous one with the same ID.
func (r *ProjectionRepositoryMemory) Save(_ context.Context, projection domain.Projection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[projection.ID] = projection
	return nil
}

func (r *ProjectionRepositoryMemory) FindByID(_ context.Context, id string) (domain.Projection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	projection, ok := r.data[id]
	if !ok {
		return domain.Projection{}, ErrNotFound
	}
	return projection, nil
}
