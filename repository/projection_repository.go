package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"launchpilot/domain"
)

var ErrNotFound = errors.New("projection not found")

type ProjectionRepository interface {
	Save(ctx context.Context, projection domain.Projection) error
	FindByID(ctx context.Context, id string) (domain.Projection, error)
}

// HashInputs returns a stable hex digest of the inputs' JSON encoding.
// Struct field order fixes the encoding, so equal inputs hash equally.
func HashInputs(inputs domain.ProjectionInputs) (string, error) {
	raw, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inputs: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(raw)), nil
}
