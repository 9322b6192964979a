// Package encounters provides the interface for encounter persistence
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/wyrmforge/combat-tracker/internal/repositories/encounters Repository

import (
	"context"

	"github.com/wyrmforge/combat-tracker/internal/entities"
)

// Repository defines the interface for encounter persistence. The stored
// version counter is the optimistic-lock token: the engine increments it on
// every mutation and the repository enforces it on Update.
type Repository interface {
	// Create stores a new encounter
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an encounter with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an encounter by ID
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if the encounter doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update overwrites an existing encounter if the stored version still
	// matches ExpectedVersion
	// Returns errors.NotFound if the encounter doesn't exist
	// Returns errors.Aborted if the stored version no longer matches
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an encounter by ID
	// Returns errors.NotFound if the encounter doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwnerID retrieves all encounters created by an owner
	// Returns errors.InvalidArgument for empty/invalid owner IDs
	// Returns errors.Internal for storage failures
	ListByOwnerID(ctx context.Context, input ListByOwnerIDInput) (*ListByOwnerIDOutput, error)
}

// CreateInput defines the input for creating an encounter
type CreateInput struct {
	Encounter *entities.Encounter
}

// CreateOutput defines the output for creating an encounter
type CreateOutput struct {
	Encounter *entities.Encounter
}

// GetInput defines the input for getting an encounter
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an encounter
type GetOutput struct {
	Encounter *entities.Encounter
}

// UpdateInput defines the input for updating an encounter. ExpectedVersion
// is the version the caller loaded before mutating.
type UpdateInput struct {
	Encounter       *entities.Encounter
	ExpectedVersion int64
}

// UpdateOutput defines the output for updating an encounter
type UpdateOutput struct {
	Encounter *entities.Encounter
}

// DeleteInput defines the input for deleting an encounter
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an encounter
type DeleteOutput struct {
	// Empty for now, can be extended later
}

// ListByOwnerIDInput defines the input for listing encounters by owner
type ListByOwnerIDInput struct {
	OwnerID string
}

// ListByOwnerIDOutput defines the output for listing encounters by owner
type ListByOwnerIDOutput struct {
	Encounters []*entities.Encounter
}
