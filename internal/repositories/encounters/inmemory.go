package encounters

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. Useful
// for tests and the demo CLI; production deployments use the Redis
// repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Encounter
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.Encounter),
	}
}

// Create stores a new encounter
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Encounter.ID]; exists {
		return nil, errors.AlreadyExistsf("encounter with ID %s already exists", input.Encounter.ID)
	}

	stored, err := cloneEncounter(input.Encounter)
	if err != nil {
		return nil, err
	}
	r.store[input.Encounter.ID] = stored

	return &CreateOutput{Encounter: input.Encounter}, nil
}

// Get retrieves an encounter by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("encounter with ID %s not found", input.ID)
	}

	enc, err := cloneEncounter(stored)
	if err != nil {
		return nil, err
	}
	enc.Normalize()

	return &GetOutput{Encounter: enc}, nil
}

// Update overwrites an existing encounter, enforcing the version token
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.store[input.Encounter.ID]
	if !exists {
		return nil, errors.NotFoundf("encounter with ID %s not found", input.Encounter.ID)
	}

	if stored.Version != input.ExpectedVersion {
		return nil, errors.Abortedf("encounter %s was modified concurrently: stored version %d, expected %d",
			input.Encounter.ID, stored.Version, input.ExpectedVersion)
	}

	updated, err := cloneEncounter(input.Encounter)
	if err != nil {
		return nil, err
	}
	r.store[input.Encounter.ID] = updated

	return &UpdateOutput{Encounter: input.Encounter}, nil
}

// Delete removes an encounter by ID
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("encounter with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// ListByOwnerID retrieves all encounters created by an owner
func (r *InMemoryRepository) ListByOwnerID(_ context.Context, input ListByOwnerIDInput) (*ListByOwnerIDOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Encounter
	for _, stored := range r.store {
		if stored.OwnerID != input.OwnerID {
			continue
		}
		enc, err := cloneEncounter(stored)
		if err != nil {
			return nil, err
		}
		enc.Normalize()
		out = append(out, enc)
	}

	return &ListByOwnerIDOutput{Encounters: out}, nil
}

// cloneEncounter deep-copies an encounter so callers never share slices with
// the store.
func cloneEncounter(enc *entities.Encounter) (*entities.Encounter, error) {
	data, err := json.Marshal(enc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clone encounter")
	}
	var out entities.Encounter
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to clone encounter")
	}
	return &out, nil
}
