// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/wyrmforge/combat-tracker/internal/entities"
)

// EncounterBuilder provides a fluent interface for building test Encounter
// instances
type EncounterBuilder struct {
	enc *entities.Encounter
}

// NewEncounterBuilder creates a new builder with minimal defaults
func NewEncounterBuilder() *EncounterBuilder {
	now := time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC)
	return &EncounterBuilder{
		enc: &entities.Encounter{
			ID:        "enc-test-123",
			OwnerID:   "user-test-123",
			Name:      "Goblin Ambush",
			Status:    entities.StatusDraft,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the encounter ID
func (b *EncounterBuilder) WithID(id string) *EncounterBuilder {
	b.enc.ID = id
	return b
}

// WithOwnerID sets the owner ID
func (b *EncounterBuilder) WithOwnerID(ownerID string) *EncounterBuilder {
	b.enc.OwnerID = ownerID
	return b
}

// WithName sets the encounter name
func (b *EncounterBuilder) WithName(name string) *EncounterBuilder {
	b.enc.Name = name
	return b
}

// WithStatus sets the encounter status
func (b *EncounterBuilder) WithStatus(status entities.EncounterStatus) *EncounterBuilder {
	b.enc.Status = status
	return b
}

// WithVersion sets the version counter
func (b *EncounterBuilder) WithVersion(version int64) *EncounterBuilder {
	b.enc.Version = version
	return b
}

// WithAutoRoll sets the auto-roll-initiative setting
func (b *EncounterBuilder) WithAutoRoll(autoRoll bool) *EncounterBuilder {
	b.enc.Settings.AutoRollInitiative = autoRoll
	return b
}

// WithParticipant appends a participant to the roster
func (b *EncounterBuilder) WithParticipant(p entities.Participant) *EncounterBuilder {
	b.enc.Participants = append(b.enc.Participants, p)
	return b
}

// WithPlayer appends a player character with the given innate initiative
func (b *EncounterBuilder) WithPlayer(id, name string, hp, initiative int32) *EncounterBuilder {
	return b.WithParticipant(entities.Participant{
		CharacterID:      id,
		Name:             name,
		Kind:             entities.KindPlayerCharacter,
		MaxHP:            hp,
		CurrentHP:        hp,
		ArmorClass:       14,
		Initiative:       &initiative,
		VisibleToPlayers: true,
	})
}

// WithMonster appends a monster with the given innate initiative
func (b *EncounterBuilder) WithMonster(id, name string, hp, initiative int32) *EncounterBuilder {
	return b.WithParticipant(entities.Participant{
		CharacterID: id,
		Name:        name,
		Kind:        entities.KindMonster,
		MaxHP:       hp,
		CurrentHP:   hp,
		ArmorClass:  13,
		Initiative:  &initiative,
	})
}

// Build returns the built encounter
func (b *EncounterBuilder) Build() *entities.Encounter {
	return b.enc
}
