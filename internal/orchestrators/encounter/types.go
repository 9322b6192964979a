package encounter

import (
	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
)

// Encounter lifecycle types

// CreateEncounterInput defines the request for creating an encounter
type CreateEncounterInput struct {
	OwnerID     string
	Name        string
	Description string // Optional
	Tags        []string
	Settings    *entities.EncounterSettings // Optional, zero settings if nil
}

// CreateEncounterOutput defines the response for creating an encounter
type CreateEncounterOutput struct {
	Encounter *entities.Encounter
}

// GetEncounterInput defines the request for fetching an encounter
type GetEncounterInput struct {
	EncounterID string
}

// GetEncounterOutput defines the response for fetching an encounter
type GetEncounterOutput struct {
	Encounter *entities.Encounter
}

// ListEncountersInput defines the request for listing an owner's encounters
type ListEncountersInput struct {
	OwnerID string
}

// ListEncountersOutput defines the response for listing encounters
type ListEncountersOutput struct {
	Encounters []*entities.Encounter
}

// DeleteEncounterInput defines the request for deleting an encounter
type DeleteEncounterInput struct {
	EncounterID string
}

// DeleteEncounterOutput defines the response for deleting an encounter
type DeleteEncounterOutput struct{}

// Roster types

// AddParticipantInput defines the request for adding a participant
type AddParticipantInput struct {
	EncounterID string
	Participant entities.Participant
}

// AddParticipantOutput defines the response for adding a participant
type AddParticipantOutput struct {
	Encounter *entities.Encounter
}

// UpdateParticipantInput defines the request for updating a participant.
// Only non-nil fields of Update are applied.
type UpdateParticipantInput struct {
	EncounterID   string
	ParticipantID string
	Update        engine.ParticipantUpdate
}

// UpdateParticipantOutput defines the response for updating a participant
type UpdateParticipantOutput struct {
	Encounter   *entities.Encounter
	Participant *entities.Participant
}

// RemoveParticipantInput defines the request for removing a participant
type RemoveParticipantInput struct {
	EncounterID   string
	ParticipantID string
}

// RemoveParticipantOutput defines the response for removing a participant
type RemoveParticipantOutput struct {
	Encounter *entities.Encounter
}

// Combat lifecycle types

// StartCombatInput defines the request for starting combat
type StartCombatInput struct {
	EncounterID string
	// AutoRoll draws a d20 per participant instead of using innate scores
	AutoRoll bool
	// Dexterity supplies tie-break scores keyed by participant ID
	Dexterity engine.DexterityScores
}

// StartCombatOutput defines the response for starting combat
type StartCombatOutput struct {
	Encounter *entities.Encounter
}

// EndCombatInput defines the request for ending combat
type EndCombatInput struct {
	EncounterID string
}

// EndCombatOutput defines the response for ending combat
type EndCombatOutput struct {
	Encounter *entities.Encounter
}

// NextTurnInput defines the request for advancing the turn
type NextTurnInput struct {
	EncounterID string
}

// NextTurnOutput defines the response for advancing the turn
type NextTurnOutput struct {
	Encounter *entities.Encounter
	// ActiveParticipantID identifies whose turn it now is
	ActiveParticipantID string
	Round               int32
}

// PreviousTurnInput defines the request for rewinding the turn
type PreviousTurnInput struct {
	EncounterID string
}

// PreviousTurnOutput defines the response for rewinding the turn
type PreviousTurnOutput struct {
	Encounter           *entities.Encounter
	ActiveParticipantID string
	Round               int32
}

// SetInitiativeInput defines the request for overriding an initiative score
type SetInitiativeInput struct {
	EncounterID   string
	ParticipantID string
	Initiative    int32
	Dexterity     int32
}

// SetInitiativeOutput defines the response for overriding an initiative score
type SetInitiativeOutput struct {
	Encounter *entities.Encounter
}

// Effect types

// ApplyDamageInput defines the request for dealing damage
type ApplyDamageInput struct {
	EncounterID   string
	ParticipantID string
	Amount        int32
}

// ApplyDamageOutput defines the response for dealing damage
type ApplyDamageOutput struct {
	Encounter   *entities.Encounter
	Participant *entities.Participant
}

// ApplyHealingInput defines the request for healing
type ApplyHealingInput struct {
	EncounterID   string
	ParticipantID string
	Amount        int32
}

// ApplyHealingOutput defines the response for healing
type ApplyHealingOutput struct {
	Encounter   *entities.Encounter
	Participant *entities.Participant
}

// AddConditionInput defines the request for adding a condition
type AddConditionInput struct {
	EncounterID   string
	ParticipantID string
	Condition     string
}

// AddConditionOutput defines the response for adding a condition
type AddConditionOutput struct {
	Encounter   *entities.Encounter
	Participant *entities.Participant
}

// RemoveConditionInput defines the request for removing a condition
type RemoveConditionInput struct {
	EncounterID   string
	ParticipantID string
	Condition     string
}

// RemoveConditionOutput defines the response for removing a condition
type RemoveConditionOutput struct {
	Encounter   *entities.Encounter
	Participant *entities.Participant
}

// Difficulty types

// EstimateDifficultyInput defines the request for estimating difficulty
type EstimateDifficultyInput struct {
	EncounterID string
}

// EstimateDifficultyOutput defines the response for estimating difficulty
type EstimateDifficultyOutput struct {
	Difficulty engine.Difficulty
}
