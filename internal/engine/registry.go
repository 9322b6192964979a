// Package engine implements the combat encounter engine: roster management,
// initiative ordering, combat state transitions, effect application, and
// difficulty estimation.
//
// Operations are free functions (or methods on small dependency holders)
// over the Encounter aggregate. None of them block, perform I/O, or lock:
// the engine assumes one writer per encounter and leaves serialization of
// concurrent requests to the host.
package engine

import (
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
)

// AddParticipant appends a participant to the roster. Combat state is
// untouched; if combat is active the caller decides whether to score the
// newcomer via CombatStateMachine.SetInitiative.
func AddParticipant(enc *entities.Encounter, p entities.Participant) {
	p.Normalize()
	enc.Participants = append(enc.Participants, p)
}

// GetParticipant looks up a roster member by character id
func GetParticipant(enc *entities.Encounter, participantID string) (*entities.Participant, bool) {
	for i := range enc.Participants {
		if enc.Participants[i].CharacterID == participantID {
			return &enc.Participants[i], true
		}
	}
	return nil, false
}

// ParticipantUpdate carries the optional fields of a roster update. Nil
// fields are left unchanged; Conditions replaces the whole set when non-nil.
type ParticipantUpdate struct {
	Name             *string
	Kind             *entities.ParticipantKind
	MaxHP            *int32
	CurrentHP        *int32
	TempHP           *int32
	ArmorClass       *int32
	Initiative       *int32
	VisibleToPlayers *bool
	Notes            *string
	Conditions       []string
	Position         *entities.GridPosition
}

// UpdateParticipant merges the provided fields into the roster member and
// re-clamps its stats. Returns NotFound if the participant is not rostered.
func UpdateParticipant(enc *entities.Encounter, participantID string, update ParticipantUpdate) error {
	p, ok := GetParticipant(enc, participantID)
	if !ok {
		return errors.NotFoundf("participant %s not found", participantID)
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Kind != nil {
		p.Kind = *update.Kind
	}
	if update.MaxHP != nil {
		p.MaxHP = *update.MaxHP
	}
	if update.CurrentHP != nil {
		p.CurrentHP = *update.CurrentHP
	}
	if update.TempHP != nil {
		p.TempHP = *update.TempHP
	}
	if update.ArmorClass != nil {
		p.ArmorClass = *update.ArmorClass
	}
	if update.Initiative != nil {
		v := *update.Initiative
		p.Initiative = &v
	}
	if update.VisibleToPlayers != nil {
		p.VisibleToPlayers = *update.VisibleToPlayers
	}
	if update.Notes != nil {
		p.Notes = *update.Notes
	}
	if update.Conditions != nil {
		p.Conditions = update.Conditions
	}
	if update.Position != nil {
		pos := *update.Position
		p.Position = &pos
	}

	p.Normalize()
	return nil
}

// removeFromRoster removes a participant by id, reporting whether it was
// present. Initiative cleanup belongs to CombatStateMachine.RemoveParticipant.
func removeFromRoster(enc *entities.Encounter, participantID string) bool {
	for i := range enc.Participants {
		if enc.Participants[i].CharacterID == participantID {
			enc.Participants = append(enc.Participants[:i], enc.Participants[i+1:]...)
			return true
		}
	}
	return false
}
