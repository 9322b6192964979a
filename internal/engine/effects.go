package engine

import (
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
)

// ApplyDamage deals damage to a participant. Temporary HP absorbs the hit
// first; the remainder comes off current HP, floored at 0. Overkill is not
// an error since death handling belongs to the caller's rules, not this engine.
// Combat does not need to be active.
func ApplyDamage(enc *entities.Encounter, participantID string, amount int32) error {
	if amount < 0 {
		return errors.InvalidArgumentf("damage amount must be non-negative, got %d", amount)
	}
	p, ok := GetParticipant(enc, participantID)
	if !ok {
		return errors.NotFoundf("participant %s not found", participantID)
	}

	absorbed := amount
	if absorbed > p.TempHP {
		absorbed = p.TempHP
	}
	p.TempHP -= absorbed

	p.CurrentHP -= amount - absorbed
	if p.CurrentHP < 0 {
		p.CurrentHP = 0
	}
	return nil
}

// ApplyHealing restores current HP, capped at the participant's maximum.
// Healing never grants temporary HP.
func ApplyHealing(enc *entities.Encounter, participantID string, amount int32) error {
	if amount < 0 {
		return errors.InvalidArgumentf("healing amount must be non-negative, got %d", amount)
	}
	p, ok := GetParticipant(enc, participantID)
	if !ok {
		return errors.NotFoundf("participant %s not found", participantID)
	}

	p.CurrentHP += amount
	if p.CurrentHP > p.MaxHP {
		p.CurrentHP = p.MaxHP
	}
	return nil
}

// AddCondition marks a condition active on the participant. Idempotent: the
// condition list keeps set semantics even though it is stored as a sequence.
func AddCondition(enc *entities.Encounter, participantID, condition string) error {
	p, ok := GetParticipant(enc, participantID)
	if !ok {
		return errors.NotFoundf("participant %s not found", participantID)
	}

	if p.HasCondition(condition) {
		return nil
	}
	p.Conditions = append(p.Conditions, condition)
	return nil
}

// RemoveCondition ensures a condition is absent on the participant. Removing
// a condition that was never present is a successful no-op.
func RemoveCondition(enc *entities.Encounter, participantID, condition string) error {
	p, ok := GetParticipant(enc, participantID)
	if !ok {
		return errors.NotFoundf("participant %s not found", participantID)
	}

	for i, c := range p.Conditions {
		if c == condition {
			p.Conditions = append(p.Conditions[:i], p.Conditions[i+1:]...)
			return nil
		}
	}
	return nil
}
