package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
	"github.com/wyrmforge/combat-tracker/internal/testutils/builders"
)

func TestAddParticipant_NormalizesOnEntry(t *testing.T) {
	enc := builders.NewEncounterBuilder().Build()

	engine.AddParticipant(enc, entities.Participant{
		CharacterID: "gob-1",
		Name:        "Goblin",
		Kind:        entities.KindMonster,
		MaxHP:       7,
		CurrentHP:   12, // above max, must clamp
		ArmorClass:  50, // above cap, must clamp
	})

	require.Len(t, enc.Participants, 1)
	p := enc.Participants[0]
	assert.Equal(t, int32(7), p.CurrentHP)
	assert.Equal(t, int32(entities.MaxArmorClass), p.ArmorClass)
}

func TestAddParticipant_DoesNotTouchCombat(t *testing.T) {
	enc := builders.NewEncounterBuilder().
		WithPlayer("alice", "Alice", 20, 12).
		Build()
	enc.Combat = entities.CombatState{
		IsActive:     true,
		CurrentRound: 2,
		CurrentTurn:  0,
		Order:        []entities.InitiativeEntry{{ParticipantID: "alice", IsActive: true}},
	}

	engine.AddParticipant(enc, entities.Participant{
		CharacterID: "gob-1", Kind: entities.KindMonster, MaxHP: 7, CurrentHP: 7, ArmorClass: 13,
	})

	assert.Len(t, enc.Combat.Order, 1, "newcomers get no initiative entry until re-scored")
	assert.Equal(t, 0, enc.Combat.CurrentTurn)
}

func TestGetParticipant(t *testing.T) {
	enc := builders.NewEncounterBuilder().
		WithPlayer("alice", "Alice", 20, 12).
		Build()

	p, ok := engine.GetParticipant(enc, "alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", p.Name)

	_, ok = engine.GetParticipant(enc, "nobody")
	assert.False(t, ok)
}

func TestUpdateParticipant_MergesFields(t *testing.T) {
	enc := builders.NewEncounterBuilder().
		WithPlayer("alice", "Alice", 20, 12).
		Build()

	name := "Alice the Bold"
	notes := "concentrating on bless"
	hp := int32(35)
	err := engine.UpdateParticipant(enc, "alice", engine.ParticipantUpdate{
		Name:  &name,
		Notes: &notes,
		MaxHP: &hp,
	})

	require.NoError(t, err)
	p, _ := engine.GetParticipant(enc, "alice")
	assert.Equal(t, "Alice the Bold", p.Name)
	assert.Equal(t, "concentrating on bless", p.Notes)
	assert.Equal(t, int32(35), p.MaxHP)
	assert.Equal(t, int32(20), p.CurrentHP, "unset fields stay as they were")
	assert.Equal(t, entities.KindPlayerCharacter, p.Kind)
}

func TestUpdateParticipant_ClampsAfterMerge(t *testing.T) {
	enc := builders.NewEncounterBuilder().
		WithPlayer("alice", "Alice", 20, 12).
		Build()

	// Shrinking max HP below current must pull current down with it.
	hp := int32(8)
	err := engine.UpdateParticipant(enc, "alice", engine.ParticipantUpdate{MaxHP: &hp})

	require.NoError(t, err)
	p, _ := engine.GetParticipant(enc, "alice")
	assert.Equal(t, int32(8), p.MaxHP)
	assert.Equal(t, int32(8), p.CurrentHP)
}

func TestUpdateParticipant_NotFound(t *testing.T) {
	enc := builders.NewEncounterBuilder().Build()

	err := engine.UpdateParticipant(enc, "nobody", engine.ParticipantUpdate{})

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdateParticipant_ReplacesConditionsAndPosition(t *testing.T) {
	enc := builders.NewEncounterBuilder().
		WithPlayer("alice", "Alice", 20, 12).
		Build()

	err := engine.UpdateParticipant(enc, "alice", engine.ParticipantUpdate{
		Conditions: []string{"prone"},
		Position:   &entities.GridPosition{X: 3, Y: 4},
	})

	require.NoError(t, err)
	p, _ := engine.GetParticipant(enc, "alice")
	assert.Equal(t, []string{"prone"}, p.Conditions)
	assert.Equal(t, &entities.GridPosition{X: 3, Y: 4}, p.Position)
}
