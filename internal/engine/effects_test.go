package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
	"github.com/wyrmforge/combat-tracker/internal/testutils/builders"
)

func encounterWith(p entities.Participant) *entities.Encounter {
	return builders.NewEncounterBuilder().WithParticipant(p).Build()
}

func TestApplyDamage(t *testing.T) {
	testCases := []struct {
		name        string
		maxHP       int32
		currentHP   int32
		tempHP      int32
		amount      int32
		wantCurrent int32
		wantTemp    int32
	}{
		{
			name:  "plain damage",
			maxHP: 20, currentHP: 20, tempHP: 0, amount: 7,
			wantCurrent: 13, wantTemp: 0,
		},
		{
			name:  "overkill floors at zero",
			maxHP: 10, currentHP: 10, tempHP: 0, amount: 15,
			wantCurrent: 0, wantTemp: 0,
		},
		{
			name:  "temporary HP absorbs first",
			maxHP: 20, currentHP: 10, tempHP: 5, amount: 8,
			wantCurrent: 7, wantTemp: 0,
		},
		{
			name:  "temporary HP absorbs fully",
			maxHP: 20, currentHP: 10, tempHP: 5, amount: 3,
			wantCurrent: 10, wantTemp: 2,
		},
		{
			name:  "zero damage is a no-op",
			maxHP: 20, currentHP: 10, tempHP: 5, amount: 0,
			wantCurrent: 10, wantTemp: 5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enc := encounterWith(entities.Participant{
				CharacterID: "target",
				Kind:        entities.KindPlayerCharacter,
				MaxHP:       tc.maxHP,
				CurrentHP:   tc.currentHP,
				TempHP:      tc.tempHP,
				ArmorClass:  14,
			})

			err := engine.ApplyDamage(enc, "target", tc.amount)

			require.NoError(t, err)
			p, ok := engine.GetParticipant(enc, "target")
			require.True(t, ok)
			assert.Equal(t, tc.wantCurrent, p.CurrentHP)
			assert.Equal(t, tc.wantTemp, p.TempHP)
		})
	}
}

func TestApplyDamage_NegativeAmount(t *testing.T) {
	enc := encounterWith(entities.Participant{CharacterID: "target", MaxHP: 10, CurrentHP: 10})

	err := engine.ApplyDamage(enc, "target", -5)

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	p, _ := engine.GetParticipant(enc, "target")
	assert.Equal(t, int32(10), p.CurrentHP, "failed damage must not mutate")
}

func TestApplyDamage_MissingParticipant(t *testing.T) {
	enc := builders.NewEncounterBuilder().Build()

	err := engine.ApplyDamage(enc, "nobody", 5)

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestApplyHealing(t *testing.T) {
	testCases := []struct {
		name        string
		currentHP   int32
		tempHP      int32
		amount      int32
		wantCurrent int32
	}{
		{"partial heal", 5, 0, 4, 9},
		{"heal caps at maximum", 15, 0, 50, 20},
		{"heal at full is a no-op", 20, 0, 5, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enc := encounterWith(entities.Participant{
				CharacterID: "target",
				MaxHP:       20,
				CurrentHP:   tc.currentHP,
				TempHP:      tc.tempHP,
			})

			err := engine.ApplyHealing(enc, "target", tc.amount)

			require.NoError(t, err)
			p, _ := engine.GetParticipant(enc, "target")
			assert.Equal(t, tc.wantCurrent, p.CurrentHP)
			assert.Equal(t, tc.tempHP, p.TempHP, "healing never restores temporary HP")
		})
	}
}

func TestApplyHealing_NegativeAmount(t *testing.T) {
	enc := encounterWith(entities.Participant{CharacterID: "target", MaxHP: 10, CurrentHP: 5})

	err := engine.ApplyHealing(enc, "target", -1)

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestApplyHealing_MissingParticipant(t *testing.T) {
	enc := builders.NewEncounterBuilder().Build()

	err := engine.ApplyHealing(enc, "nobody", 5)

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestAddCondition_Idempotent(t *testing.T) {
	enc := encounterWith(entities.Participant{CharacterID: "target", MaxHP: 10, CurrentHP: 10})

	require.NoError(t, engine.AddCondition(enc, "target", "poisoned"))
	require.NoError(t, engine.AddCondition(enc, "target", "poisoned"))
	require.NoError(t, engine.AddCondition(enc, "target", "prone"))

	p, _ := engine.GetParticipant(enc, "target")
	assert.Equal(t, []string{"poisoned", "prone"}, p.Conditions, "no duplicate entries")
}

func TestRemoveCondition_EnsureAbsent(t *testing.T) {
	enc := encounterWith(entities.Participant{
		CharacterID: "target",
		MaxHP:       10, CurrentHP: 10,
		Conditions: []string{"poisoned", "prone"},
	})

	require.NoError(t, engine.RemoveCondition(enc, "target", "poisoned"))
	require.NoError(t, engine.RemoveCondition(enc, "target", "stunned"), "removing an absent condition succeeds")

	p, _ := engine.GetParticipant(enc, "target")
	assert.Equal(t, []string{"prone"}, p.Conditions)
}

func TestConditions_MissingParticipant(t *testing.T) {
	enc := builders.NewEncounterBuilder().Build()

	assert.True(t, errors.IsNotFound(engine.AddCondition(enc, "nobody", "prone")))
	assert.True(t, errors.IsNotFound(engine.RemoveCondition(enc, "nobody", "prone")))
}

// Any sequence of damage and healing keeps 0 ≤ current ≤ max and temp ≥ 0.
func TestEffects_HPInvariant_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.Int32Range(1, 100).Draw(rt, "max")
		enc := encounterWith(entities.Participant{
			CharacterID: "target",
			MaxHP:       maxHP,
			CurrentHP:   rapid.Int32Range(0, maxHP).Draw(rt, "current"),
			TempHP:      rapid.Int32Range(0, 30).Draw(rt, "temp"),
		})

		ops := rapid.SliceOfN(rapid.Int32Range(-50, 50), 1, 30).Draw(rt, "ops")
		for _, op := range ops {
			if op >= 0 {
				require.NoError(rt, engine.ApplyDamage(enc, "target", op))
			} else {
				require.NoError(rt, engine.ApplyHealing(enc, "target", -op))
			}

			p, ok := engine.GetParticipant(enc, "target")
			require.True(rt, ok)
			assert.GreaterOrEqual(rt, p.CurrentHP, int32(0))
			assert.LessOrEqual(rt, p.CurrentHP, p.MaxHP)
			assert.GreaterOrEqual(rt, p.TempHP, int32(0))
		}
	})
}
