package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
	"github.com/wyrmforge/combat-tracker/internal/pkg/dice"
)

func participantWithInitiative(id string, initiative int32) entities.Participant {
	return entities.Participant{
		CharacterID: id,
		Name:        id,
		Kind:        entities.KindPlayerCharacter,
		MaxHP:       10,
		CurrentHP:   10,
		ArmorClass:  14,
		Initiative:  &initiative,
	}
}

func TestBuildOrder_SortsByInitiative(t *testing.T) {
	participants := []entities.Participant{
		participantWithInitiative("a", 12),
		participantWithInitiative("b", 18),
		participantWithInitiative("c", 5),
	}

	order := engine.BuildOrder(participants, nil, false, nil)

	require.Len(t, order, 3)
	assert.Equal(t, "b", order[0].ParticipantID)
	assert.Equal(t, "a", order[1].ParticipantID)
	assert.Equal(t, "c", order[2].ParticipantID)
	assert.True(t, order[0].IsActive, "first entry is marked active")
	assert.False(t, order[1].IsActive)
	assert.False(t, order[2].IsActive)
}

func TestBuildOrder_DexterityBreaksTies(t *testing.T) {
	participants := []entities.Participant{
		participantWithInitiative("slow", 15),
		participantWithInitiative("fast", 15),
	}
	scores := engine.DexterityScores{"slow": 8, "fast": 17}

	order := engine.BuildOrder(participants, scores, false, nil)

	require.Len(t, order, 2)
	assert.Equal(t, "fast", order[0].ParticipantID)
	assert.Equal(t, "slow", order[1].ParticipantID)
}

func TestBuildOrder_MissingDexterityDefaultsToTen(t *testing.T) {
	participants := []entities.Participant{participantWithInitiative("a", 12)}

	order := engine.BuildOrder(participants, nil, false, nil)

	require.Len(t, order, 1)
	assert.Equal(t, engine.DefaultDexterity, order[0].Dexterity)
}

func TestBuildOrder_AutoRollUsesRoller(t *testing.T) {
	participants := []entities.Participant{
		participantWithInitiative("a", 1), // innate score must be ignored
		participantWithInitiative("b", 30),
	}
	roller := dice.NewScripted(3, 19)

	order := engine.BuildOrder(participants, nil, true, roller)

	require.Len(t, order, 2)
	assert.Equal(t, "b", order[0].ParticipantID)
	assert.Equal(t, int32(19), order[0].Initiative)
	assert.Equal(t, "a", order[1].ParticipantID)
	assert.Equal(t, int32(3), order[1].Initiative)
}

func TestBuildOrder_NoInnateInitiativeDefaultsToZero(t *testing.T) {
	participants := []entities.Participant{{
		CharacterID: "a",
		Kind:        entities.KindMonster,
		MaxHP:       5,
		CurrentHP:   5,
		ArmorClass:  10,
	}}

	order := engine.BuildOrder(participants, nil, false, nil)

	require.Len(t, order, 1)
	assert.Equal(t, int32(0), order[0].Initiative)
}

func TestBuildOrder_EmptyRoster(t *testing.T) {
	order := engine.BuildOrder(nil, nil, false, nil)
	assert.Empty(t, order)
}

// Sorting must always yield a non-increasing initiative sequence with
// dexterity strictly deciding ties.
func TestSortOrder_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		order := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) entities.InitiativeEntry {
			return entities.InitiativeEntry{
				ParticipantID: rapid.StringMatching(`[a-z]{4}`).Draw(rt, "id"),
				Initiative:    rapid.Int32Range(-10, 30).Draw(rt, "initiative"),
				Dexterity:     rapid.Int32Range(1, 30).Draw(rt, "dexterity"),
			}
		}), 0, 12).Draw(rt, "order")

		engine.SortOrder(order)

		for i := 1; i < len(order); i++ {
			prev, cur := order[i-1], order[i]
			assert.GreaterOrEqual(rt, prev.Initiative, cur.Initiative,
				"initiative sequence must be non-increasing")
			if prev.Initiative == cur.Initiative {
				assert.GreaterOrEqual(rt, prev.Dexterity, cur.Dexterity,
					"ties must be broken by descending dexterity")
			}
		}
	})
}

func TestAdvance_WalksOrderAndWrapsRound(t *testing.T) {
	order := []entities.InitiativeEntry{
		{ParticipantID: "b", Initiative: 18, Dexterity: 10, IsActive: true},
		{ParticipantID: "a", Initiative: 12, Dexterity: 10},
		{ParticipantID: "c", Initiative: 5, Dexterity: 10},
	}

	round, turn := int32(1), 0
	var err error
	for i := 0; i < 3; i++ {
		round, turn, err = engine.Advance(order, round, turn)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), round)
	assert.Equal(t, 0, turn)
	assert.True(t, order[0].IsActive)
	for i := range order {
		assert.False(t, order[i].HasActed, "hasActed resets on round wrap")
	}
}

func TestAdvance_MarksActedAndActive(t *testing.T) {
	order := []entities.InitiativeEntry{
		{ParticipantID: "a", IsActive: true},
		{ParticipantID: "b"},
	}

	round, turn, err := engine.Advance(order, 1, 0)

	require.NoError(t, err)
	assert.Equal(t, int32(1), round)
	assert.Equal(t, 1, turn)
	assert.True(t, order[0].HasActed)
	assert.False(t, order[0].IsActive)
	assert.True(t, order[1].IsActive)
	assert.False(t, order[1].HasActed)
}

func TestAdvance_SingleEntryIncrementsRoundEveryCall(t *testing.T) {
	order := []entities.InitiativeEntry{{ParticipantID: "solo", IsActive: true}}

	round, turn := int32(1), 0
	var err error
	for i := 0; i < 4; i++ {
		round, turn, err = engine.Advance(order, round, turn)
		require.NoError(t, err)
		assert.Equal(t, 0, turn)
	}

	assert.Equal(t, int32(5), round)
}

func TestAdvance_EmptyOrderFails(t *testing.T) {
	round, turn, err := engine.Advance(nil, 3, 1)

	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
	assert.Equal(t, int32(3), round, "failure must not change the round")
	assert.Equal(t, 1, turn, "failure must not change the turn")
}

func TestRetreat_EmptyOrderFails(t *testing.T) {
	_, _, err := engine.Retreat(nil, 1, 0)

	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestRetreat_FloorsRoundAtOne(t *testing.T) {
	order := []entities.InitiativeEntry{
		{ParticipantID: "a", IsActive: true},
		{ParticipantID: "b"},
		{ParticipantID: "c"},
	}

	round, turn, err := engine.Retreat(order, 1, 0)

	require.NoError(t, err)
	assert.Equal(t, int32(1), round, "round floors at 1 instead of going negative")
	assert.Equal(t, 2, turn, "turn wraps to the last entry")
	assert.True(t, order[2].IsActive)
	assert.False(t, order[2].HasActed, "rewound turn can be redone")
}

// Advance followed by Retreat restores the prior round, turn, and hasActed
// flags at any mid-round position.
func TestAdvanceRetreat_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 8).Draw(rt, "orderLen")
		turn := rapid.IntRange(0, n-2).Draw(rt, "turn") // mid-round: no wrap
		round := int32(rapid.IntRange(1, 10).Draw(rt, "round"))

		order := make([]entities.InitiativeEntry, n)
		for i := range order {
			order[i] = entities.InitiativeEntry{
				ParticipantID: string(rune('a' + i)),
				HasActed:      i < turn,
				IsActive:      i == turn,
			}
		}

		before := make([]entities.InitiativeEntry, n)
		copy(before, order)

		newRound, newTurn, err := engine.Advance(order, round, turn)
		require.NoError(rt, err)
		backRound, backTurn, err := engine.Retreat(order, newRound, newTurn)
		require.NoError(rt, err)

		assert.Equal(rt, round, backRound)
		assert.Equal(rt, turn, backTurn)
		assert.Equal(rt, before, order, "order state must round-trip exactly")
	})
}
