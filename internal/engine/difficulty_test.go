package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
)

func roster(players, monsters int) []entities.Participant {
	var out []entities.Participant
	for i := 0; i < players; i++ {
		out = append(out, entities.Participant{Kind: entities.KindPlayerCharacter})
	}
	for i := 0; i < monsters; i++ {
		out = append(out, entities.Participant{Kind: entities.KindMonster})
	}
	return out
}

func TestEstimateDifficulty(t *testing.T) {
	testCases := []struct {
		name     string
		players  int
		monsters int
		want     engine.Difficulty
	}{
		{"no opposition", 4, 0, engine.DifficultyTrivial},
		{"half ratio", 4, 2, engine.DifficultyTrivial},
		{"even match", 4, 4, engine.DifficultyEasy},
		{"three to two", 4, 6, engine.DifficultyMedium},
		{"two to one", 4, 8, engine.DifficultyHard},
		{"outnumbered", 4, 9, engine.DifficultyDeadly},
		{"empty roster", 0, 0, engine.DifficultyTrivial},
		{"no players floors divisor at one", 0, 3, engine.DifficultyDeadly},
		{"single player single monster", 1, 1, engine.DifficultyEasy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.EstimateDifficulty(roster(tc.players, tc.monsters))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEstimateDifficulty_NPCsCountAsOpposition(t *testing.T) {
	participants := []entities.Participant{
		{Kind: entities.KindPlayerCharacter},
		{Kind: entities.KindNonPlayerCharacter},
		{Kind: entities.KindMonster},
	}

	assert.Equal(t, engine.DifficultyHard, engine.EstimateDifficulty(participants))
}
