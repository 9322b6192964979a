package engine

import "github.com/wyrmforge/combat-tracker/internal/entities"

// Difficulty is a coarse encounter difficulty classification
type Difficulty string

// Difficulty classifications, easiest to hardest
const (
	DifficultyTrivial Difficulty = "trivial"
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyDeadly  Difficulty = "deadly"
)

// EstimateDifficulty classifies the encounter from its roster composition:
// the ratio of opposing forces (NPCs and monsters) to player characters,
// with the player count floored at 1. Recomputed on demand, never cached.
func EstimateDifficulty(participants []entities.Participant) Difficulty {
	var players, opponents int
	for i := range participants {
		if participants[i].IsPlayer() {
			players++
		} else {
			opponents++
		}
	}

	if players < 1 {
		players = 1
	}
	ratio := float64(opponents) / float64(players)

	switch {
	case ratio <= 0.5:
		return DifficultyTrivial
	case ratio <= 1:
		return DifficultyEasy
	case ratio <= 1.5:
		return DifficultyMedium
	case ratio <= 2:
		return DifficultyHard
	default:
		return DifficultyDeadly
	}
}
