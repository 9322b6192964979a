package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/wyrmforge/combat-tracker/internal/pkg/dice"
)

func TestRoller_D20Range(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		r := dice.NewRoller(seed)

		for i := 0; i < 100; i++ {
			v := r.D20()
			assert.GreaterOrEqual(rt, v, 1, "D20 must be at least 1")
			assert.LessOrEqual(rt, v, 20, "D20 must be at most 20")
		}
	})
}

func TestRoller_Deterministic(t *testing.T) {
	a := dice.NewRoller(42)
	b := dice.NewRoller(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.D20(), b.D20(), "same seed must yield same sequence")
	}
}

func TestScripted_CyclesValues(t *testing.T) {
	s := dice.NewScripted(12, 18, 5)

	assert.Equal(t, 12, s.D20())
	assert.Equal(t, 18, s.D20())
	assert.Equal(t, 5, s.D20())
	assert.Equal(t, 12, s.D20(), "scripted roller cycles when exhausted")
}

func TestScripted_EmptyDefaultsToTen(t *testing.T) {
	s := dice.NewScripted()
	assert.Equal(t, 10, s.D20())
}
