package engine

import (
	"sort"

	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
	"github.com/wyrmforge/combat-tracker/internal/pkg/dice"
)

// DefaultDexterity is the tie-break score used when the caller supplies no
// dexterity for a participant.
const DefaultDexterity int32 = 10

// DexterityScores maps participant ids to tie-break dexterity. The engine
// never resolves dexterity itself; the character data source does, and the
// caller passes the result in. Missing entries fall back to DefaultDexterity.
type DexterityScores map[string]int32

// BuildOrder constructs a fresh initiative order for the roster. With
// autoRoll set, each participant's score is a d20 from the roller; otherwise
// the participant's stored innate initiative is used, defaulting to 0.
// The result is sorted (descending initiative, descending dexterity on ties,
// stable otherwise) and the first entry, if any, is marked active.
//
// roller must be non-nil when autoRoll is set.
func BuildOrder(participants []entities.Participant, scores DexterityScores, autoRoll bool, roller dice.Roller) []entities.InitiativeEntry {
	order := make([]entities.InitiativeEntry, 0, len(participants))
	for i := range participants {
		p := &participants[i]

		var initiative int32
		if autoRoll {
			initiative = int32(roller.D20())
		} else if p.Initiative != nil {
			initiative = *p.Initiative
		}

		dexterity := DefaultDexterity
		if score, ok := scores[p.CharacterID]; ok {
			dexterity = score
		}

		order = append(order, entities.InitiativeEntry{
			ParticipantID: p.CharacterID,
			Initiative:    clamp32(initiative, entities.MinInitiative, entities.MaxInitiative),
			Dexterity:     clamp32(dexterity, entities.MinDexterity, entities.MaxDexterity),
		})
	}

	SortOrder(order)
	if len(order) > 0 {
		order[0].IsActive = true
	}
	return order
}

// SortOrder sorts the order in place: descending initiative, ties broken by
// descending dexterity, stable otherwise. After a re-score the caller must
// recompute the turn cursor from the previously active entry.
func SortOrder(order []entities.InitiativeEntry) {
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Initiative != order[j].Initiative {
			return order[i].Initiative > order[j].Initiative
		}
		return order[i].Dexterity > order[j].Dexterity
	})
}

// Advance moves the turn cursor forward: the current entry is marked acted
// and inactive, the cursor increments, wrapping to 0 and incrementing the
// round (with every hasActed flag reset) at the end of the order. The new
// current entry becomes active. Returns the updated round and turn.
//
// Fails without mutation on an empty order or an out-of-range cursor.
func Advance(order []entities.InitiativeEntry, round int32, turn int) (int32, int, error) {
	if len(order) == 0 {
		return round, turn, errors.FailedPrecondition("initiative order is empty")
	}
	if turn < 0 || turn >= len(order) {
		return round, turn, errors.Internalf("turn cursor %d outside order of length %d", turn, len(order))
	}

	order[turn].HasActed = true
	order[turn].IsActive = false

	turn++
	if turn >= len(order) {
		turn = 0
		round++
		for i := range order {
			order[i].HasActed = false
		}
	}

	order[turn].IsActive = true
	return round, turn, nil
}

// Retreat is the inverse of Advance: the cursor decrements, wrapping to the
// last entry and decrementing the round (floored at 1) on underflow. The new
// current entry becomes active with hasActed cleared so the rewound turn can
// be redone.
//
// Fails without mutation on an empty order or an out-of-range cursor.
func Retreat(order []entities.InitiativeEntry, round int32, turn int) (int32, int, error) {
	if len(order) == 0 {
		return round, turn, errors.FailedPrecondition("initiative order is empty")
	}
	if turn < 0 || turn >= len(order) {
		return round, turn, errors.Internalf("turn cursor %d outside order of length %d", turn, len(order))
	}

	order[turn].IsActive = false

	turn--
	if turn < 0 {
		turn = len(order) - 1
		round--
		if round < 1 {
			round = 1
		}
	}

	order[turn].IsActive = true
	order[turn].HasActed = false
	return round, turn, nil
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
