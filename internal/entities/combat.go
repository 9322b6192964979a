package entities

import "time"

// InitiativeEntry is one roster member's position in the turn order
type InitiativeEntry struct {
	ParticipantID string `json:"participant_id"`
	Initiative    int32  `json:"initiative"`
	Dexterity     int32  `json:"dexterity"` // tie-break only
	IsActive      bool   `json:"is_active"`
	HasActed      bool   `json:"has_acted"`
}

// CombatState is the single mutable combat session attached to an encounter.
//
// Invariant: while IsActive is true and the order is non-empty, CurrentTurn
// indexes the order and exactly one entry is active, namely the one at
// CurrentTurn. While inactive, no entry is active and the cursor is
// meaningless until the next start.
type CombatState struct {
	IsActive      bool              `json:"is_active"`
	CurrentRound  int32             `json:"current_round"`
	CurrentTurn   int               `json:"current_turn"`
	Order         []InitiativeEntry `json:"order,omitempty"`
	StartedAt     *time.Time        `json:"started_at,omitempty"`
	PausedAt      *time.Time        `json:"paused_at,omitempty"`
	EndedAt       *time.Time        `json:"ended_at,omitempty"`
	TotalDuration time.Duration     `json:"total_duration"`
}

// ActiveEntry returns the entry at the turn cursor, or nil while combat is
// inactive or the order is empty.
func (c *CombatState) ActiveEntry() *InitiativeEntry {
	if !c.IsActive || len(c.Order) == 0 {
		return nil
	}
	if c.CurrentTurn < 0 || c.CurrentTurn >= len(c.Order) {
		return nil
	}
	return &c.Order[c.CurrentTurn]
}

// FindEntry returns the index of the entry for the given participant, or -1
func (c *CombatState) FindEntry(participantID string) int {
	for i := range c.Order {
		if c.Order[i].ParticipantID == participantID {
			return i
		}
	}
	return -1
}
