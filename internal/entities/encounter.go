package entities

import "time"

// EncounterStatus tracks the encounter lifecycle
type EncounterStatus string

// Encounter statuses
const (
	StatusDraft     EncounterStatus = "draft"
	StatusActive    EncounterStatus = "active"
	StatusCompleted EncounterStatus = "completed"
	StatusArchived  EncounterStatus = "archived"
)

// EncounterSettings holds per-encounter toggles
type EncounterSettings struct {
	GridEnabled        bool `json:"grid_enabled"`
	LairActions        bool `json:"lair_actions"`
	AutoRollInitiative bool `json:"auto_roll_initiative"`
}

// Encounter is the aggregate root: roster, settings, and the one combat
// session. Mutation is owner-exclusive; read access may be shared. Version
// increments on every persisted mutation and serves as the optimistic-lock
// token for the storage layer; the engine only increments it, never checks.
type Encounter struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"owner_id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Participants []Participant     `json:"participants,omitempty"`
	Settings     EncounterSettings `json:"settings"`
	Combat       CombatState       `json:"combat"`
	Status       EncounterStatus   `json:"status"`
	SharedRead   bool              `json:"shared_read"`
	Version      int64             `json:"version"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Normalize repairs the aggregate after load: clamps every participant's
// stats, entry scores, and keeps the turn cursor inside the order. Loading
// never rejects a document; it clamps.
func (e *Encounter) Normalize() {
	if e.Status == "" {
		e.Status = StatusDraft
	}
	for i := range e.Participants {
		e.Participants[i].Normalize()
	}
	for i := range e.Combat.Order {
		entry := &e.Combat.Order[i]
		entry.Initiative = clampInt32(entry.Initiative, MinInitiative, MaxInitiative)
		entry.Dexterity = clampInt32(entry.Dexterity, MinDexterity, MaxDexterity)
	}
	if e.Combat.IsActive {
		if e.Combat.CurrentRound < 1 {
			e.Combat.CurrentRound = 1
		}
		if n := len(e.Combat.Order); n > 0 {
			if e.Combat.CurrentTurn < 0 {
				e.Combat.CurrentTurn = 0
			}
			if e.Combat.CurrentTurn >= n {
				e.Combat.CurrentTurn = n - 1
			}
		} else {
			e.Combat.CurrentTurn = 0
		}
	}
}

// Touch records a mutation: bumps the version counter and the updated
// timestamp. Call once per persisted change.
func (e *Encounter) Touch(now time.Time) {
	e.Version++
	e.UpdatedAt = now
}
