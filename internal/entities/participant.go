// Package entities provides core data structures for combat-tracker.
package entities

// ParticipantKind classifies a combat participant
type ParticipantKind string

// Participant kinds
const (
	KindPlayerCharacter    ParticipantKind = "player_character"
	KindNonPlayerCharacter ParticipantKind = "npc"
	KindMonster            ParticipantKind = "monster"
)

// Stat bounds. Mutations clamp to these rather than reject, so a GM can
// always force a value through and end up with something legal.
const (
	MinArmorClass = 1
	MaxArmorClass = 30
	MinInitiative = -10
	MaxInitiative = 30
	MinDexterity  = 1
	MaxDexterity  = 30
)

// GridPosition is a participant's optional position on the tactical grid
type GridPosition struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Participant is a combat-relevant actor within an encounter. CharacterID is
// a borrowed reference to an external character record; the encounter never
// owns or fetches that record.
type Participant struct {
	CharacterID      string          `json:"character_id"`
	Name             string          `json:"name"`
	Kind             ParticipantKind `json:"kind"`
	MaxHP            int32           `json:"max_hp"`
	CurrentHP        int32           `json:"current_hp"`
	TempHP           int32           `json:"temp_hp"`
	ArmorClass       int32           `json:"armor_class"`
	Initiative       *int32          `json:"initiative,omitempty"` // innate score used when auto-roll is off
	VisibleToPlayers bool            `json:"visible_to_players"`
	Notes            string          `json:"notes,omitempty"`
	Conditions       []string        `json:"conditions,omitempty"`
	Position         *GridPosition   `json:"position,omitempty"`
}

// IsPlayer reports whether the participant is a player character
func (p *Participant) IsPlayer() bool {
	return p.Kind == KindPlayerCharacter
}

// HasCondition reports whether the named condition is active
func (p *Participant) HasCondition(name string) bool {
	for _, c := range p.Conditions {
		if c == name {
			return true
		}
	}
	return false
}

// Normalize clamps the participant's stats into their legal ranges. Applied
// on load and after every mutation: max ≥ 1, 0 ≤ current ≤ max, temp ≥ 0,
// AC within 1..30, innate initiative within -10..30, grid position ≥ 0.
func (p *Participant) Normalize() {
	if p.MaxHP < 1 {
		p.MaxHP = 1
	}
	p.CurrentHP = clampInt32(p.CurrentHP, 0, p.MaxHP)
	if p.TempHP < 0 {
		p.TempHP = 0
	}
	p.ArmorClass = clampInt32(p.ArmorClass, MinArmorClass, MaxArmorClass)
	if p.Initiative != nil {
		v := clampInt32(*p.Initiative, MinInitiative, MaxInitiative)
		p.Initiative = &v
	}
	if p.Position != nil {
		if p.Position.X < 0 {
			p.Position.X = 0
		}
		if p.Position.Y < 0 {
			p.Position.Y = 0
		}
	}
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
