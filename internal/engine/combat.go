package engine

import (
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
	"github.com/wyrmforge/combat-tracker/internal/pkg/clock"
	"github.com/wyrmforge/combat-tracker/internal/pkg/dice"
)

// CombatConfig holds the dependencies for the combat state machine
type CombatConfig struct {
	Clock  clock.Clock
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *CombatConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// CombatStateMachine drives an encounter's combat session through its
// lifecycle: draft → active → completed. It keeps the roster and the
// initiative order mutually consistent when participants leave mid-combat.
type CombatStateMachine struct {
	clock  clock.Clock
	roller dice.Roller
}

// NewCombatStateMachine creates a combat state machine with the provided
// dependencies
func NewCombatStateMachine(cfg *CombatConfig) (*CombatStateMachine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &CombatStateMachine{
		clock:  cfg.Clock,
		roller: cfg.Roller,
	}, nil
}

// StartCombatInput configures a combat start
type StartCombatInput struct {
	// AutoRoll draws a d20 per participant instead of using innate scores
	AutoRoll bool
	// Dexterity supplies tie-break scores resolved from character records
	Dexterity DexterityScores
}

// StartCombat activates combat: round 1, turn 0, a fresh initiative order
// built from the full current roster, and the encounter marked active.
// Starting while already active is a hard reset that discards the prior turn
// position; callers should guard against accidental restarts.
func (m *CombatStateMachine) StartCombat(enc *entities.Encounter, input StartCombatInput) {
	now := m.clock.Now()

	enc.Combat = entities.CombatState{
		IsActive:     true,
		CurrentRound: 1,
		CurrentTurn:  0,
		Order:        BuildOrder(enc.Participants, input.Dexterity, input.AutoRoll, m.roller),
		StartedAt:    &now,
	}
	enc.Status = entities.StatusActive
}

// EndCombat deactivates combat and marks the encounter completed. The
// accumulated duration is the wall time since start, less any paused stretch,
// floored at 0. Active and hasActed flags are cleared on every entry but the
// order itself is kept so the session history stays inspectable.
func (m *CombatStateMachine) EndCombat(enc *entities.Encounter) {
	now := m.clock.Now()
	c := &enc.Combat

	c.IsActive = false
	c.EndedAt = &now

	if c.StartedAt != nil {
		d := now.Sub(*c.StartedAt)
		if c.PausedAt != nil {
			d -= c.PausedAt.Sub(*c.StartedAt)
		}
		if d < 0 {
			d = 0
		}
		c.TotalDuration = d
	}

	for i := range c.Order {
		c.Order[i].IsActive = false
		c.Order[i].HasActed = false
	}

	enc.Status = entities.StatusCompleted
}

// NextTurn advances the turn cursor. Fails without mutation while combat is
// inactive or the order is empty.
func (m *CombatStateMachine) NextTurn(enc *entities.Encounter) error {
	c := &enc.Combat
	if !c.IsActive {
		return errors.FailedPrecondition("combat is not active")
	}

	round, turn, err := Advance(c.Order, c.CurrentRound, c.CurrentTurn)
	if err != nil {
		return err
	}

	c.CurrentRound = round
	c.CurrentTurn = turn
	return nil
}

// PreviousTurn rewinds the turn cursor. Fails without mutation while combat
// is inactive or the order is empty.
func (m *CombatStateMachine) PreviousTurn(enc *entities.Encounter) error {
	c := &enc.Combat
	if !c.IsActive {
		return errors.FailedPrecondition("combat is not active")
	}

	round, turn, err := Retreat(c.Order, c.CurrentRound, c.CurrentTurn)
	if err != nil {
		return err
	}

	c.CurrentRound = round
	c.CurrentTurn = turn
	return nil
}

// SetInitiative re-scores a participant's entry and re-sorts the whole
// order. The turn cursor is recomputed as the new index of whichever entry
// was active before the sort; with no active entry (combat inactive) the
// cursor is left untouched. Returns NotFound if the participant has no
// initiative entry.
func (m *CombatStateMachine) SetInitiative(enc *entities.Encounter, participantID string, initiative, dexterity int32) error {
	c := &enc.Combat

	idx := c.FindEntry(participantID)
	if idx < 0 {
		return errors.NotFoundf("no initiative entry for participant %s", participantID)
	}

	c.Order[idx].Initiative = clamp32(initiative, entities.MinInitiative, entities.MaxInitiative)
	c.Order[idx].Dexterity = clamp32(dexterity, entities.MinDexterity, entities.MaxDexterity)

	activeID := ""
	for i := range c.Order {
		if c.Order[i].IsActive {
			activeID = c.Order[i].ParticipantID
			break
		}
	}

	SortOrder(c.Order)

	if activeID != "" {
		if i := c.FindEntry(activeID); i >= 0 {
			c.CurrentTurn = i
		}
	}
	return nil
}

// RemoveParticipant removes a participant from the roster and prunes its
// initiative entry in one operation. When the removed entry sat at or before
// the turn cursor the cursor shifts down one so it keeps pointing at the
// same logical next-up entry; skipping that adjustment causes turn skips or
// double-turns. Removing the currently active entry re-marks the entry now
// under the cursor. Returns NotFound if the participant is not rostered.
func (m *CombatStateMachine) RemoveParticipant(enc *entities.Encounter, participantID string) error {
	if !removeFromRoster(enc, participantID) {
		return errors.NotFoundf("participant %s not found", participantID)
	}

	c := &enc.Combat
	idx := c.FindEntry(participantID)
	if idx < 0 {
		return nil
	}

	wasActive := c.Order[idx].IsActive
	c.Order = append(c.Order[:idx], c.Order[idx+1:]...)

	if idx <= c.CurrentTurn && c.CurrentTurn > 0 {
		c.CurrentTurn--
	}

	if !c.IsActive {
		return nil
	}
	if len(c.Order) == 0 {
		c.CurrentTurn = 0
		return nil
	}
	if c.CurrentTurn >= len(c.Order) {
		c.CurrentTurn = len(c.Order) - 1
	}
	if wasActive {
		for i := range c.Order {
			c.Order[i].IsActive = false
		}
		c.Order[c.CurrentTurn].IsActive = true
	}
	return nil
}
