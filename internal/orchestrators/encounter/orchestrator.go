// Package encounter implements the encounter orchestrator for managing
// tabletop combat encounters
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountersvcmock github.com/wyrmforge/combat-tracker/internal/orchestrators/encounter Service

import (
	"context"
	"log/slog"

	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/errors"
	"github.com/wyrmforge/combat-tracker/internal/pkg/clock"
	"github.com/wyrmforge/combat-tracker/internal/pkg/dice"
	"github.com/wyrmforge/combat-tracker/internal/pkg/idgen"
	encounterrepo "github.com/wyrmforge/combat-tracker/internal/repositories/encounters"
)

// Service defines the interface for encounter operations
type Service interface {
	// Encounter lifecycle
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error)
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)
	ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error)
	DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error)

	// Roster management
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)
	UpdateParticipant(ctx context.Context, input *UpdateParticipantInput) (*UpdateParticipantOutput, error)
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error)

	// Combat lifecycle
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)
	PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error)
	SetInitiative(ctx context.Context, input *SetInitiativeInput) (*SetInitiativeOutput, error)

	// Effects
	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)
	ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error)
	AddCondition(ctx context.Context, input *AddConditionInput) (*AddConditionOutput, error)
	RemoveCondition(ctx context.Context, input *RemoveConditionInput) (*RemoveConditionOutput, error)

	// Analysis
	EstimateDifficulty(ctx context.Context, input *EstimateDifficultyInput) (*EstimateDifficultyOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	Repository  encounterrepo.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Roller      dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Orchestrator implements the Service interface
type Orchestrator struct {
	repo   encounterrepo.Repository
	idGen  idgen.Generator
	clock  clock.Clock
	combat *engine.CombatStateMachine
}

// New creates a new encounter orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	combat, err := engine.NewCombatStateMachine(&engine.CombatConfig{
		Clock:  cfg.Clock,
		Roller: cfg.Roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid combat config")
	}

	return &Orchestrator{
		repo:   cfg.Repository,
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
		combat: combat,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// Encounter lifecycle methods

// CreateEncounter creates a new draft encounter with an empty roster
func (o *Orchestrator) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.OwnerID == "" {
		vb.RequiredField("ownerID")
	}
	if input.Name == "" {
		vb.RequiredField("name")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	enc := &entities.Encounter{
		ID:          o.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Tags:        input.Tags,
		Status:      entities.StatusDraft,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Settings != nil {
		enc.Settings = *input.Settings
	}

	output, err := o.repo.Create(ctx, encounterrepo.CreateInput{Encounter: enc})
	if err != nil {
		return nil, err
	}

	slog.Info("encounter created",
		"encounter_id", enc.ID,
		"owner_id", enc.OwnerID,
	)

	return &CreateEncounterOutput{Encounter: output.Encounter}, nil
}

// GetEncounter fetches an encounter by ID
func (o *Orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	return &GetEncounterOutput{Encounter: enc}, nil
}

// ListEncounters lists all encounters belonging to an owner
func (o *Orchestrator) ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("ownerID is required")
	}

	output, err := o.repo.ListByOwnerID(ctx, encounterrepo.ListByOwnerIDInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	return &ListEncountersOutput{Encounters: output.Encounters}, nil
}

// DeleteEncounter removes an encounter permanently
func (o *Orchestrator) DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounterID is required")
	}

	if _, err := o.repo.Delete(ctx, encounterrepo.DeleteInput{ID: input.EncounterID}); err != nil {
		return nil, err
	}

	slog.Info("encounter deleted", "encounter_id", input.EncounterID)

	return &DeleteEncounterOutput{}, nil
}

// Roster management methods

// AddParticipant adds a combatant to the roster. Adding while combat is
// active is allowed; the newcomer joins the initiative order only on the
// next StartCombat.
func (o *Orchestrator) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Participant.CharacterID == "" {
		vb.RequiredField("participant.characterID")
	}
	if input.Participant.Name == "" {
		vb.RequiredField("participant.name")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if _, exists := engine.GetParticipant(enc, input.Participant.CharacterID); exists {
		return nil, errors.AlreadyExistsf("participant %s already in encounter %s",
			input.Participant.CharacterID, enc.ID)
	}

	engine.AddParticipant(enc, input.Participant)

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	return &AddParticipantOutput{Encounter: saved}, nil
}

// UpdateParticipant applies a partial update to one participant
func (o *Orchestrator) UpdateParticipant(ctx context.Context, input *UpdateParticipantInput) (*UpdateParticipantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participantID is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := engine.UpdateParticipant(enc, input.ParticipantID, input.Update); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	participant, _ := engine.GetParticipant(saved, input.ParticipantID)

	return &UpdateParticipantOutput{
		Encounter:   saved,
		Participant: participant,
	}, nil
}

// RemoveParticipant drops a combatant from the roster and, when combat is
// active, from the initiative order with the turn cursor repaired
func (o *Orchestrator) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participantID is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := o.combat.RemoveParticipant(enc, input.ParticipantID); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	slog.Info("participant removed",
		"encounter_id", saved.ID,
		"participant_id", input.ParticipantID,
	)

	return &RemoveParticipantOutput{Encounter: saved}, nil
}

// Combat lifecycle methods

// StartCombat rolls or collects initiative and activates combat. Starting
// while already active resets the order and turn position.
func (o *Orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if len(enc.Participants) == 0 {
		return nil, errors.FailedPrecondition("cannot start combat with an empty roster")
	}

	o.combat.StartCombat(enc, engine.StartCombatInput{
		AutoRoll:  input.AutoRoll,
		Dexterity: input.Dexterity,
	})

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	slog.Info("combat started",
		"encounter_id", saved.ID,
		"participants", len(saved.Participants),
		"auto_roll", input.AutoRoll,
	)

	return &StartCombatOutput{Encounter: saved}, nil
}

// EndCombat deactivates combat and records the total duration
func (o *Orchestrator) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if !enc.Combat.IsActive {
		return nil, errors.FailedPrecondition("combat is not active")
	}

	o.combat.EndCombat(enc)

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	slog.Info("combat ended",
		"encounter_id", saved.ID,
		"rounds", saved.Combat.CurrentRound,
		"duration", saved.Combat.TotalDuration,
	)

	return &EndCombatOutput{Encounter: saved}, nil
}

// NextTurn advances to the next combatant, rolling into a new round off the
// end of the order
func (o *Orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := o.combat.NextTurn(enc); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	activeID := ""
	if active := saved.Combat.ActiveEntry(); active != nil {
		activeID = active.ParticipantID
	}

	slog.Info("advanced turn",
		"encounter_id", saved.ID,
		"round", saved.Combat.CurrentRound,
		"active_participant", activeID,
	)

	return &NextTurnOutput{
		Encounter:           saved,
		ActiveParticipantID: activeID,
		Round:               saved.Combat.CurrentRound,
	}, nil
}

// PreviousTurn rewinds to the prior combatant, never before round 1 turn 0
func (o *Orchestrator) PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := o.combat.PreviousTurn(enc); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	activeID := ""
	if active := saved.Combat.ActiveEntry(); active != nil {
		activeID = active.ParticipantID
	}

	return &PreviousTurnOutput{
		Encounter:           saved,
		ActiveParticipantID: activeID,
		Round:               saved.Combat.CurrentRound,
	}, nil
}

// SetInitiative overrides one combatant's initiative and re-sorts the order,
// keeping the turn cursor on whoever was acting
func (o *Orchestrator) SetInitiative(ctx context.Context, input *SetInitiativeInput) (*SetInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participantID is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := o.combat.SetInitiative(enc, input.ParticipantID, input.Initiative, input.Dexterity); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	return &SetInitiativeOutput{Encounter: saved}, nil
}

// Effect methods

// ApplyDamage deals damage to a participant, temp HP first
func (o *Orchestrator) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participantID is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := engine.ApplyDamage(enc, input.ParticipantID, input.Amount); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	participant, _ := engine.GetParticipant(saved, input.ParticipantID)

	return &ApplyDamageOutput{
		Encounter:   saved,
		Participant: participant,
	}, nil
}

// ApplyHealing restores current HP up to the participant's maximum
func (o *Orchestrator) ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ParticipantID == "" {
		return nil, errors.InvalidArgument("participantID is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := engine.ApplyHealing(enc, input.ParticipantID, input.Amount); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	participant, _ := engine.GetParticipant(saved, input.ParticipantID)

	return &ApplyHealingOutput{
		Encounter:   saved,
		Participant: participant,
	}, nil
}

// AddCondition attaches a status condition, idempotently
func (o *Orchestrator) AddCondition(ctx context.Context, input *AddConditionInput) (*AddConditionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.ParticipantID == "" {
		vb.RequiredField("participantID")
	}
	if input.Condition == "" {
		vb.RequiredField("condition")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := engine.AddCondition(enc, input.ParticipantID, input.Condition); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	participant, _ := engine.GetParticipant(saved, input.ParticipantID)

	return &AddConditionOutput{
		Encounter:   saved,
		Participant: participant,
	}, nil
}

// RemoveCondition clears a status condition; clearing an absent condition
// succeeds
func (o *Orchestrator) RemoveCondition(ctx context.Context, input *RemoveConditionInput) (*RemoveConditionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.ParticipantID == "" {
		vb.RequiredField("participantID")
	}
	if input.Condition == "" {
		vb.RequiredField("condition")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if err := engine.RemoveCondition(enc, input.ParticipantID, input.Condition); err != nil {
		return nil, err
	}

	saved, err := o.saveEncounter(ctx, enc)
	if err != nil {
		return nil, err
	}

	participant, _ := engine.GetParticipant(saved, input.ParticipantID)

	return &RemoveConditionOutput{
		Encounter:   saved,
		Participant: participant,
	}, nil
}

// Analysis methods

// EstimateDifficulty classifies the encounter from its current roster
func (o *Orchestrator) EstimateDifficulty(ctx context.Context, input *EstimateDifficultyInput) (*EstimateDifficultyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.loadEncounter(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	return &EstimateDifficultyOutput{
		Difficulty: engine.EstimateDifficulty(enc.Participants),
	}, nil
}

// helpers

func (o *Orchestrator) loadEncounter(ctx context.Context, id string) (*entities.Encounter, error) {
	if id == "" {
		return nil, errors.InvalidArgument("encounterID is required")
	}

	output, err := o.repo.Get(ctx, encounterrepo.GetInput{ID: id})
	if err != nil {
		return nil, err
	}

	return output.Encounter, nil
}

// saveEncounter bumps the version and timestamp, then persists against the
// version the encounter was loaded at so concurrent writers lose cleanly.
func (o *Orchestrator) saveEncounter(ctx context.Context, enc *entities.Encounter) (*entities.Encounter, error) {
	expected := enc.Version
	enc.Touch(o.clock.Now())

	output, err := o.repo.Update(ctx, encounterrepo.UpdateInput{
		Encounter:       enc,
		ExpectedVersion: expected,
	})
	if err != nil {
		return nil, err
	}

	return output.Encounter, nil
}
