package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyrmforge/combat-tracker/internal/engine"
	"github.com/wyrmforge/combat-tracker/internal/entities"
	"github.com/wyrmforge/combat-tracker/internal/orchestrators/encounter"
	"github.com/wyrmforge/combat-tracker/internal/pkg/clock"
	"github.com/wyrmforge/combat-tracker/internal/pkg/dice"
	"github.com/wyrmforge/combat-tracker/internal/pkg/idgen"
	redisclient "github.com/wyrmforge/combat-tracker/internal/redis"
	encounterrepo "github.com/wyrmforge/combat-tracker/internal/repositories/encounters"
)

var (
	simulateSeed      int64
	simulateRedisAddr string
	simulateRounds    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a demo combat encounter",
	Long:  `Simulate builds a small party-versus-goblins encounter, rolls initiative, and plays through a few rounds of combat, printing the turn order and hit-point changes as it goes.`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "dice seed, 0 for a random seed")
	simulateCmd.Flags().StringVar(&simulateRedisAddr, "redis", "", "redis address for persistence, in-memory when empty")
	simulateCmd.Flags().IntVar(&simulateRounds, "rounds", 2, "number of rounds to play")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var repo encounterrepo.Repository = encounterrepo.NewInMemory()
	if simulateRedisAddr != "" {
		client, err := redisclient.NewClient(simulateRedisAddr, nil)
		if err != nil {
			return err
		}
		redisRepo, err := encounterrepo.NewRedis(&encounterrepo.RedisConfig{Client: client})
		if err != nil {
			return err
		}
		repo = redisRepo
	}

	roller := dice.NewRandomRoller()
	if simulateSeed != 0 {
		roller = dice.NewRoller(simulateSeed)
	}

	svc, err := encounter.New(&encounter.Config{
		Repository:  repo,
		IDGenerator: idgen.NewUUID("enc-"),
		Clock:       clock.New(),
		Roller:      roller,
	})
	if err != nil {
		return err
	}

	created, err := svc.CreateEncounter(ctx, &encounter.CreateEncounterInput{
		OwnerID: "dm-demo",
		Name:    "Goblin Ambush",
		Tags:    []string{"demo"},
		Settings: &entities.EncounterSettings{
			AutoRollInitiative: true,
		},
	})
	if err != nil {
		return err
	}
	encounterID := created.Encounter.ID

	roster := []entities.Participant{
		{CharacterID: "pc-mira", Name: "Mira", Kind: entities.KindPlayerCharacter, MaxHP: 24, CurrentHP: 24, ArmorClass: 15, VisibleToPlayers: true},
		{CharacterID: "pc-theron", Name: "Theron", Kind: entities.KindPlayerCharacter, MaxHP: 30, CurrentHP: 30, ArmorClass: 17, VisibleToPlayers: true},
		{CharacterID: "gob-1", Name: "Goblin Skirmisher", Kind: entities.KindMonster, MaxHP: 7, CurrentHP: 7, ArmorClass: 13},
		{CharacterID: "gob-2", Name: "Goblin Archer", Kind: entities.KindMonster, MaxHP: 7, CurrentHP: 7, ArmorClass: 13},
		{CharacterID: "gob-boss", Name: "Goblin Boss", Kind: entities.KindMonster, MaxHP: 21, CurrentHP: 21, TempHP: 4, ArmorClass: 15},
	}
	for _, p := range roster {
		if _, err := svc.AddParticipant(ctx, &encounter.AddParticipantInput{
			EncounterID: encounterID,
			Participant: p,
		}); err != nil {
			return err
		}
	}

	difficulty, err := svc.EstimateDifficulty(ctx, &encounter.EstimateDifficultyInput{EncounterID: encounterID})
	if err != nil {
		return err
	}
	fmt.Printf("Encounter %q (%s) with %d combatants\n", created.Encounter.Name, difficulty.Difficulty, len(roster))

	started, err := svc.StartCombat(ctx, &encounter.StartCombatInput{
		EncounterID: encounterID,
		AutoRoll:    true,
		Dexterity: engine.DexterityScores{
			"pc-mira":   16,
			"pc-theron": 10,
			"gob-1":     14,
			"gob-2":     14,
			"gob-boss":  12,
		},
	})
	if err != nil {
		return err
	}

	fmt.Println("Initiative order:")
	for i, entry := range started.Encounter.Combat.Order {
		fmt.Printf("  %d. %s (initiative %d)\n", i+1, entry.ParticipantID, entry.Initiative)
	}

	// Sample effects before the turns start ticking.
	if _, err := svc.ApplyDamage(ctx, &encounter.ApplyDamageInput{
		EncounterID:   encounterID,
		ParticipantID: "gob-boss",
		Amount:        6,
	}); err != nil {
		return err
	}
	if _, err := svc.AddCondition(ctx, &encounter.AddConditionInput{
		EncounterID:   encounterID,
		ParticipantID: "gob-1",
		Condition:     "prone",
	}); err != nil {
		return err
	}
	if _, err := svc.ApplyHealing(ctx, &encounter.ApplyHealingInput{
		EncounterID:   encounterID,
		ParticipantID: "pc-mira",
		Amount:        4,
	}); err != nil {
		return err
	}

	turnsPerRound := len(started.Encounter.Combat.Order)
	for i := 0; i < simulateRounds*turnsPerRound; i++ {
		next, err := svc.NextTurn(ctx, &encounter.NextTurnInput{EncounterID: encounterID})
		if err != nil {
			return err
		}
		fmt.Printf("Round %d: %s acts\n", next.Round, next.ActiveParticipantID)
	}

	ended, err := svc.EndCombat(ctx, &encounter.EndCombatInput{EncounterID: encounterID})
	if err != nil {
		return err
	}

	fmt.Printf("Combat over after %d round(s), duration %s\n",
		ended.Encounter.Combat.CurrentRound, ended.Encounter.Combat.TotalDuration)
	for i := range ended.Encounter.Participants {
		p := &ended.Encounter.Participants[i]
		fmt.Printf("  %-18s HP %d/%d", p.Name, p.CurrentHP, p.MaxHP)
		if len(p.Conditions) > 0 {
			fmt.Printf("  (%v)", p.Conditions)
		}
		fmt.Println()
	}

	return nil
}
