package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wyrmforge/combat-tracker/internal/clients/srd"
)

var (
	monstersBaseURL string
	monstersTimeout time.Duration
	monstersLimit   int
)

var monstersCmd = &cobra.Command{
	Use:   "monsters",
	Short: "List monsters from the SRD catalog",
	Long:  `Monsters fetches the published monster list from the D&D 5e SRD API, for picking opponents when building an encounter roster.`,
	RunE:  runMonsters,
}

func init() {
	monstersCmd.Flags().StringVar(&monstersBaseURL, "base-url", "", "SRD API base URL, default dnd5eapi.co")
	monstersCmd.Flags().DurationVar(&monstersTimeout, "timeout", 30*time.Second, "HTTP timeout for API requests")
	monstersCmd.Flags().IntVar(&monstersLimit, "limit", 0, "maximum monsters to print, 0 for all")
}

func runMonsters(cmd *cobra.Command, args []string) error {
	client, err := srd.New(&srd.Config{
		BaseURL:     monstersBaseURL,
		HTTPTimeout: monstersTimeout,
	})
	if err != nil {
		return err
	}

	monsters, err := client.ListMonsters(context.Background())
	if err != nil {
		return err
	}

	count := len(monsters)
	if monstersLimit > 0 && monstersLimit < count {
		count = monstersLimit
	}

	for _, m := range monsters[:count] {
		fmt.Printf("%-40s %s\n", m.ID, m.Name)
	}
	fmt.Printf("%d of %d monsters\n", count, len(monsters))

	return nil
}
