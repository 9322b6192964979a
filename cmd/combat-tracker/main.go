// Package main is the entry point for the combat tracker CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "combat-tracker",
	Short: "Tabletop combat encounter tracker",
	Long:  `combat-tracker manages encounter rosters, initiative order, combat state, and hit-point bookkeeping for tabletop sessions.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(monstersCmd)
}
