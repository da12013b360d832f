package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hedger",
	Short: "Simulate a protective-put hedge with a single upward roll",
	Long: `Hedger simulates a leveraged long stock position protected by puts.

It provides tools for:
  - Generating seeded geometric Brownian motion price paths
  - Pricing the puts daily with Black-Scholes
  - Rolling the hedge up once when the trigger price is reached
  - Charging daily margin interest on the borrowed amount
  - Journaling runs to CSV or SQLite and exporting them to Org-mode`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
