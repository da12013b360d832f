package cmd

import (
	"fmt"

	"github.com/rustyeddy/hedger/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for hedge simulations.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  hedger config init -o hedge.yaml
  hedger config validate -f hedge.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with the default scenario.

Example:
  hedger config init -o hedge.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  hedger config validate -f hedge.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "hedge.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  hedger run -f %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s := cfg.Simulation
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Position: %d shares at $%.2f (margin %.0f%% at %.2f%%)\n",
		s.NumShares, s.InitialPrice, s.MarginRequirement*100, s.MarginRate*100)
	fmt.Fprintf(out, "  Hedge: %d puts K=%.2f, roll to K=%.2f at $%.2f\n",
		s.NumPutContracts, s.PutStrike, s.RollStrike, s.TriggerPrice)
	fmt.Fprintf(out, "  Path: %d steps, mu=%.2f sigma=%.2f seed=%d\n",
		s.SimulationSteps, s.ExpectedReturn, s.Volatility, cfg.Seed)
	fmt.Fprintf(out, "  Journal: %s\n", journalType(cfg.Journal))
	return nil
}

func journalType(j config.JournalConfig) string {
	if j.Type == "" {
		return "none"
	}
	return j.Type
}
