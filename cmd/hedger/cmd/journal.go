package cmd

import (
	"fmt"

	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/report"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled runs",
	Long: `Query and display journaled runs from a SQLite database.

Subcommands:
  list  - List every journaled run
  run   - Show the summary of a run
  days  - Show the daily ledger of a run
  org   - Export a run as an Org-mode block

Examples:
  hedger journal list
  hedger journal run <run-id>
  hedger journal org <run-id> -o run.org`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every journaled run",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show the summary of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalDaysCmd = &cobra.Command{
	Use:   "days <run-id>",
	Short: "Show the daily ledger of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDays,
}

var journalOrgCmd = &cobra.Command{
	Use:   "org <run-id>",
	Short: "Export a run as an Org-mode block",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrg,
}

var (
	journalDBPath    string
	journalOrgOutput string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalDaysCmd)
	journalCmd.AddCommand(journalOrgCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./hedger.sqlite", "path to SQLite journal DB")
	journalOrgCmd.Flags().StringVarP(&journalOrgOutput, "output", "o", "", "write to file instead of stdout")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range runs {
		ret := "n/a"
		if r.InitialValue != 0 {
			ret = fmt.Sprintf("%.2f%%", r.ReturnPct)
		}
		fmt.Fprintf(out, "%s  %s  seed=%-6d days=%-4d final=%s return=%s\n",
			r.RunID, r.Created.Format("2006-01-02 15:04"), r.Seed, r.Days,
			report.Money(r.FinalValue), ret)
	}
	return nil
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	return report.WriteSummary(cmd.OutOrStdout(), run.RunID, run.OpeningPutValue, run.Summary())
}

func runJournalDays(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	days, err := j.ListDays(args[0])
	if err != nil {
		return fmt.Errorf("query days: %w", err)
	}
	if len(days) == 0 {
		return fmt.Errorf("run %q has no days", args[0])
	}
	return report.WriteTable(cmd.OutOrStdout(), days)
}

func runJournalOrg(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	days, err := j.ListDays(run.RunID)
	if err != nil {
		return fmt.Errorf("query days: %w", err)
	}

	if journalOrgOutput != "" {
		return journal.WriteRunOrg(journalOrgOutput, run, days)
	}
	s, err := journal.FormatRunOrg(run, days)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), s)
	return nil
}
