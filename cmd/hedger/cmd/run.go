package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/ledger"
	"github.com/rustyeddy/hedger/logging"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/metrics"
	"github.com/rustyeddy/hedger/pkg/id"
	"github.com/rustyeddy/hedger/report"
	"github.com/rustyeddy/hedger/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a hedge simulation from a config file",
	Long: `Run a protective put simulation using settings from a configuration file.

The config file specifies the position, the hedge strikes and trigger, the
price path parameters and where to journal the results.

Example:
  hedger run -f hedge.yaml --seed 7`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runSeed        int64
	runMetricsPath string
	runQuiet       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "file", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "override the seed from the config file")
	runCmd.Flags().StringVar(&runMetricsPath, "metrics-textfile", "", "write Prometheus metrics to this file")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "print the summary only")
	runCmd.MarkFlagRequired("file")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = runSeed
	}

	log := logging.New(cfg.Logging)
	defer log.Sync()

	m := metrics.New()
	_, runErr := simulate(cmd.OutOrStdout(), cfg, log, m, !runQuiet)

	if runMetricsPath != "" {
		if err := m.WriteTextfile(runMetricsPath); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return runErr
}

// simulate runs one configured simulation, prints it to out and journals it.
func simulate(out io.Writer, cfg *config.Config, log *zap.Logger, m *metrics.Metrics, table bool) (journal.RunRecord, error) {
	start, err := cfg.Start()
	if err != nil {
		return journal.RunRecord{}, err
	}
	sched, err := sim.New(cfg.Simulation, sim.WithLogger(log), sim.WithStartDate(start))
	if err != nil {
		return journal.RunRecord{}, fmt.Errorf("create scheduler: %w", err)
	}
	path, err := market.GeneratePath(sched.Config(), cfg.Seed)
	if err != nil {
		if errors.Is(err, sim.ErrNumerical) {
			m.ObserveFailure(0)
		}
		return journal.RunRecord{}, fmt.Errorf("generate path: %w", err)
	}

	l, err := sched.Run(path)
	if err != nil {
		if errors.Is(err, sim.ErrNumerical) {
			return journal.RunRecord{}, reportFailure(out, l, m, table, err)
		}
		return journal.RunRecord{}, fmt.Errorf("simulate: %w", err)
	}

	summary, err := l.Summary(sched.InitialPositionValue())
	if err != nil {
		return journal.RunRecord{}, fmt.Errorf("summarize: %w", err)
	}
	m.Observe(summary)

	runID := id.New()
	run := journal.NewRunRecord(runID, time.Now(), cfg.Seed, sched.Config(), sched.OpeningPutValue(), summary)

	if table {
		if err := report.WriteTable(out, l.Records()); err != nil {
			return run, err
		}
		fmt.Fprintln(out)
	}
	if err := report.WriteRolls(out, l.Records()); err != nil {
		return run, err
	}
	if err := report.WriteSummary(out, runID, sched.OpeningPutValue(), summary); err != nil {
		return run, err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return run, fmt.Errorf("create journal: %w", err)
	}
	if j == nil {
		return run, nil
	}
	defer j.Close()

	if err := journal.WriteLedger(j, run, l); err != nil {
		return run, fmt.Errorf("journal: %w", err)
	}
	log.Info("run journaled", zap.String("run_id", runID), zap.String("journal", cfg.Journal.Type))
	return run, nil
}

// reportFailure counts a run aborted by a numerical error and prints the days
// completed before it.
func reportFailure(out io.Writer, l *ledger.Ledger, m *metrics.Metrics, table bool, runErr error) error {
	runErr = fmt.Errorf("simulate: %w", runErr)
	m.ObserveFailure(l.Len())
	if !table || l.Len() == 0 {
		return runErr
	}
	if err := report.WriteTable(out, l.Records()); err != nil {
		return errors.Join(runErr, fmt.Errorf("print partial ledger: %w", err))
	}
	return runErr
}

// openJournal returns nil when journaling is disabled.
func openJournal(c config.JournalConfig) (journal.Journal, error) {
	switch c.Type {
	case "csv":
		return journal.NewCSV(c.RunsFile, c.DaysFile)
	case "sqlite":
		return journal.NewSQLite(c.DBPath)
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown journal type %q", config.ErrInvalidParameter, c.Type)
	}
}
