package journal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/hedger/ledger"
)

var runOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"short": shortID,
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

type runOrgView struct {
	RunRecord
	Table string
}

// FormatRunOrg renders a run and its days as an Org-mode block.
func FormatRunOrg(run RunRecord, days []ledger.DayRecord) (string, error) {
	buf := new(bytes.Buffer)
	if err := runOrgTemplate.Execute(buf, runOrgView{RunRecord: run, Table: FormatDaysOrgTable(days)}); err != nil {
		return "", fmt.Errorf("render run %s: %w", run.RunID, err)
	}
	return buf.String(), nil
}

// WriteRunOrg writes FormatRunOrg output to path.
func WriteRunOrg(path string, run RunRecord, days []ledger.DayRecord) error {
	s, err := FormatRunOrg(run, days)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

// FormatDaysOrgTable renders day records as an Org table.
func FormatDaysOrgTable(days []ledger.DayRecord) string {
	var b strings.Builder
	b.WriteString("| Day | Date | Spot | Strike | Put Value | Interest | Total Value | Action |\n")
	b.WriteString("|-----+------+------+--------+-----------+----------+-------------+--------|\n")
	for _, d := range days {
		b.WriteString(fmt.Sprintf("| %d | %s | %.2f | %.2f | %.2f | %.2f | %.2f | %s |\n",
			d.Day, d.Date.Format("2006-01-02"), d.Spot, d.ActiveStrike, d.PutValue,
			d.CumulativeInterest, d.TotalValue, d.Action))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

const RunOrgTemplate = `* HEDGE RUN: protective put {{printf "%.2f" .Params.PutStrike}} -> {{printf "%.2f" .Params.RollStrike}} ({{short .RunID}})
:PROPERTIES:
:RUN_ID:       {{.RunID}}
:SEED:         {{.Seed}}
:DAYS:         {{.Days}}
:INITIAL_VAL:  {{printf "%.2f" .InitialValue}}
:FINAL_VAL:    {{printf "%.2f" .FinalValue}}
:RETURN_PCT:   {{if .InitialValue}}{{printf "%.2f" .ReturnPct}}{{else}}n/a{{end}}
:ROLL_DAY:     {{if ge .RollDay 0}}{{.RollDay}}{{else}}none{{end}}
:CREATED:      [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Parameters
| Parameter          | Value |
|--------------------+-------|
| Initial price      | {{printf "%.2f" .Params.InitialPrice}} |
| Put strike         | {{printf "%.2f" .Params.PutStrike}} |
| Roll strike        | {{printf "%.2f" .Params.RollStrike}} |
| Trigger price      | {{printf "%.2f" .Params.TriggerPrice}} |
| Horizon (days)     | {{.Params.HorizonDays}} |
| Simulated days     | {{.Params.SimulationSteps}} |
| Volatility         | {{printf "%.4f" .Params.Volatility}} |
| Expected return    | {{printf "%.4f" .Params.ExpectedReturn}} |
| Risk free rate     | {{printf "%.4f" .Params.RiskFreeRate}} |
| Shares             | {{.Params.NumShares}} |
| Put contracts      | {{.Params.NumPutContracts}} x {{.Params.ContractMultiplier}} |
| Margin requirement | {{printf "%.2f" .Params.MarginRequirement}} |
| Margin rate        | {{printf "%.4f" .Params.MarginRate}} |

** Performance Summary
- Opening puts:     *{{printf "%.2f" .OpeningPutValue}}*
- Final value:      *{{printf "%.2f" .FinalValue}}*
- Return:           *{{if .InitialValue}}{{printf "%.2f" .ReturnPct}}%{{else}}n/a{{end}}*
- Range:            *{{printf "%.2f" .MinValue}} .. {{printf "%.2f" .MaxValue}}*
- Margin interest:  *{{printf "%.2f" .TotalInterest}}*

** Days
{{.Table}}`
