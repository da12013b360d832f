// Package report renders a run for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rustyeddy/hedger/ledger"
	"github.com/shopspring/decimal"
)

// Money formats x as dollars rounded half away from zero to cents,
// with thousands separators: -1234.565 -> "-$1,234.57".
func Money(x float64) string {
	d := decimal.NewFromFloat(x).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	_, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + humanize.Comma(d.IntPart()) + "." + frac
}

// WriteTable prints one row per day.
func WriteTable(w io.Writer, days []ledger.DayRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tDate\tSpot\tStrike\tPut Value\tMargin Interest\tTotal Value\tAction\t")
	for _, d := range days {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%s\t%s\t%s\t%s\t\n",
			d.Day,
			d.Date.Format("2006-01-02"),
			d.Spot,
			d.ActiveStrike,
			Money(d.PutValue),
			Money(d.CumulativeInterest),
			Money(d.TotalValue),
			d.Action,
		)
	}
	return tw.Flush()
}

// WriteRolls prints the description of every roll day.
func WriteRolls(w io.Writer, days []ledger.DayRecord) error {
	for _, d := range days {
		if d.Action != ledger.Roll {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s\n", d.Description); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints the headline numbers of a run.
func WriteSummary(w io.Writer, runID string, openingPut float64, s ledger.Summary) error {
	ret := "n/a"
	if s.HasReturn {
		ret = decimal.NewFromFloat(s.ReturnPct).StringFixed(2) + "%"
	}
	roll := "never"
	if s.RollDay >= 0 {
		roll = fmt.Sprintf("day %d", s.RollDay)
	}
	_, err := fmt.Fprintf(w, `Run %s
  Days simulated:   %d
  Opening puts:     %s
  Initial value:    %s
  Final value:      %s
  Range:            %s .. %s
  Margin interest:  %s
  Rolled:           %s (final strike %.2f)
  Return:           %s
`,
		runID,
		s.Days,
		Money(openingPut),
		Money(s.InitialValue),
		Money(s.FinalValue),
		Money(s.MinValue), Money(s.MaxValue),
		Money(s.TotalInterest),
		roll, s.FinalStrike,
		ret,
	)
	return err
}
