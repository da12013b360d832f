package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/hedger/ledger"
)

var (
	runsHeader = []string{"run_id", "created", "seed", "params", "days", "opening_put_value", "initial_value",
		"final_value", "min_value", "max_value", "total_interest", "roll_day", "return_pct"}
	daysHeader = []string{"run_id", "day", "date", "spot", "time_to_expiry", "active_strike", "put_value",
		"sold_put_value", "interest_today", "cumulative_interest", "total_value", "action", "description"}
)

type CSVJournal struct {
	runs   *csv.Writer
	days   *csv.Writer
	rf, df *os.File
}

func NewCSV(runsPath, daysPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(daysPath)
	if err != nil {
		_ = rf.Close()
		return nil, err
	}

	j := &CSVJournal{csv.NewWriter(rf), csv.NewWriter(df), rf, df}
	if err := j.writeHeaders(); err != nil {
		_ = rf.Close()
		_ = df.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) writeHeaders() error {
	if err := j.runs.Write(runsHeader); err != nil {
		return err
	}
	if err := j.days.Write(daysHeader); err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.days.Flush()
	return j.days.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	params, err := encodeParams(r.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	err = j.runs.Write([]string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		strconv.FormatInt(r.Seed, 10),
		params,
		strconv.Itoa(r.Days),
		f(r.OpeningPutValue),
		f(r.InitialValue),
		f(r.FinalValue),
		f(r.MinValue),
		f(r.MaxValue),
		f(r.TotalInterest),
		strconv.Itoa(r.RollDay),
		f(r.ReturnPct),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordDay(runID string, d ledger.DayRecord) error {
	err := j.days.Write([]string{
		runID,
		strconv.Itoa(d.Day),
		d.Date.Format("2006-01-02"),
		f(d.Spot),
		f(d.TimeToExpiry),
		f(d.ActiveStrike),
		f(d.PutValue),
		f(d.SoldPutValue),
		f(d.InterestToday),
		f(d.CumulativeInterest),
		f(d.TotalValue),
		string(d.Action),
		d.Description,
	})
	if err != nil {
		return err
	}

	j.days.Flush()
	return j.days.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.days.Flush()
	if err := j.days.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.df.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
