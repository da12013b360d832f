package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/hedger/ledger"
)

const runColumns = `run_id, created, seed, params, days, opening_put_value, initial_value, final_value,
	min_value, max_value, total_interest, roll_day, return_pct`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		rec    RunRecord
		params string
	)
	err := row.Scan(
		&rec.RunID,
		&rec.Created,
		&rec.Seed,
		&params,
		&rec.Days,
		&rec.OpeningPutValue,
		&rec.InitialValue,
		&rec.FinalValue,
		&rec.MinValue,
		&rec.MaxValue,
		&rec.TotalInterest,
		&rec.RollDay,
		&rec.ReturnPct,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Params, err = decodeParams(params)
	if err != nil {
		return RunRecord{}, fmt.Errorf("decode params for run %s: %w", rec.RunID, err)
	}
	return rec, nil
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns every run, oldest first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created ASC, run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDays returns the day records of a run in day order.
func (j *SQLite) ListDays(runID string) ([]ledger.DayRecord, error) {
	rows, err := j.db.Query(`
		SELECT day, date, spot, time_to_expiry, active_strike, put_value, sold_put_value,
		       interest_today, cumulative_interest, total_value, action, description
		FROM days
		WHERE run_id = ?
		ORDER BY day ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.DayRecord
	for rows.Next() {
		var (
			rec    ledger.DayRecord
			action string
		)
		if err := rows.Scan(
			&rec.Day,
			&rec.Date,
			&rec.Spot,
			&rec.TimeToExpiry,
			&rec.ActiveStrike,
			&rec.PutValue,
			&rec.SoldPutValue,
			&rec.InterestToday,
			&rec.CumulativeInterest,
			&rec.TotalValue,
			&action,
			&rec.Description,
		); err != nil {
			return nil, err
		}
		rec.Action = ledger.Action(action)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
