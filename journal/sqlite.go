package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/hedger/ledger"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	params, err := encodeParams(r.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	_, err = j.db.Exec(`
		INSERT INTO runs
		(run_id, created, seed, params, days, opening_put_value, initial_value, final_value,
		 min_value, max_value, total_interest, roll_day, return_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Seed, params, r.Days, r.OpeningPutValue, r.InitialValue, r.FinalValue,
		r.MinValue, r.MaxValue, r.TotalInterest, r.RollDay, r.ReturnPct,
	)
	return err
}

func (j *SQLite) RecordDay(runID string, d ledger.DayRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO days
		(run_id, day, date, spot, time_to_expiry, active_strike, put_value, sold_put_value,
		 interest_today, cumulative_interest, total_value, action, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, d.Day, d.Date, d.Spot, d.TimeToExpiry, d.ActiveStrike, d.PutValue, d.SoldPutValue,
		d.InterestToday, d.CumulativeInterest, d.TotalValue, string(d.Action), d.Description,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
