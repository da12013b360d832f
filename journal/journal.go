// journal/journal.go
package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/ledger"
)

// RunRecord describes one finished simulation run.
type RunRecord struct {
	RunID   string
	Created time.Time
	Seed    int64
	Params  config.SimulationConfig

	Days            int
	OpeningPutValue float64
	InitialValue    float64
	FinalValue      float64
	MinValue        float64
	MaxValue        float64
	TotalInterest   float64
	RollDay         int
	ReturnPct       float64
}

// NewRunRecord fills a RunRecord from a ledger summary.
func NewRunRecord(runID string, created time.Time, seed int64, params config.SimulationConfig, openingPut float64, s ledger.Summary) RunRecord {
	return RunRecord{
		RunID:           runID,
		Created:         created,
		Seed:            seed,
		Params:          params,
		Days:            s.Days,
		OpeningPutValue: openingPut,
		InitialValue:    s.InitialValue,
		FinalValue:      s.FinalValue,
		MinValue:        s.MinValue,
		MaxValue:        s.MaxValue,
		TotalInterest:   s.TotalInterest,
		RollDay:         s.RollDay,
		ReturnPct:       s.ReturnPct,
	}
}

// Summary rebuilds the ledger summary the record was made from.
func (r RunRecord) Summary() ledger.Summary {
	strike := r.Params.PutStrike
	if r.RollDay >= 0 {
		strike = r.Params.RollStrike
	}
	return ledger.Summary{
		Days:          r.Days,
		InitialValue:  r.InitialValue,
		FinalValue:    r.FinalValue,
		MinValue:      r.MinValue,
		MaxValue:      r.MaxValue,
		TotalInterest: r.TotalInterest,
		RollDay:       r.RollDay,
		FinalStrike:   strike,
		ReturnPct:     r.ReturnPct,
		HasReturn:     r.InitialValue != 0,
	}
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordDay(runID string, rec ledger.DayRecord) error
	Close() error
}

// WriteLedger records run followed by every day of l.
func WriteLedger(j Journal, run RunRecord, l *ledger.Ledger) error {
	if err := j.RecordRun(run); err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}
	for _, rec := range l.All() {
		if err := j.RecordDay(run.RunID, rec); err != nil {
			return fmt.Errorf("record day %d: %w", rec.Day, err)
		}
	}
	return nil
}

func encodeParams(p config.SimulationConfig) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeParams(s string) (config.SimulationConfig, error) {
	var p config.SimulationConfig
	err := json.Unmarshal([]byte(s), &p)
	return p, err
}
