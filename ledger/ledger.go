// Package ledger keeps the ordered per-day outcome of one hedging run.
package ledger

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"
)

// Action is the decision taken on a simulated day.
type Action string

const (
	Hold Action = "HOLD"
	Roll Action = "ROLL"
)

// DayRecord is the outcome of one simulated day.
type DayRecord struct {
	Day          int
	Date         time.Time
	Spot         float64
	TimeToExpiry float64 // years, negative past the option horizon

	// ActiveStrike is the strike in force after the day's decision.
	ActiveStrike float64
	PutValue     float64

	InterestToday      float64
	CumulativeInterest float64
	TotalValue         float64

	Action      Action
	Description string

	// SoldPutValue is what the outgoing puts were worth on a roll day. It is
	// reported only and never counted in TotalValue.
	SoldPutValue float64
}

var (
	ErrSealed     = errors.New("ledger is sealed")
	ErrOutOfOrder = errors.New("day out of order")
)

// Ledger is an append-only sequence of DayRecords in day order.
type Ledger struct {
	records []DayRecord
	sealed  bool
}

func New(capacity int) *Ledger {
	return &Ledger{records: make([]DayRecord, 0, max(capacity, 0))}
}

// Append adds the next day. Days must arrive as 0, 1, 2, ...
func (l *Ledger) Append(rec DayRecord) error {
	if l.sealed {
		return ErrSealed
	}
	if rec.Day != len(l.records) {
		return fmt.Errorf("%w: got day %d, want %d", ErrOutOfOrder, rec.Day, len(l.records))
	}
	l.records = append(l.records, rec)
	return nil
}

// Seal stops further appends. It is called once a run finishes.
func (l *Ledger) Seal() { l.sealed = true }

func (l *Ledger) Sealed() bool { return l.sealed }

func (l *Ledger) Len() int { return len(l.records) }

// Records returns a copy of the records in day order.
func (l *Ledger) Records() []DayRecord {
	out := make([]DayRecord, len(l.records))
	copy(out, l.records)
	return out
}

// All iterates the records in day order.
func (l *Ledger) All() iter.Seq2[int, DayRecord] {
	return func(yield func(int, DayRecord) bool) {
		for i, r := range l.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Last returns the most recent record.
func (l *Ledger) Last() (DayRecord, bool) {
	if len(l.records) == 0 {
		return DayRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Summary condenses a run.
type Summary struct {
	Days          int
	InitialValue  float64
	FinalValue    float64
	MinValue      float64
	MaxValue      float64
	TotalInterest float64
	RollDay       int // -1 when the hedge never rolled
	FinalStrike   float64

	// ReturnPct is zero and HasReturn false when InitialValue is zero.
	ReturnPct float64
	HasReturn bool
}

// Summary reports on the records appended so far. initialValue is the capital
// the return is measured against; a zero initialValue leaves the return
// undefined.
func (l *Ledger) Summary(initialValue float64) (Summary, error) {
	if len(l.records) == 0 {
		return Summary{}, errors.New("ledger is empty")
	}
	s := Summary{
		Days:         len(l.records),
		InitialValue: initialValue,
		MinValue:     math.Inf(1),
		MaxValue:     math.Inf(-1),
		RollDay:      -1,
	}
	for _, r := range l.records {
		s.MinValue = math.Min(s.MinValue, r.TotalValue)
		s.MaxValue = math.Max(s.MaxValue, r.TotalValue)
		if r.Action == Roll && s.RollDay < 0 {
			s.RollDay = r.Day
		}
	}
	last := l.records[len(l.records)-1]
	s.FinalValue = last.TotalValue
	s.TotalInterest = last.CumulativeInterest
	s.FinalStrike = last.ActiveStrike

	if roi, err := ReturnOnInvestment(initialValue, s.FinalValue); err == nil {
		s.ReturnPct = roi
		s.HasReturn = true
	}
	return s, nil
}

// ReturnOnInvestment is (final - initial) / initial, in percent.
func ReturnOnInvestment(initial, final float64) (float64, error) {
	if initial == 0 {
		return 0, errors.New("initial investment cannot be zero")
	}
	return (final - initial) / initial * 100, nil
}
