package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/ledger"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/pricing"
	"go.uber.org/zap"
)

// Scheduler walks a price path one day at a time, holding a protective put
// and rolling it to a higher strike the first time spot reaches the trigger.
type Scheduler struct {
	cfg       config.SimulationConfig
	borrowed  float64
	dailyRate float64
	start     time.Time
	log       *zap.Logger
}

type Option func(*Scheduler)

// WithLogger sets the logger used for roll and per-day events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStartDate dates day 0 on the first business day on or after t.
func WithStartDate(t time.Time) Option {
	return func(s *Scheduler) { s.start = t }
}

// New validates cfg and returns a Scheduler bound to a copy of it.
func New(cfg config.SimulationConfig, opts ...Option) (*Scheduler, error) {
	cfg, err := config.NewSimulation(cfg)
	if err != nil {
		return nil, err
	}

	borrowed := BorrowedAmount(cfg.NumShares, cfg.InitialPrice, cfg.MarginRequirement)
	s := &Scheduler{
		cfg:       cfg,
		borrowed:  borrowed,
		dailyRate: DailyInterest(borrowed, cfg.MarginRate, cfg.StepsPerYear),
		start:     time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Scheduler) Config() config.SimulationConfig { return s.cfg }

// Borrowed is the margin loan, fixed from the initial price.
func (s *Scheduler) Borrowed() float64 { return s.borrowed }

// InitialState is the hedge before day 0: puts held at the initial strike.
func (s *Scheduler) InitialState() State {
	return State{Phase: HeldAtInitialStrike, ActiveStrike: s.cfg.PutStrike}
}

// OpeningPutValue is the cost of the initial puts, bought at the initial
// price with the full horizon left.
func (s *Scheduler) OpeningPutValue() float64 {
	T := float64(s.cfg.HorizonDays) * s.cfg.StepYears()
	return s.putValue(s.cfg.InitialPrice, s.cfg.PutStrike, T)
}

// InitialPositionValue is the shares plus the opening puts at inception.
func (s *Scheduler) InitialPositionValue() float64 {
	return float64(s.cfg.NumShares)*s.cfg.InitialPrice + s.OpeningPutValue()
}

// TimeToExpiry is the annualised time left on the puts on day. It turns
// negative once day passes the horizon.
func (s *Scheduler) TimeToExpiry(day int) float64 {
	return float64(s.cfg.HorizonDays-day) * s.cfg.StepYears()
}

func (s *Scheduler) putValue(spot, strike, T float64) float64 {
	price := pricing.PutPrice(spot, strike, T, s.cfg.RiskFreeRate, s.cfg.Volatility)
	return float64(s.cfg.NumPutContracts) * float64(s.cfg.ContractMultiplier) * price
}

// Step applies one day's transition. It returns the next state and the day's
// record, or a *NumericalError and the unchanged state if any quantity is
// not finite.
func (s *Scheduler) Step(st State, day int, spot float64) (State, ledger.DayRecord, error) {
	if math.IsNaN(spot) || math.IsInf(spot, 0) || spot <= 0 {
		return st, ledger.DayRecord{}, &NumericalError{Day: day, Quantity: "spot", Value: spot}
	}

	next := st
	T := s.TimeToExpiry(day)

	interest := s.dailyRate
	next.CumulativeInterest += interest

	rec := ledger.DayRecord{
		Day:           day,
		Spot:          spot,
		TimeToExpiry:  T,
		InterestToday: interest,
	}

	if rollTriggered(st, spot, s.cfg.TriggerPrice) {
		sold := s.putValue(spot, s.cfg.PutStrike, T)
		next.Phase = Rolled
		next.ActiveStrike = s.cfg.RollStrike
		bought := s.putValue(spot, next.ActiveStrike, T)

		rec.Action = ledger.Roll
		rec.PutValue = bought
		rec.SoldPutValue = sold
		rec.Description = fmt.Sprintf("Day %d: sold puts at K=$%.2f for $%.2f, bought puts at K=$%.2f for $%.2f",
			day, s.cfg.PutStrike, sold, next.ActiveStrike, bought)

		s.log.Info("trigger price reached, rolled puts",
			zap.Int("day", day),
			zap.Float64("spot", spot),
			zap.Float64("sold_strike", s.cfg.PutStrike),
			zap.Float64("sold_value", sold),
			zap.Float64("bought_strike", next.ActiveStrike),
			zap.Float64("bought_value", bought),
		)
	} else {
		rec.Action = ledger.Hold
		rec.PutValue = s.putValue(spot, next.ActiveStrike, T)
		rec.Description = "No action needed"
	}

	rec.ActiveStrike = next.ActiveStrike
	rec.CumulativeInterest = next.CumulativeInterest
	rec.TotalValue = float64(s.cfg.NumShares)*spot + rec.PutValue - next.CumulativeInterest

	checks := []struct {
		name string
		v    float64
	}{
		{"put value", rec.PutValue},
		{"sold put value", rec.SoldPutValue},
		{"margin interest", rec.CumulativeInterest},
		{"total position value", rec.TotalValue},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return st, ledger.DayRecord{}, &NumericalError{Day: day, Quantity: c.name, Value: c.v}
		}
	}

	s.log.Debug("day simulated",
		zap.Int("day", day),
		zap.Float64("spot", spot),
		zap.Float64("strike", rec.ActiveStrike),
		zap.Float64("put_value", rec.PutValue),
		zap.Float64("total_value", rec.TotalValue),
		zap.String("action", string(rec.Action)),
	)

	return next, rec, nil
}

// Run simulates every day of path. On a numerical error it stops and returns
// the ledger holding the days completed so far together with the error.
// A finished ledger is sealed.
func (s *Scheduler) Run(path market.Path) (*ledger.Ledger, error) {
	if path.Len() != s.cfg.SimulationSteps {
		return nil, fmt.Errorf("%w: path has %d steps, want %d",
			config.ErrInvalidParameter, path.Len(), s.cfg.SimulationSteps)
	}

	dates := market.BusinessDays(s.start, path.Len())
	l := ledger.New(path.Len())
	st := s.InitialState()

	for day := 0; day < path.Len(); day++ {
		next, rec, err := s.Step(st, day, path.At(day))
		if err != nil {
			s.log.Error("run aborted", zap.Int("day", day), zap.Error(err))
			return l, err
		}
		rec.Date = dates[day]
		if err := l.Append(rec); err != nil {
			return l, err
		}
		st = next
	}
	l.Seal()

	s.log.Info("run complete",
		zap.Int("days", l.Len()),
		zap.String("final_phase", st.Phase.String()),
		zap.Float64("margin_interest", st.CumulativeInterest),
	)
	return l, nil
}

// Simulate generates the price path for seed and runs it.
func Simulate(cfg config.SimulationConfig, seed int64, opts ...Option) (*ledger.Ledger, market.Path, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, market.Path{}, err
	}
	path, err := market.GeneratePath(s.cfg, seed)
	if err != nil {
		return nil, market.Path{}, err
	}
	l, err := s.Run(path)
	return l, path, err
}
