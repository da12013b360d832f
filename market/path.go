package market

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/rustyeddy/hedger/config"
)

// ErrNumerical is wrapped when a generated price is not a positive finite number.
var ErrNumerical = errors.New("numerical error")

// Path is a simulated daily price series. It is never modified after
// GeneratePath returns it.
type Path struct {
	prices []float64
	times  []float64 // elapsed years at each step
}

// GeneratePath simulates cfg.SimulationSteps daily prices with geometric
// Brownian motion, driven by a generator seeded with seed. The same cfg and
// seed always produce the same path.
//
// Elapsed time is spread evenly over the option horizon, so step i sits at
// i*HorizonDays/(SimulationSteps-1) days regardless of how many steps are
// simulated. The Brownian term is the running sum of the draws scaled by the
// square root of one step, which means step 0 already carries one shock.
func GeneratePath(cfg config.SimulationConfig, seed int64) (Path, error) {
	if err := cfg.Validate(); err != nil {
		return Path{}, err
	}

	n := cfg.SimulationSteps
	dt := cfg.StepYears()
	times := linspace(0, float64(cfg.HorizonDays)*dt, n)

	rng := rand.New(rand.NewSource(seed))
	drift := cfg.ExpectedReturn - 0.5*cfg.Volatility*cfg.Volatility
	sqrtDt := math.Sqrt(dt)

	prices := make([]float64, n)
	var w float64
	for i := 0; i < n; i++ {
		w += rng.NormFloat64() * sqrtDt
		p := cfg.InitialPrice * math.Exp(drift*times[i]+cfg.Volatility*w)
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return Path{}, fmt.Errorf("%w: price at step %d is %v", ErrNumerical, i, p)
		}
		prices[i] = p
	}

	return Path{prices: prices, times: times}, nil
}

// NewPath wraps an existing price series, e.g. a replayed history.
// Times are left at zero.
func NewPath(prices []float64) (Path, error) {
	if len(prices) == 0 {
		return Path{}, errors.New("empty price path")
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return Path{}, fmt.Errorf("%w: price at step %d is %v", ErrNumerical, i, p)
		}
	}
	cp := make([]float64, len(prices))
	copy(cp, prices)
	return Path{prices: cp, times: make([]float64, len(prices))}, nil
}

func (p Path) Len() int { return len(p.prices) }

func (p Path) At(i int) float64 { return p.prices[i] }

// Time returns the elapsed years used to build step i.
func (p Path) Time(i int) float64 { return p.times[i] }

// Values returns a copy of the prices.
func (p Path) Values() []float64 {
	out := make([]float64, len(p.prices))
	copy(out, p.prices)
	return out
}

// Times returns a copy of the elapsed times.
func (p Path) Times() []float64 {
	out := make([]float64, len(p.times))
	copy(out, p.times)
	return out
}

// Max returns the highest price on the path, or 0 for an empty path.
func (p Path) Max() float64 {
	var m float64
	for i, v := range p.prices {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Min returns the lowest price on the path, or 0 for an empty path.
func (p Path) Min() float64 {
	var m float64
	for i, v := range p.prices {
		if i == 0 || v < m {
			m = v
		}
	}
	return m
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
