// Package pricing values European options with the Black-Scholes closed form.
//
// All functions take annualised time to expiry (T), risk free rate (r) and
// volatility (sigma). They are pure and safe to call from anywhere.
package pricing

import "math"

const sqrt2Pi = 2.5066282746310002

// PutPrice returns the Black-Scholes value of one European put.
//
// An expired option (T <= 0) is worth exactly its intrinsic value. With zero
// volatility the underlying grows at the risk free rate, so the put is worth
// the discounted strike less spot, floored at zero.
func PutPrice(spot, strike, T, r, sigma float64) float64 {
	if T <= 0 {
		return math.Max(strike-spot, 0)
	}
	if sigma == 0 {
		return math.Max(strike*math.Exp(-r*T)-spot, 0)
	}

	d1, d2 := d1d2(spot, strike, T, r, sigma)
	return strike*math.Exp(-r*T)*normCDF(-d2) - spot*normCDF(-d1)
}

// CallPrice returns the Black-Scholes value of one European call, with the
// same expiry and zero volatility handling as PutPrice.
func CallPrice(spot, strike, T, r, sigma float64) float64 {
	if T <= 0 {
		return math.Max(spot-strike, 0)
	}
	if sigma == 0 {
		return math.Max(spot-strike*math.Exp(-r*T), 0)
	}

	d1, d2 := d1d2(spot, strike, T, r, sigma)
	return spot*normCDF(d1) - strike*math.Exp(-r*T)*normCDF(d2)
}

// PutDelta is the sensitivity of the put price to spot, in [-1, 0].
func PutDelta(spot, strike, T, r, sigma float64) float64 {
	if T <= 0 || sigma == 0 {
		if spot < strike*math.Exp(-r*math.Max(T, 0)) {
			return -1
		}
		return 0
	}
	d1, _ := d1d2(spot, strike, T, r, sigma)
	return normCDF(d1) - 1
}

// Gamma is shared by puts and calls. Zero once the option has no time value.
func Gamma(spot, strike, T, r, sigma float64) float64 {
	if T <= 0 || sigma == 0 {
		return 0
	}
	d1, _ := d1d2(spot, strike, T, r, sigma)
	return normPDF(d1) / (spot * sigma * math.Sqrt(T))
}

// Vega is the price change for a one point (1%) move in volatility.
func Vega(spot, strike, T, r, sigma float64) float64 {
	if T <= 0 || sigma == 0 {
		return 0
	}
	d1, _ := d1d2(spot, strike, T, r, sigma)
	return spot * math.Sqrt(T) * normPDF(d1) / 100
}

func d1d2(spot, strike, T, r, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(spot/strike) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
