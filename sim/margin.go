package sim

// BorrowedAmount is the broker loan behind a share position bought on margin.
// It is fixed at the purchase price and never marked to market.
func BorrowedAmount(shares int, price, requirement float64) float64 {
	return float64(shares) * price * (1 - requirement)
}

// DailyInterest is one step's financing cost on borrowed at annualRate.
func DailyInterest(borrowed, annualRate float64, stepsPerYear int) float64 {
	return borrowed * (annualRate / float64(stepsPerYear))
}
