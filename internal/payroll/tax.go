package payroll

import (
	"fmt"
	"math"
)

// Bracket is one progressive tax bracket: income between the previous
// bracket's limit and this one's is taxed at this marginal rate. The top
// bracket's limit is +Inf.
type Bracket struct {
	Limit float64
	Rate  float64
}

// DefaultBrackets returns the standard bracket table: 10% to 1000, 12% to
// 3000, 22% to 5000, 24% above.
func DefaultBrackets() []Bracket {
	return []Bracket{
		{Limit: 1000, Rate: 0.10},
		{Limit: 3000, Rate: 0.12},
		{Limit: 5000, Rate: 0.22},
		{Limit: math.Inf(1), Rate: 0.24},
	}
}

func validateBrackets(brackets []Bracket) error {
	previous := 0.0
	for i, b := range brackets {
		if b.Limit <= previous {
			return fmt.Errorf("tax bracket %d: limit %v is not above previous limit %v", i, b.Limit, previous)
		}
		if b.Rate < 0 || b.Rate >= 1 {
			return fmt.Errorf("tax bracket %d: rate %v out of range [0,1)", i, b.Rate)
		}
		previous = b.Limit
	}
	if !math.IsInf(brackets[len(brackets)-1].Limit, 1) {
		return fmt.Errorf("final tax bracket must be unbounded")
	}
	return nil
}

// ProgressiveTax computes income tax by walking the brackets in ascending
// order: each bracket taxes only the slice of gross that falls inside it at
// that bracket's marginal rate, never the whole amount at the top rate.
// The result is rounded to two decimal places.
func (c *Calculator) ProgressiveTax(gross float64) float64 {
	tax := 0.0
	previousLimit := 0.0

	for _, bracket := range brackets(c.cfg) {
		if gross <= previousLimit {
			break
		}
		taxable := math.Min(gross-previousLimit, bracket.Limit-previousLimit)
		tax += taxable * bracket.Rate
		previousLimit = bracket.Limit

		if gross <= bracket.Limit {
			break
		}
	}

	return round2(tax)
}

func brackets(cfg Config) []Bracket {
	if len(cfg.Brackets) == 0 {
		return DefaultBrackets()
	}
	return cfg.Brackets
}
