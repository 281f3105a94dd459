package payroll

import "math"

// Bracket is one row of the annual PAYG table. Income up to and including Ceiling
// is taxed as Base plus Rate on the amount above Floor.
type Bracket struct {
	Floor   float64
	Ceiling float64
	Base    float64
	Rate    float64
}

var brackets = []Bracket{
	{Floor: 0, Ceiling: 18200, Base: 0, Rate: 0},
	{Floor: 18200, Ceiling: 45000, Base: 0, Rate: 0.19},
	{Floor: 45000, Ceiling: 120000, Base: 5092, Rate: 0.325},
	{Floor: 120000, Ceiling: 180000, Base: 29467, Rate: 0.37},
	{Floor: 180000, Ceiling: math.Inf(1), Base: 51667, Rate: 0.45},
}

// Brackets returns a copy of the annual tax table.
func Brackets() []Bracket {
	out := make([]Bracket, len(brackets))
	copy(out, brackets)
	return out
}

// AnnualTax applies the progressive table to an annual income. Incomes at or
// below zero land in the tax-free bracket.
func AnnualTax(annual float64) float64 {
	if annual <= brackets[0].Ceiling {
		return 0
	}
	for _, b := range brackets[1:] {
		if annual <= b.Ceiling {
			return b.Base + (annual-b.Floor)*b.Rate
		}
	}
	last := brackets[len(brackets)-1]
	return last.Base + (annual-last.Floor)*last.Rate
}

// WeeklyWithholding annualises a weekly gross, taxes it and spreads the result
// back over the year. The result is not rounded.
func WeeklyWithholding(weeklyGross float64) float64 {
	return AnnualTax(weeklyGross*WeeksPerYear) / WeeksPerYear
}
