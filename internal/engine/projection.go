package engine

import (
	"math"

	"github.com/finquest/finquest-api/internal/models"
)

// Scenario names an annual-return assumption set.
type Scenario string

const (
	ScenarioConservative Scenario = "conservative"
	ScenarioModerate     Scenario = "moderate"
	ScenarioAggressive   Scenario = "aggressive"
)

// Default annual return rates per scenario, in percent. Used for any
// investment that does not carry its own expected return.
const (
	DefaultConservativeRatePct = 8.0
	DefaultModerateRatePct     = 12.0
	DefaultAggressiveRatePct   = 16.0

	// DefaultDebtRatePct is the annual interest assumed for debts without an
	// explicit rate.
	DefaultDebtRatePct = 12.0
)

// ScenarioRates maps each scenario to its default annual return rate.
type ScenarioRates map[Scenario]float64

// DefaultScenarioRates returns the standard scenario rate table.
func DefaultScenarioRates() ScenarioRates {
	return ScenarioRates{
		ScenarioConservative: DefaultConservativeRatePct,
		ScenarioModerate:     DefaultModerateRatePct,
		ScenarioAggressive:   DefaultAggressiveRatePct,
	}
}

// ProjectionPoint is one year's projected position.
type ProjectionPoint struct {
	YearIndex       int     `json:"year_index"`
	ProjectedWealth float64 `json:"projected_wealth"`
	ProjectedDebt   float64 `json:"projected_debt"`
	NetWorth        float64 `json:"net_worth"`
}

// ProjectionSeries is the projected time series for one scenario.
type ProjectionSeries struct {
	Scenario Scenario          `json:"scenario"`
	Points   []ProjectionPoint `json:"points"`
}

// ProjectWealth compounds each investment and debt forward and returns one
// series per scenario, with points for year indexes 0..years inclusive.
//
// Debt compounds against the holder at each debt's own rate; repayment is
// deliberately not modelled, the projection shows the cost of carrying the
// balance untouched. Debt growth is scenario-independent, so only the wealth
// column differs between series.
func ProjectWealth(investments []models.Investment, debts []models.Debt, years int, rates ScenarioRates) []ProjectionSeries {
	if years < 0 {
		years = 0
	}
	if rates == nil {
		rates = DefaultScenarioRates()
	}

	scenarios := []Scenario{ScenarioConservative, ScenarioModerate, ScenarioAggressive}
	series := make([]ProjectionSeries, 0, len(scenarios))

	for _, sc := range scenarios {
		defaultRate := rates[sc]
		points := make([]ProjectionPoint, 0, years+1)

		for year := 0; year <= years; year++ {
			var wealth float64
			for _, inv := range investments {
				rate := defaultRate
				if inv.ExpectedReturnPct != nil {
					rate = *inv.ExpectedReturnPct
				}
				wealth += compound(inv.Amount, rate, year)
			}

			var debt float64
			for _, d := range debts {
				rate := DefaultDebtRatePct
				if d.InterestRatePct != nil {
					rate = *d.InterestRatePct
				}
				debt += compound(d.Amount, rate, year)
			}

			points = append(points, ProjectionPoint{
				YearIndex:       year,
				ProjectedWealth: wealth,
				ProjectedDebt:   debt,
				NetWorth:        wealth - debt,
			})
		}

		series = append(series, ProjectionSeries{Scenario: sc, Points: points})
	}

	return series
}

func compound(amount, annualRatePct float64, years int) float64 {
	return amount * math.Pow(1+annualRatePct/100, float64(years))
}
