package engine

import "time"

// Verdict is the goal-feasibility outcome.
type Verdict string

const (
	VerdictOnTrack   Verdict = "OnTrack"
	VerdictShortfall Verdict = "Shortfall"
)

// GoalFeasibility compares the contribution pace required to hit a target by
// its deadline against the actual planned contribution. DeviationPct is the
// raw signed deviation; any display clamping (labels for deviations beyond
// ±100%) belongs to the presentation layer.
type GoalFeasibility struct {
	MonthsRemaining             int     `json:"months_remaining"`
	RequiredMonthlyContribution float64 `json:"required_monthly_contribution"`
	DeviationPct                float64 `json:"deviation_pct"`
	Verdict                     Verdict `json:"verdict"`
}

// EvaluateGoalFeasibility computes the required monthly pace for a target
// and how far the planned contribution deviates from it. A zero target is
// trivially on track. The months remaining clamp to 1 so a past or imminent
// deadline never divides by zero.
func EvaluateGoalFeasibility(targetAmount, monthlyContribution float64, deadline, now time.Time) GoalFeasibility {
	months := monthsBetween(now, deadline)
	if months < 1 {
		months = 1
	}

	if targetAmount == 0 {
		return GoalFeasibility{
			MonthsRemaining: months,
			Verdict:         VerdictOnTrack,
		}
	}

	required := targetAmount / float64(months)
	deviation := (required - monthlyContribution) / required * 100

	verdict := VerdictShortfall
	if deviation <= 0 {
		verdict = VerdictOnTrack
	}

	return GoalFeasibility{
		MonthsRemaining:             months,
		RequiredMonthlyContribution: required,
		DeviationPct:                deviation,
		Verdict:                     verdict,
	}
}

// monthsBetween counts whole calendar months from a to b, partial months
// rounding up so a deadline mid-month still counts its month.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() > a.Day() {
		months++
	}
	return months
}
