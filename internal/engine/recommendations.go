package engine

import (
	"fmt"

	"github.com/finquest/finquest-api/internal/utils"
)

// Severity tags a recommendation for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Recommendation is a single user-facing advisory entry.
type Recommendation struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// GenerateRecommendations evaluates the advisory rule list against the
// computed metrics. Rules are independent and appended in a fixed order so
// the output is stable for identical inputs.
func GenerateRecommendations(t Totals, m HealthMetrics, age int) []Recommendation {
	recs := make([]Recommendation, 0, 6)

	recs = append(recs, overallRecommendation(m.HealthScore))

	if m.SavingsRatePct < 10 {
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Title:    "Increase your savings rate",
			Description: fmt.Sprintf(
				"You are saving %.1f%% of your income. Aim for at least 20%% by trimming discretionary spending.",
				m.SavingsRatePct),
		})
	} else if m.SavingsRatePct >= 30 {
		recs = append(recs, Recommendation{
			Severity: SeveritySuccess,
			Title:    "Excellent savings rate",
			Description: fmt.Sprintf(
				"You are saving %.1f%% of your income, well above the 20%% benchmark. Keep it up.",
				m.SavingsRatePct),
		})
	}

	if m.DebtToIncomeRatioPct > 40 {
		recs = append(recs, Recommendation{
			Severity: SeverityError,
			Title:    "High debt burden",
			Description: fmt.Sprintf(
				"Your debt is %.1f%% of your annual income. Prioritise paying down high-interest debt before investing further.",
				m.DebtToIncomeRatioPct),
		})
	} else if m.DebtToIncomeRatioPct <= 20 {
		recs = append(recs, Recommendation{
			Severity: SeveritySuccess,
			Title:    "Healthy debt levels",
			Description: fmt.Sprintf(
				"Your debt is only %.1f%% of your annual income, comfortably within the safe range.",
				m.DebtToIncomeRatioPct),
		})
	}

	recs = append(recs, Recommendation{
		Severity: SeverityInfo,
		Title:    "Build an emergency fund",
		Description: fmt.Sprintf(
			"Keep %s (6 months of income) in a liquid emergency fund before locking money into long-term investments.",
			utils.FormatINR(t.TotalIncome*6)),
	})

	recs = append(recs, strategyRecommendation(age))

	return recs
}

// overallRecommendation produces exactly one tier message keyed off the same
// boundaries as ClassifyScore.
func overallRecommendation(score int) Recommendation {
	switch {
	case score >= 80:
		return Recommendation{
			Severity:    SeveritySuccess,
			Title:       "Excellent financial health",
			Description: fmt.Sprintf("Your health score is %d/100. Your finances are in great shape; focus on growing wealth.", score),
		}
	case score >= 60:
		return Recommendation{
			Severity:    SeverityInfo,
			Title:       "Good financial health",
			Description: fmt.Sprintf("Your health score is %d/100. A few targeted improvements would push you into the top tier.", score),
		}
	case score >= 40:
		return Recommendation{
			Severity:    SeverityWarning,
			Title:       "Fair financial health",
			Description: fmt.Sprintf("Your health score is %d/100. Review the items below to strengthen your position.", score),
		}
	default:
		return Recommendation{
			Severity:    SeverityError,
			Title:       "Your finances need work",
			Description: fmt.Sprintf("Your health score is %d/100. Start with the highest-severity items below.", score),
		}
	}
}

// strategyRecommendation suggests an age-banded asset allocation.
func strategyRecommendation(age int) Recommendation {
	var desc string
	switch {
	case age < 35:
		desc = "With a long horizon ahead, an equity-heavy allocation (70-80% equities) maximises compounding."
	case age < 50:
		desc = "A balanced 60:40 equity-to-debt allocation suits your horizon and cushions drawdowns."
	default:
		desc = "Shift towards capital preservation: favour debt instruments and keep equity exposure modest."
	}
	return Recommendation{
		Severity:    SeverityInfo,
		Title:       "Investment strategy for your age",
		Description: desc,
	}
}
