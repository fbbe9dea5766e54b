// Package engine implements the financial-health scoring and
// wealth-projection engine. Every operation is a pure function of its
// inputs: no I/O, no randomness, no hidden state. Concurrent callers may
// invoke it reentrantly without coordination.
package engine

import (
	"github.com/finquest/finquest-api/internal/models"
)

// ScoreLabel classifies the overall health score.
type ScoreLabel string

const (
	ScoreExcellent ScoreLabel = "Excellent"
	ScoreGood      ScoreLabel = "Good"
	ScoreFair      ScoreLabel = "Fair"
	ScoreNeedsWork ScoreLabel = "Needs Work"
)

// AuditStatus classifies a per-category audit score. Its thresholds differ
// from the overall-score labels on purpose: the category audit grades a
// single dimension more strictly than the composite score. Do not merge the
// two tables.
type AuditStatus string

const (
	AuditExcellent AuditStatus = "Excellent"
	AuditGood      AuditStatus = "Good"
	AuditWarning   AuditStatus = "Warning"
	AuditCritical  AuditStatus = "Critical"
)

// Totals are the aggregate figures derived from a profile. List fields win
// over the scalar fallbacks when non-empty.
type Totals struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	TotalInvestments float64 `json:"total_investments"`
	TotalDebt        float64 `json:"total_debt"`
	IncomeMissing    bool    `json:"income_missing"`
}

// HealthMetrics holds the derived ratios and the composite score.
type HealthMetrics struct {
	SavingsRatePct       float64 `json:"savings_rate_pct"`
	DebtToIncomeRatioPct float64 `json:"debt_to_income_ratio_pct"`
	HealthScore          int     `json:"health_score"`
}

// HealthAssessment is the full derived assessment for a profile. It is
// recomputed fresh on every call and never stored.
type HealthAssessment struct {
	Totals          Totals           `json:"totals"`
	Metrics         HealthMetrics    `json:"metrics"`
	ScoreLabel      ScoreLabel       `json:"score_label"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ComputeTotals aggregates a profile into totals. Missing optional fields
// default to zero; negative values pass through untouched, validation is the
// caller's job.
func ComputeTotals(p models.FinancialProfile) Totals {
	t := Totals{
		TotalIncome:   p.MonthlyIncome,
		TotalExpenses: p.MonthlyExpenses,
		TotalDebt:     p.TotalDebt,
	}

	if len(p.IncomeStreams) > 0 {
		t.TotalIncome = 0
		for _, s := range p.IncomeStreams {
			t.TotalIncome += s.Amount
		}
	}

	if p.MonthlyOutflow != nil {
		t.TotalExpenses = p.MonthlyOutflow.Needs + p.MonthlyOutflow.Wants
	}

	for _, inv := range p.Investments {
		t.TotalInvestments += inv.Amount
	}

	if len(p.Debts) > 0 {
		t.TotalDebt = 0
		for _, d := range p.Debts {
			t.TotalDebt += d.Amount
		}
	}

	t.IncomeMissing = t.TotalIncome == 0
	return t
}

// ComputeHealthScore derives the savings rate, debt-to-income ratio and the
// 0-100 composite score. The tier structure and evaluation order are the
// scoring contract; changing them changes every score in the product.
func ComputeHealthScore(t Totals, age int) HealthMetrics {
	var m HealthMetrics

	if t.TotalIncome > 0 {
		m.SavingsRatePct = (t.TotalIncome - t.TotalExpenses) / t.TotalIncome * 100
		m.DebtToIncomeRatioPct = t.TotalDebt / (t.TotalIncome * 12) * 100
	}

	score := 50

	// Savings-rate tier, first match wins.
	switch {
	case m.SavingsRatePct >= 30:
		score += 30
	case m.SavingsRatePct >= 20:
		score += 20
	case m.SavingsRatePct >= 10:
		score += 10
	case m.SavingsRatePct >= 0:
		score += 5
	default:
		score -= 10
	}

	// Debt-to-income tier.
	switch {
	case m.DebtToIncomeRatioPct <= 20:
		score += 20
	case m.DebtToIncomeRatioPct <= 30:
		score += 10
	case m.DebtToIncomeRatioPct <= 40:
		// neutral band
	case m.DebtToIncomeRatioPct <= 50:
		score -= 10
	default:
		score -= 20
	}

	// Age adjustment: time horizon for the young, consolidation credit past 60.
	switch {
	case age < 30:
		score += 10
	case age < 40:
		score += 5
	case age >= 60:
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	m.HealthScore = score
	return m
}

// ClassifyScore maps an overall health score to its label.
func ClassifyScore(score int) ScoreLabel {
	switch {
	case score >= 80:
		return ScoreExcellent
	case score >= 60:
		return ScoreGood
	case score >= 40:
		return ScoreFair
	default:
		return ScoreNeedsWork
	}
}

// ClassifyAuditScore maps a per-category audit score to its status.
func ClassifyAuditScore(score int) AuditStatus {
	switch {
	case score >= 90:
		return AuditExcellent
	case score >= 70:
		return AuditGood
	case score >= 50:
		return AuditWarning
	default:
		return AuditCritical
	}
}

// BuildAssessment runs the full pipeline for a profile: totals, score, label
// and recommendations. UI call sites that used to reimplement this inline
// call here instead.
func BuildAssessment(p models.FinancialProfile) HealthAssessment {
	totals := ComputeTotals(p)
	metrics := ComputeHealthScore(totals, p.Age)
	return HealthAssessment{
		Totals:          totals,
		Metrics:         metrics,
		ScoreLabel:      ClassifyScore(metrics.HealthScore),
		Recommendations: GenerateRecommendations(totals, metrics, p.Age),
	}
}
