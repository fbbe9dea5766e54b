package service

import (
	"fmt"

	"github.com/finquest/finquest-api/internal/engine"
	"github.com/finquest/finquest-api/internal/models"
)

// Per-category audit rows for the locally assembled analysis. Category
// scores use the audit status table (90/70/50), which grades stricter than
// the overall-score labels.

func savingsAudit(m engine.HealthMetrics) models.AuditEntry {
	score := clampScore(int(50 + m.SavingsRatePct*1.5))
	return models.AuditEntry{
		Category:    "Savings",
		Status:      string(engine.ClassifyAuditScore(score)),
		Score:       score,
		Reason:      fmt.Sprintf("You save %.1f%% of your monthly income.", m.SavingsRatePct),
		Improvement: "Automate a fixed transfer to savings on payday before discretionary spending.",
		Impact:      "A higher savings rate compounds into every other goal.",
	}
}

func debtAudit(m engine.HealthMetrics) models.AuditEntry {
	score := clampScore(int(100 - m.DebtToIncomeRatioPct))
	return models.AuditEntry{
		Category:    "Debt",
		Status:      string(engine.ClassifyAuditScore(score)),
		Score:       score,
		Reason:      fmt.Sprintf("Outstanding debt is %.1f%% of your annual income.", m.DebtToIncomeRatioPct),
		Improvement: "Pay down the highest-interest balance first while keeping minimums on the rest.",
		Impact:      "Interest on carried debt outpaces most investment returns.",
	}
}

func emergencyFundAudit(t engine.Totals) models.AuditEntry {
	target := t.TotalIncome * 6
	coverage := 0.0
	if target > 0 {
		coverage = t.TotalInvestments / target
	}
	score := clampScore(int(coverage * 100))
	return models.AuditEntry{
		Category:    "Emergency Fund",
		Status:      string(engine.ClassifyAuditScore(score)),
		Score:       score,
		Reason:      fmt.Sprintf("Liquid holdings cover %.0f%% of a 6-month income buffer.", coverage*100),
		Improvement: "Park the buffer in liquid instruments you can draw on within a day.",
		Impact:      "Six months of runway keeps a job loss or medical bill from becoming debt.",
	}
}

func investmentAudit(t engine.Totals, annualIncome float64) models.AuditEntry {
	ratio := 0.0
	if annualIncome > 0 {
		ratio = t.TotalInvestments / annualIncome
	}
	score := clampScore(int(ratio * 200))
	return models.AuditEntry{
		Category:    "Investments",
		Status:      string(engine.ClassifyAuditScore(score)),
		Score:       score,
		Reason:      fmt.Sprintf("Invested assets equal %.1fx your annual income.", ratio),
		Improvement: "Increase systematic monthly investing as income grows.",
		Impact:      "Invested capital is what eventually replaces earned income.",
	}
}

func riskAssessment(m engine.HealthMetrics, age int) string {
	label := engine.ClassifyScore(m.HealthScore)
	switch label {
	case engine.ScoreExcellent:
		return fmt.Sprintf("Low risk profile at age %d: strong savings and contained debt leave room for growth assets.", age)
	case engine.ScoreGood:
		return fmt.Sprintf("Moderate risk profile at age %d: finances are stable, but debt or savings have room to improve.", age)
	case engine.ScoreFair:
		return fmt.Sprintf("Elevated risk profile at age %d: a thin margin between income and obligations.", age)
	default:
		return fmt.Sprintf("High risk profile at age %d: negative savings or heavy debt load needs attention before investing.", age)
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
