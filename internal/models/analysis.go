package models

// AuditEntry is one per-category row of the financial audit. Audit status
// uses its own 90/70/50 threshold table, distinct from the overall score
// labels.
type AuditEntry struct {
	Category    string `json:"category"`
	Status      string `json:"status"`
	Score       int    `json:"score"`
	Reason      string `json:"reason"`
	Improvement string `json:"improvement"`
	Impact      string `json:"impact"`
}

// WealthProjection holds per-scenario projected wealth series aligned with
// the years axis.
type WealthProjection struct {
	Years        []string  `json:"years"`
	Conservative []float64 `json:"conservative"`
	Moderate     []float64 `json:"moderate"`
	Aggressive   []float64 `json:"aggressive"`
}

// AnalysisResponse is the full analysis document returned to clients. The
// external advisory service produces the same shape; when it is unreachable
// or returns malformed data, the service assembles this locally from the
// engine's own output.
type AnalysisResponse struct {
	OverallScore     int              `json:"overallScore"`
	Audit            []AuditEntry     `json:"audit"`
	CashflowAnalysis string           `json:"cashflow_analysis"`
	DebtOverview     string           `json:"debt_overview"`
	WealthProjection WealthProjection `json:"wealth_projection"`
	RiskAssessment   string           `json:"risk_assessment"`
}
