package models

// IncomeStream represents a single source of monthly income
type IncomeStream struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Stability string  `json:"stability,omitempty"` // e.g. "stable", "variable"
}

// Investment represents a single investment holding
type Investment struct {
	Name              string   `json:"name"`
	Amount            float64  `json:"amount"`
	ExpectedReturnPct *float64 `json:"expected_return_pct,omitempty"` // annual %, scenario default when nil
}

// Debt represents a single outstanding liability
type Debt struct {
	Name            string   `json:"name"`
	Amount          float64  `json:"amount"`
	InterestRatePct *float64 `json:"interest_rate_pct,omitempty"` // annual %, default applied when nil
}

// MonthlyOutflow splits monthly spending into needs and wants
type MonthlyOutflow struct {
	Needs float64 `json:"needs"`
	Wants float64 `json:"wants"`
}

// FinancialProfile is the canonical input to the financial engine.
// List fields take precedence over the scalar fallbacks when non-empty.
type FinancialProfile struct {
	MonthlyIncome   float64         `json:"monthly_income"`
	MonthlyExpenses float64         `json:"monthly_expenses"`
	TotalDebt       float64         `json:"total_debt"`
	Age             int             `json:"age"`
	Dependents      int             `json:"dependents"`
	IncomeStreams   []IncomeStream  `json:"income_streams,omitempty"`
	Investments     []Investment    `json:"investments,omitempty"`
	Debts           []Debt          `json:"debts,omitempty"`
	MonthlyOutflow  *MonthlyOutflow `json:"monthly_outflow,omitempty"`
}
