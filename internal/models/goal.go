package models

import "time"

// Goal represents a user's stored financial goal state. The short-term and
// long-term targets are kept together because the client round-trips them as
// a single document.
type Goal struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	MonthlyIncome      float64   `json:"monthlyIncome"`
	MonthlyExpenses    float64   `json:"monthlyExpenses"`
	MonthlyInvestment  float64   `json:"monthlyInvestment"`
	ExpectedReturnRate float64   `json:"expectedReturnRate"`
	ShortTermGoalTitle string    `json:"shortTermGoalTitle"`
	ShortTermTarget    float64   `json:"shortTermTarget"`
	ShortTermDeadline  time.Time `json:"shortTermDeadline"`
	LongTermGoalTitle  string    `json:"longTermGoalTitle"`
	LongTermTarget     float64   `json:"longTermTarget"`
	LongTermDeadline   time.Time `json:"longTermDeadline"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
