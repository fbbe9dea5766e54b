package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesOf(recs []Recommendation) []string {
	titles := make([]string, len(recs))
	for i, r := range recs {
		titles[i] = r.Title
	}
	return titles
}

func TestGenerateRecommendationsLowSavingsHighDebt(t *testing.T) {
	totals := Totals{TotalIncome: 50000, TotalExpenses: 48000, TotalDebt: 400000}
	m := ComputeHealthScore(totals, 42)
	recs := GenerateRecommendations(totals, m, 42)

	titles := titlesOf(recs)
	assert.Contains(t, titles, "Increase your savings rate")
	assert.Contains(t, titles, "High debt burden")
	assert.NotContains(t, titles, "Excellent savings rate")
	assert.NotContains(t, titles, "Healthy debt levels")

	// Percentages are interpolated to one decimal.
	var savings Recommendation
	for _, r := range recs {
		if r.Title == "Increase your savings rate" {
			savings = r
		}
	}
	assert.Equal(t, SeverityWarning, savings.Severity)
	assert.Contains(t, savings.Description, "4.0%")
}

func TestGenerateRecommendationsHealthyProfile(t *testing.T) {
	totals := Totals{TotalIncome: 100000, TotalExpenses: 60000, TotalDebt: 100000}
	m := ComputeHealthScore(totals, 28)
	recs := GenerateRecommendations(totals, m, 28)

	titles := titlesOf(recs)
	assert.Contains(t, titles, "Excellent savings rate")
	assert.Contains(t, titles, "Healthy debt levels")
}

func TestGenerateRecommendationsStableOrderAndInvariants(t *testing.T) {
	totals := Totals{TotalIncome: 75000, TotalExpenses: 45000, TotalDebt: 500000}
	m := ComputeHealthScore(totals, 32)

	first := GenerateRecommendations(totals, m, 32)
	second := GenerateRecommendations(totals, m, 32)
	require.Equal(t, first, second)

	// Exactly one overall-tier entry, always first.
	assert.Contains(t, first[0].Title, "financial health")

	// Emergency fund entry always present with the 6x income target.
	var fund Recommendation
	for _, r := range first {
		if r.Title == "Build an emergency fund" {
			fund = r
		}
	}
	require.NotEmpty(t, fund.Description)
	assert.Equal(t, SeverityInfo, fund.Severity)
	assert.Contains(t, fund.Description, "₹4,50,000")

	// Strategy entry is always last.
	assert.Equal(t, "Investment strategy for your age", first[len(first)-1].Title)
}

func TestStrategyRecommendationAgeBands(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{25, "equity-heavy"},
		{34, "equity-heavy"},
		{35, "60:40"},
		{49, "60:40"},
		{50, "capital preservation"},
		{68, "capital preservation"},
	}
	for _, tt := range tests {
		desc := strategyRecommendation(tt.age).Description
		assert.True(t, strings.Contains(desc, tt.want), "age=%d desc=%q", tt.age, desc)
	}
}
