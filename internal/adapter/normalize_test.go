package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProfileArrayForm(t *testing.T) {
	payload := `{
		"monthlyIncome": 75000,
		"monthlyExpenses": 45000,
		"totalDebt": 500000,
		"age": 32,
		"dependents": 1,
		"incomeStreams": [{"name": "Salary", "amt": 60000}, {"name": "Rent", "amount": 15000, "stability": "stable"}],
		"investments": [{"name": "Index fund", "amt": 200000, "expectedReturn": 12}],
		"liabilities": [{"name": "Car loan", "amt": 300000, "interestRate": 9.5}],
		"monthlyOutflow": {"needs": 30000, "wants": 15000}
	}`

	p, err := NormalizeProfile([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, 75000.0, p.MonthlyIncome)
	assert.Equal(t, 32, p.Age)
	assert.Equal(t, 1, p.Dependents)

	require.Len(t, p.IncomeStreams, 2)
	assert.Equal(t, "Salary", p.IncomeStreams[0].Name)
	assert.Equal(t, 60000.0, p.IncomeStreams[0].Amount)
	assert.Equal(t, 15000.0, p.IncomeStreams[1].Amount)
	assert.Equal(t, "stable", p.IncomeStreams[1].Stability)

	require.Len(t, p.Investments, 1)
	require.NotNil(t, p.Investments[0].ExpectedReturnPct)
	assert.Equal(t, 12.0, *p.Investments[0].ExpectedReturnPct)

	require.Len(t, p.Debts, 1)
	require.NotNil(t, p.Debts[0].InterestRatePct)
	assert.Equal(t, 9.5, *p.Debts[0].InterestRatePct)

	require.NotNil(t, p.MonthlyOutflow)
	assert.Equal(t, 30000.0, p.MonthlyOutflow.Needs)
	assert.Equal(t, 15000.0, p.MonthlyOutflow.Wants)
}

func TestNormalizeProfileMapForm(t *testing.T) {
	payload := `{
		"monthlyIncome": 50000,
		"incomeStreams": {"Salary": 40000, "Freelance": 10000},
		"investments": {"PPF": {"amount": 100000, "pct": 7.1}},
		"liabilities": {"Credit card": 80000}
	}`

	p, err := NormalizeProfile([]byte(payload))
	require.NoError(t, err)

	// Map entries come back key-sorted for stable output.
	require.Len(t, p.IncomeStreams, 2)
	assert.Equal(t, "Freelance", p.IncomeStreams[0].Name)
	assert.Equal(t, 10000.0, p.IncomeStreams[0].Amount)
	assert.Equal(t, "Salary", p.IncomeStreams[1].Name)

	require.Len(t, p.Investments, 1)
	assert.Equal(t, "PPF", p.Investments[0].Name)
	assert.Equal(t, 100000.0, p.Investments[0].Amount)
	require.NotNil(t, p.Investments[0].ExpectedReturnPct)
	assert.Equal(t, 7.1, *p.Investments[0].ExpectedReturnPct)

	require.Len(t, p.Debts, 1)
	assert.Equal(t, "Credit card", p.Debts[0].Name)
	assert.Equal(t, 80000.0, p.Debts[0].Amount)
	assert.Nil(t, p.Debts[0].InterestRatePct)
}

func TestNormalizeProfileAliasPrecedence(t *testing.T) {
	payload := `{"investments": [{"name": "Fund", "amt": 100, "amount": 200, "pct": 10, "expectedReturn": 12}]}`

	p, err := NormalizeProfile([]byte(payload))
	require.NoError(t, err)

	require.Len(t, p.Investments, 1)
	assert.Equal(t, 100.0, p.Investments[0].Amount) // amt wins over amount
	assert.Equal(t, 10.0, *p.Investments[0].ExpectedReturnPct)
}

func TestNormalizeProfileMissingListsAndDefaults(t *testing.T) {
	p, err := NormalizeProfile([]byte(`{"monthlyIncome": 30000}`))
	require.NoError(t, err)

	assert.Empty(t, p.IncomeStreams)
	assert.Empty(t, p.Investments)
	assert.Empty(t, p.Debts)
	assert.Nil(t, p.MonthlyOutflow)
	assert.Zero(t, p.Dependents)
}

func TestNormalizeProfileRejectsMalformedInput(t *testing.T) {
	_, err := NormalizeProfile([]byte(`{"incomeStreams": 42}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomeStreams")

	_, err = NormalizeProfile([]byte(`not json`))
	require.Error(t, err)
}
