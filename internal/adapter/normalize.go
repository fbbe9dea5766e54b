// Package adapter normalizes the external client payloads into the
// canonical FinancialProfile. Clients historically send list fields either
// as arrays of objects or as plain name-to-amount maps, with several field
// aliases; everything is resolved here so the engine only ever sees the
// canonical shape.
package adapter

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/finquest/finquest-api/internal/models"
)

type rawOutflow struct {
	Needs float64 `json:"needs"`
	Wants float64 `json:"wants"`
}

type rawProfile struct {
	MonthlyIncome   float64         `json:"monthlyIncome"`
	MonthlyExpenses float64         `json:"monthlyExpenses"`
	TotalDebt       float64         `json:"totalDebt"`
	Age             int             `json:"age"`
	Dependents      int             `json:"dependents"`
	IncomeStreams   json.RawMessage `json:"incomeStreams"`
	Investments     json.RawMessage `json:"investments"`
	Liabilities     json.RawMessage `json:"liabilities"`
	MonthlyOutflow  *rawOutflow     `json:"monthlyOutflow"`
}

// rawEntry is one list element in object form. Amount and rate fields have
// accumulated aliases across client versions; the first non-nil alias wins.
type rawEntry struct {
	Name           string   `json:"name"`
	Amt            *float64 `json:"amt"`
	Amount         *float64 `json:"amount"`
	Pct            *float64 `json:"pct"`
	ExpectedReturn *float64 `json:"expectedReturn"`
	InterestRate   *float64 `json:"interestRate"`
	Stability      string   `json:"stability"`
}

func (e rawEntry) amount() float64 {
	if e.Amt != nil {
		return *e.Amt
	}
	if e.Amount != nil {
		return *e.Amount
	}
	return 0
}

func (e rawEntry) rate() *float64 {
	for _, v := range []*float64{e.Pct, e.ExpectedReturn, e.InterestRate} {
		if v != nil {
			return v
		}
	}
	return nil
}

// NormalizeProfile parses an external profile payload and returns the
// canonical FinancialProfile.
func NormalizeProfile(data []byte) (models.FinancialProfile, error) {
	var raw rawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.FinancialProfile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	p := models.FinancialProfile{
		MonthlyIncome:   raw.MonthlyIncome,
		MonthlyExpenses: raw.MonthlyExpenses,
		TotalDebt:       raw.TotalDebt,
		Age:             raw.Age,
		Dependents:      raw.Dependents,
	}

	if raw.MonthlyOutflow != nil {
		p.MonthlyOutflow = &models.MonthlyOutflow{
			Needs: raw.MonthlyOutflow.Needs,
			Wants: raw.MonthlyOutflow.Wants,
		}
	}

	streams, err := normalizeList(raw.IncomeStreams, "incomeStreams")
	if err != nil {
		return models.FinancialProfile{}, err
	}
	for _, e := range streams {
		p.IncomeStreams = append(p.IncomeStreams, models.IncomeStream{
			Name:      e.Name,
			Amount:    e.amount(),
			Stability: e.Stability,
		})
	}

	investments, err := normalizeList(raw.Investments, "investments")
	if err != nil {
		return models.FinancialProfile{}, err
	}
	for _, e := range investments {
		p.Investments = append(p.Investments, models.Investment{
			Name:              e.Name,
			Amount:            e.amount(),
			ExpectedReturnPct: e.rate(),
		})
	}

	liabilities, err := normalizeList(raw.Liabilities, "liabilities")
	if err != nil {
		return models.FinancialProfile{}, err
	}
	for _, e := range liabilities {
		p.Debts = append(p.Debts, models.Debt{
			Name:            e.Name,
			Amount:          e.amount(),
			InterestRatePct: e.rate(),
		})
	}

	return p, nil
}

// normalizeList accepts either an array of entry objects or a plain
// name-to-amount map and returns entries in a stable order (array order, or
// key-sorted for maps).
func normalizeList(raw json.RawMessage, field string) ([]rawEntry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var entries []rawEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}

	var kv map[string]json.RawMessage
	if err := json.Unmarshal(raw, &kv); err != nil {
		return nil, fmt.Errorf("field %s: expected array or object, got %s", field, snippet(raw))
	}

	keys := sortedKeys(kv)
	entries = make([]rawEntry, 0, len(kv))
	for _, name := range keys {
		v := kv[name]

		var amount float64
		if err := json.Unmarshal(v, &amount); err == nil {
			entries = append(entries, rawEntry{Name: name, Amount: &amount})
			continue
		}

		var nested rawEntry
		if err := json.Unmarshal(v, &nested); err != nil {
			return nil, fmt.Errorf("field %s: entry %q is neither a number nor an object", field, name)
		}
		nested.Name = name
		entries = append(entries, nested)
	}
	return entries, nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func snippet(raw json.RawMessage) string {
	s := string(raw)
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
