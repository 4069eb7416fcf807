package models

import (
	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/types"
)

// CategoryTotal is the spend of one category within a month.
type CategoryTotal struct {
	Category billing.Category `json:"category"`
	Total    decimal.Decimal  `json:"total"`
	Count    int              `json:"count"`
}

// Dashboard summarizes a user's month: spend per category, overall spend
// and overall income.
type Dashboard struct {
	Month       types.Month     `json:"month"`
	Spend       []CategoryTotal `json:"spend"`
	SpendTotal  decimal.Decimal `json:"spendTotal"`
	IncomeTotal decimal.Decimal `json:"incomeTotal"`
}

// DashboardFor computes the dashboard for one user and month. A document
// counts towards the month its effective date falls in, see
// Document.EffectiveDate for the resolution order.
func DashboardFor(userID string, month types.Month) (Dashboard, error) {
	dashboard := Dashboard{
		Month:       month,
		Spend:       []CategoryTotal{},
		SpendTotal:  decimal.Zero,
		IncomeTotal: decimal.Zero,
	}

	var documents []Document
	err := DB.Where(&Document{UserID: userID}).Find(&documents).Error
	if err != nil {
		return Dashboard{}, err
	}

	totals := make(map[billing.Category]*CategoryTotal)
	for _, document := range documents {
		if !month.Contains(document.EffectiveDate()) {
			continue
		}

		amount := decimal.Zero
		if document.TotalAmount != nil {
			amount = *document.TotalAmount
		}

		entry, ok := totals[document.Category]
		if !ok {
			entry = &CategoryTotal{Category: document.Category}
			totals[document.Category] = entry
		}

		entry.Total = entry.Total.Add(amount)
		entry.Count++
		dashboard.SpendTotal = dashboard.SpendTotal.Add(amount)
	}

	// Stable category order for the response
	for _, category := range billing.Categories {
		if entry, ok := totals[category]; ok {
			dashboard.Spend = append(dashboard.Spend, *entry)
		}
	}

	var incomes []IncomeEntry
	err = DB.Where(&IncomeEntry{UserID: userID}).Find(&incomes).Error
	if err != nil {
		return Dashboard{}, err
	}

	for _, income := range incomes {
		if month.Contains(income.Date) {
			dashboard.IncomeTotal = dashboard.IncomeTotal.Add(income.Amount)
		}
	}

	return dashboard, nil
}
