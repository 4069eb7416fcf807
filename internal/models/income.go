package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/types"
	"gorm.io/gorm"
)

const (
	DefaultIncomeSource   = "Salary"
	DefaultIncomeCurrency = "ARS"
)

// IncomeEntry represents one income event, e.g. a salary payment.
type IncomeEntry struct {
	DefaultModel
	UserID   string          `json:"userId" gorm:"index"` // Owning user, immutable after creation
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Source   string          `json:"source"`
	Currency string          `json:"currency"`
	Date     types.Date      `json:"date"`
}

// BeforeSave
//   - rejects non-positive amounts
//   - defaults the source, currency and date
func (i *IncomeEntry) BeforeSave(_ *gorm.DB) (err error) {
	if !i.Amount.IsPositive() {
		return ErrIncomeAmountNotPositive
	}

	i.Source = strings.TrimSpace(i.Source)
	if i.Source == "" {
		i.Source = DefaultIncomeSource
	}

	i.Currency = strings.ToUpper(strings.TrimSpace(i.Currency))
	if i.Currency == "" {
		i.Currency = DefaultIncomeCurrency
	}
	if len(i.Currency) != 3 {
		return ErrDocumentInvalidCurrency
	}

	if i.Date.IsZero() {
		i.Date = types.DateOf(time.Now().In(time.UTC))
	}

	return nil
}
