package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/types"
	"gorm.io/gorm"
)

// Status is the processing state of a document.
type Status string

const (
	StatusPending     Status = "pending"      // Uploaded, extraction not run yet
	StatusParsed      Status = "parsed"       // Extraction succeeded
	StatusNeedsReview Status = "needs_review" // Manual entry or low-confidence extraction
	StatusError       Status = "error"        // Extraction failed
	StatusPaid        Status = "paid"         // Marked as paid by the user
)

var statuses = map[Status]bool{
	StatusPending:     true,
	StatusParsed:      true,
	StatusNeedsReview: true,
	StatusError:       true,
	StatusPaid:        true,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return statuses[s]
}

// Document represents one bill, uploaded as a PDF or entered manually.
type Document struct {
	DefaultModel
	UserID      string              `json:"userId" gorm:"index"` // Owning user, immutable after creation
	FileName    string              `json:"fileName"`
	StorageURL  string              `json:"storageUrl"`
	Provider    string              `json:"provider"`
	ProviderID  string              `json:"providerId"`
	Category    billing.Category    `json:"category"`
	Amount      *decimal.Decimal    `json:"amount" gorm:"type:DECIMAL(20,8)"`
	TotalAmount *decimal.Decimal    `json:"totalAmount" gorm:"type:DECIMAL(20,8)"`
	Currency    string              `json:"currency"`
	DueDate     *types.Date         `json:"dueDate"`
	IssueDate   *types.Date         `json:"issueDate"`
	PeriodStart *types.Date         `json:"periodStart"`
	PeriodEnd   *types.Date         `json:"periodEnd"`
	Status      Status              `json:"status"`
	ManualEntry bool                `json:"manualEntry"`
	TextExtract string              `json:"textExtract"`
	HoaDetails  *billing.HoaDetails `json:"hoaDetails" gorm:"serializer:json"`
	UploadedAt  time.Time           `json:"uploadedAt"`
}

// BeforeSave
//   - trims whitespace from string fields and uppercases the currency
//   - defaults the category, status and upload time
//   - keeps amount and totalAmount in sync when only one is set
func (d *Document) BeforeSave(_ *gorm.DB) (err error) {
	d.FileName = strings.TrimSpace(d.FileName)
	d.StorageURL = strings.TrimSpace(d.StorageURL)
	d.Provider = strings.TrimSpace(d.Provider)
	d.ProviderID = strings.TrimSpace(d.ProviderID)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))

	if d.Currency != "" && len(d.Currency) != 3 {
		return ErrDocumentInvalidCurrency
	}

	if d.Category == "" {
		d.Category = billing.CategoryOther
	}
	if !d.Category.Valid() {
		return ErrDocumentInvalidCategory
	}

	if d.Status == "" {
		// A document with a stored file awaits extraction, a manual entry
		// awaits review.
		if d.StorageURL != "" {
			d.Status = StatusPending
		} else {
			d.Status = StatusNeedsReview
		}
	}
	if !d.Status.Valid() {
		return ErrDocumentInvalidStatus
	}

	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().In(time.UTC)
	} else {
		d.UploadedAt = d.UploadedAt.In(time.UTC)
	}

	if d.Amount == nil && d.TotalAmount != nil {
		d.Amount = d.TotalAmount
	} else if d.TotalAmount == nil && d.Amount != nil {
		d.TotalAmount = d.Amount
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (d *Document) AfterFind(tx *gorm.DB) (err error) {
	err = d.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	d.UploadedAt = d.UploadedAt.In(time.UTC)
	return
}

// EffectiveDate resolves the calendar date a document counts towards:
// the due date when known, then issue date, then the billing period
// bounds, then the upload time.
func (d *Document) EffectiveDate() types.Date {
	for _, date := range []*types.Date{d.DueDate, d.IssueDate, d.PeriodEnd, d.PeriodStart} {
		if date != nil && !date.IsZero() {
			return *date
		}
	}

	return types.DateOf(d.UploadedAt)
}
