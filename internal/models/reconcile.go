package models

import (
	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/types"
)

// DocumentUpdate is the set of fields a caller may change on a document.
// All fields are pointers so that an explicit null in the request body can
// be told apart from an absent key, which is what the setFields list of
// Reconcile carries.
type DocumentUpdate struct {
	FileName    *string             `json:"fileName"`
	StorageURL  *string             `json:"storageUrl"`
	Provider    *string             `json:"provider"`
	ProviderID  *string             `json:"providerId"`
	Category    *string             `json:"category"`
	Amount      *decimal.Decimal    `json:"amount"`
	TotalAmount *decimal.Decimal    `json:"totalAmount"`
	Currency    *string             `json:"currency"`
	DueDate     *types.Date         `json:"dueDate"`
	IssueDate   *types.Date         `json:"issueDate"`
	PeriodStart *types.Date         `json:"periodStart"`
	PeriodEnd   *types.Date         `json:"periodEnd"`
	Status      *string             `json:"status"`
	TextExtract *string             `json:"textExtract"`
	HoaDetails  *billing.HoaDetails `json:"hoaDetails"`
}

// Reconcile applies a partial update to the document, maintains the
// cross-field consistency rules for HOA documents, persists the result and
// refreshes the HOA summary aggregate. setFields lists the JSON keys that
// were present in the request body; fields absent from it are left
// untouched even when their DocumentUpdate value is nil.
func (d *Document) Reconcile(update DocumentUpdate, setFields []string) error {
	set := make(map[string]bool, len(setFields))
	for _, field := range setFields {
		set[field] = true
	}

	if set["fileName"] {
		d.FileName = stringValue(update.FileName)
	}
	if set["storageUrl"] {
		d.StorageURL = stringValue(update.StorageURL)
	}
	if set["provider"] {
		d.Provider = stringValue(update.Provider)
	}
	if set["providerId"] {
		d.ProviderID = stringValue(update.ProviderID)
	}
	if set["currency"] {
		d.Currency = stringValue(update.Currency)
	}
	if set["textExtract"] {
		d.TextExtract = stringValue(update.TextExtract)
	}

	// An explicit category wins, anything else preserves the existing one.
	// A null category never clears.
	if set["category"] && update.Category != nil && *update.Category != "" {
		d.Category = billing.Category(*update.Category)
	}

	if set["status"] && update.Status != nil && *update.Status != "" {
		d.Status = Status(*update.Status)
	}

	if set["dueDate"] {
		d.DueDate = update.DueDate
	}
	if set["issueDate"] {
		d.IssueDate = update.IssueDate
	}
	if set["periodStart"] {
		d.PeriodStart = update.PeriodStart
	}
	if set["periodEnd"] {
		d.PeriodEnd = update.PeriodEnd
	}

	// A top level amount is mirrored into totalAmount, dashboard
	// aggregation reads totalAmount.
	amountTouched := set["amount"] && update.Amount != nil
	if set["amount"] {
		d.Amount = update.Amount
		d.TotalAmount = update.Amount
	}
	if set["totalAmount"] && !set["amount"] {
		d.TotalAmount = update.TotalAmount
	}

	if d.Category == billing.CategoryHoa {
		d.syncHoaFields(update, set, amountTouched)
	}

	err := DB.Save(d).Error
	if err != nil {
		return err
	}

	return d.SyncHoaSummary()
}

// syncHoaFields keeps the top level amount and the nested HOA
// totalToPayUnit consistent. Whichever side the caller explicitly touched
// is authoritative for this update.
func (d *Document) syncHoaFields(update DocumentUpdate, set map[string]bool, amountTouched bool) {
	var patch *billing.HoaDetails
	if set["hoaDetails"] {
		patch = update.HoaDetails
	}

	merged := billing.MergeHoaDetails(d.HoaDetails, patch)
	if merged == nil && amountTouched {
		merged = &billing.HoaDetails{}
	}
	if merged == nil {
		return
	}

	if amountTouched {
		merged.TotalToPayUnit = d.Amount
	} else if merged.TotalToPayUnit != nil && (d.Amount == nil || !d.Amount.Equal(*merged.TotalToPayUnit)) {
		d.Amount = merged.TotalToPayUnit
		d.TotalAmount = merged.TotalToPayUnit
	}

	// A known period start invalidates the cached period key and label,
	// normalization recomputes both from year and month.
	if d.PeriodStart != nil && !d.PeriodStart.IsZero() {
		year := d.PeriodStart.Year()
		month := int(d.PeriodStart.Month())
		merged.PeriodYear = &year
		merged.PeriodMonth = &month
		merged.PeriodKey = nil
		merged.PeriodLabel = nil
	}

	d.HoaDetails = billing.NormalizeHoaDetails(merged)
}

// SyncHoaSummary refreshes the per-period summary aggregate from the
// document. Non-HOA documents are a no-op. Documents without HOA details
// fall back to their top level amount and the default building and unit
// codes so a minimal manual entry still feeds the aggregate.
func (d *Document) SyncHoaSummary() error {
	if d.Category != billing.CategoryHoa {
		return nil
	}

	details := d.HoaDetails
	if details == nil {
		details = &billing.HoaDetails{TotalToPayUnit: d.TotalAmount}

		if d.PeriodStart != nil && !d.PeriodStart.IsZero() {
			year := d.PeriodStart.Year()
			month := int(d.PeriodStart.Month())
			details.PeriodYear = &year
			details.PeriodMonth = &month
		}
	}

	return UpsertHoaSummary(d.UserID, details)
}
