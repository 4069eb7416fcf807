package v1

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/types"
)

// DocumentEditable contains the fields a caller can set when creating a
// document. A manual entry sends no storageUrl and sets manualEntry.
type DocumentEditable struct {
	FileName    string              `json:"fileName"`
	StorageURL  string              `json:"storageUrl"`
	Provider    string              `json:"provider"`
	ProviderID  string              `json:"providerId"`
	Category    string              `json:"category"`
	Amount      *decimal.Decimal    `json:"amount"`
	TotalAmount *decimal.Decimal    `json:"totalAmount"`
	Currency    string              `json:"currency"`
	DueDate     *types.Date         `json:"dueDate"`
	IssueDate   *types.Date         `json:"issueDate"`
	PeriodStart *types.Date         `json:"periodStart"`
	PeriodEnd   *types.Date         `json:"periodEnd"`
	Status      string              `json:"status"`
	ManualEntry bool                `json:"manualEntry"`
	TextExtract string              `json:"textExtract"`
	HoaDetails  *billing.HoaDetails `json:"hoaDetails"`
	UploadedAt  time.Time           `json:"uploadedAt"`
}

// model returns the Document the editable represents, owned by userID.
// An unknown or missing category is classified from the provider hints.
func (editable DocumentEditable) model(userID string) models.Document {
	category := billing.Category(editable.Category)
	if !category.Valid() {
		category = billing.Classify(editable.ProviderID, editable.Category, editable.Provider)
	}

	return models.Document{
		UserID:      userID,
		FileName:    editable.FileName,
		StorageURL:  editable.StorageURL,
		Provider:    editable.Provider,
		ProviderID:  editable.ProviderID,
		Category:    category,
		Amount:      editable.Amount,
		TotalAmount: editable.TotalAmount,
		Currency:    editable.Currency,
		DueDate:     editable.DueDate,
		IssueDate:   editable.IssueDate,
		PeriodStart: editable.PeriodStart,
		PeriodEnd:   editable.PeriodEnd,
		Status:      models.Status(editable.Status),
		ManualEntry: editable.ManualEntry,
		TextExtract: editable.TextExtract,
		HoaDetails:  editable.HoaDetails,
		UploadedAt:  editable.UploadedAt,
	}
}

// DocumentResponse is the API response for a single document.
type DocumentResponse struct {
	Data models.Document `json:"data"`
}

// DocumentListResponse is the API response for a list of documents.
type DocumentListResponse struct {
	Data []models.Document `json:"data"`
}
