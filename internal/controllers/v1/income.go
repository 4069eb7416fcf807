package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/auth"
	"github.com/tolva-app/backend/internal/httputil"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/types"
)

// IncomeEditable contains the fields a caller can set on an income entry.
type IncomeEditable struct {
	Amount   decimal.Decimal `json:"amount"`
	Source   string          `json:"source"`
	Currency string          `json:"currency"`
	Date     *types.Date     `json:"date"`
}

// IncomeUpdate is the partial update payload for an income entry.
type IncomeUpdate struct {
	Amount   *decimal.Decimal `json:"amount"`
	Source   *string          `json:"source"`
	Currency *string          `json:"currency"`
	Date     *types.Date      `json:"date"`
}

// IncomeResponse is the API response for a single income entry.
type IncomeResponse struct {
	Data models.IncomeEntry `json:"data"`
}

// IncomeListResponse is the API response for a list of income entries.
type IncomeListResponse struct {
	Data []models.IncomeEntry `json:"data"`
}

// RegisterIncomeRoutes registers the routes for income entries with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetIncomeEntries)
		r.POST("", CreateIncomeEntry)
	}

	// Entry with ID
	{
		r.OPTIONS("/:id", httputil.OptionsPatchDelete)
		r.PATCH("/:id", UpdateIncomeEntry)
		r.DELETE("/:id", DeleteIncomeEntry)
	}
}

// getIncomeResource loads the income entry from the URI and verifies that
// it belongs to the authenticated user.
func getIncomeResource(c *gin.Context) (models.IncomeEntry, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return models.IncomeEntry{}, false
	}

	var entry models.IncomeEntry
	err := models.DB.First(&entry, "id = ?", uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.IncomeEntry{}, false
	}

	if entry.UserID != auth.UserID(c) {
		c.JSON(http.StatusForbidden, httpError{Error: errNotResourceOwner.Error()})
		return models.IncomeEntry{}, false
	}

	return entry, true
}

// CreateIncomeEntry creates a new income entry for the authenticated user.
func CreateIncomeEntry(c *gin.Context) {
	var editable IncomeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	entry := models.IncomeEntry{
		UserID:   auth.UserID(c),
		Amount:   editable.Amount,
		Source:   editable.Source,
		Currency: editable.Currency,
	}
	if editable.Date != nil {
		entry.Date = *editable.Date
	}

	err := models.DB.Create(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, IncomeResponse{Data: entry})
}

// GetIncomeEntries returns the authenticated user's income entries,
// newest date first.
func GetIncomeEntries(c *gin.Context) {
	var entries []models.IncomeEntry
	err := models.DB.
		Where(&models.IncomeEntry{UserID: auth.UserID(c)}).
		Order("date desc").
		Find(&entries).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, IncomeListResponse{Data: entries})
}

// UpdateIncomeEntry applies a partial update to an income entry.
func UpdateIncomeEntry(c *gin.Context) {
	entry, ok := getIncomeResource(c)
	if !ok {
		return
	}

	setFields, err := httputil.GetBodyFields(c, IncomeUpdate{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var update IncomeUpdate
	if err = httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	set := make(map[string]bool, len(setFields))
	for _, field := range setFields {
		set[field] = true
	}

	if set["amount"] && update.Amount != nil {
		entry.Amount = *update.Amount
	}
	if set["source"] && update.Source != nil {
		entry.Source = *update.Source
	}
	if set["currency"] && update.Currency != nil {
		entry.Currency = *update.Currency
	}
	if set["date"] && update.Date != nil {
		entry.Date = *update.Date
	}

	err = models.DB.Save(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, IncomeResponse{Data: entry})
}

// DeleteIncomeEntry deletes an income entry.
func DeleteIncomeEntry(c *gin.Context) {
	entry, ok := getIncomeResource(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
