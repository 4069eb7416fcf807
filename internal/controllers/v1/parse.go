package v1

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/parse"
	"github.com/tolva-app/backend/internal/types"
)

// BillParser extracts billing fields from a PDF. Satisfied by
// parse.Parser, tests substitute their own.
type BillParser interface {
	Parse(ctx context.Context, pdf []byte) (billing.ParseResult, error)
}

// billParser is set at startup when extraction is configured. A nil
// parser makes the parse endpoint respond with 503.
var billParser BillParser

// SetBillParser configures the parser the parse endpoint uses.
func SetBillParser(p BillParser) {
	billParser = p
}

// defaultParseTimeout bounds one extraction attempt end to end, the OCR
// and completion calls included.
const defaultParseTimeout = 90 * time.Second

// parseTimeout returns the extraction timeout, PARSE_TIMEOUT overrides
// the default with a Go duration string.
func parseTimeout() time.Duration {
	if v, ok := os.LookupEnv("PARSE_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}

	return defaultParseTimeout
}

// ParseDocument downloads the document's stored PDF, runs extraction and
// writes the extracted fields back onto the document. A failed extraction
// marks the document with the error status so it can be resubmitted.
func ParseDocument(c *gin.Context) {
	document, ok := getDocumentResource(c)
	if !ok {
		return
	}

	if billParser == nil {
		c.JSON(http.StatusServiceUnavailable, httpError{Error: errParserNotConfigured.Error()})
		return
	}

	if document.StorageURL == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errNoStoredFile.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), parseTimeout())
	defer cancel()

	pdf, err := parse.FetchPDF(ctx, document.StorageURL)
	if err != nil {
		markParseFailed(c, document, err)
		return
	}

	result, err := billParser.Parse(ctx, pdf)
	if err != nil {
		markParseFailed(c, document, err)
		return
	}

	update, setFields := parseResultUpdate(result)
	err = document.Reconcile(update, setFields)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{Data: document})
}

// markParseFailed records the failed extraction on the document and
// responds with 502, the failure is on the upstream side.
func markParseFailed(c *gin.Context, document models.Document, cause error) {
	log.Error().
		Str("document", document.ID.String()).
		Err(cause).
		Msg("bill parsing failed")

	document.Status = models.StatusError
	err := models.DB.Save(&document).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusBadGateway, httpError{Error: errParseFailed.Error()})
}

// parseResultUpdate converts an extraction result into a document update.
// Only extracted fields are written, everything else on the document keeps
// its value. The category is always reclassified from the extracted
// provider hints and the status moves to parsed.
func parseResultUpdate(result billing.ParseResult) (models.DocumentUpdate, []string) {
	var update models.DocumentUpdate
	var setFields []string

	if result.Text != nil {
		update.TextExtract = result.Text
		setFields = append(setFields, "textExtract")
	}
	if result.ProviderID != nil {
		update.ProviderID = result.ProviderID
		setFields = append(setFields, "providerId")
	}
	if result.ProviderNameDetected != nil {
		update.Provider = result.ProviderNameDetected
		setFields = append(setFields, "provider")
	}
	if result.TotalAmount != nil {
		update.Amount = result.TotalAmount
		setFields = append(setFields, "amount")
	}
	if result.Currency != nil {
		update.Currency = result.Currency
		setFields = append(setFields, "currency")
	}
	if result.HoaDetails != nil {
		update.HoaDetails = result.HoaDetails
		setFields = append(setFields, "hoaDetails")
	}

	if date := parseDate(result.DueDate); date != nil {
		update.DueDate = date
		setFields = append(setFields, "dueDate")
	}
	if date := parseDate(result.IssueDate); date != nil {
		update.IssueDate = date
		setFields = append(setFields, "issueDate")
	}
	if date := parseDate(result.PeriodStart); date != nil {
		update.PeriodStart = date
		setFields = append(setFields, "periodStart")
	}
	if date := parseDate(result.PeriodEnd); date != nil {
		update.PeriodEnd = date
		setFields = append(setFields, "periodEnd")
	}

	category := string(billing.Classify(
		stringValue(result.ProviderID),
		stringValue(result.Category),
		stringValue(result.ProviderNameDetected),
	))
	update.Category = &category
	setFields = append(setFields, "category")

	parsed := string(models.StatusParsed)
	update.Status = &parsed
	setFields = append(setFields, "status")

	return update, setFields
}

// parseDate parses an extracted date string. Unparseable dates degrade to
// nil rather than failing the whole extraction.
func parseDate(value *string) *types.Date {
	if value == nil {
		return nil
	}

	date, err := types.ParseDate(*value)
	if err != nil || date.IsZero() {
		return nil
	}

	return &date
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
