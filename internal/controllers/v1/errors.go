package v1

import (
	"errors"
	"net/http"

	"github.com/tolva-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errNotResourceOwner   = errors.New("you do not have access to this resource")
	errMonthNotSetInQuery = errors.New("the month query parameter must be set in YYYY-MM format")
)

// Parse errors
var (
	errParserNotConfigured = errors.New("bill parsing is not configured on this server")
	errNoStoredFile        = errors.New("this document has no stored file to parse")
	errParseFailed         = errors.New("bill parsing failed, you can resubmit the document")
)
