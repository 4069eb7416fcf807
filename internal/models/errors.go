package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrDocumentInvalidCategory = errors.New("category must be one of the supported bill categories")
	ErrDocumentInvalidStatus   = errors.New("status must be one of: pending, parsed, needs_review, error, paid")
	ErrDocumentInvalidCurrency = errors.New("currency must be a three-letter code")
	ErrIncomeAmountNotPositive = errors.New("income amount must be positive")
)
