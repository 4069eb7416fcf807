package parse

import (
	"errors"
)

var (
	ErrInvalidPDF       = errors.New("file is not a PDF document")
	ErrPDFTooLarge      = errors.New("PDF exceeds the maximum size for inline text detection")
	ErrNoCompletionText = errors.New("no text payload in model response")
)
