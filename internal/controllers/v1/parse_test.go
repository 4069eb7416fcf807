package v1_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tolva-app/backend/internal/billing"
	v1 "github.com/tolva-app/backend/internal/controllers/v1"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/test"
)

// fakeParser returns a fixed result or error without touching any
// external service.
type fakeParser struct {
	result billing.ParseResult
	err    error
}

func (f *fakeParser) Parse(_ context.Context, _ []byte) (billing.ParseResult, error) {
	return f.result, f.err
}

// pdfServer serves a minimal PDF body for the document's storage URL.
func pdfServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 test"))
	}))
}

func strPtr(s string) *string {
	return &s
}

func (suite *TestSuiteStandard) TestParseNotConfigured() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{
		StorageURL: "https://storage.example.com/bill.pdf",
	})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusServiceUnavailable)
}

func (suite *TestSuiteStandard) TestParseNoStoredFile() {
	v1.SetBillParser(&fakeParser{})

	document := createTestDocument(suite.T(), v1.DocumentEditable{ManualEntry: true})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), r.Body.Bytes()), "no stored file")
}

func (suite *TestSuiteStandard) TestParse() {
	server := pdfServer()
	defer server.Close()

	amount := decimal.NewFromFloat(52345.67)
	v1.SetBillParser(&fakeParser{
		result: billing.ParseResult{
			Text:                 strPtr("EDESUR S.A. Total a pagar $52.345,67"),
			ProviderID:           strPtr("edesur"),
			ProviderNameDetected: strPtr("Edesur"),
			TotalAmount:          &amount,
			Currency:             strPtr("ARS"),
			DueDate:              strPtr("2025-10-15"),
		},
	})

	document := createTestDocument(suite.T(), v1.DocumentEditable{
		FileName:   "edesur.pdf",
		StorageURL: server.URL,
	})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(models.StatusParsed, response.Data.Status)
	suite.Assert().Equal("electricity", string(response.Data.Category))
	suite.Assert().Equal("Edesur", response.Data.Provider)
	suite.Assert().Equal("edesur", response.Data.ProviderID)
	suite.Assert().Contains(response.Data.TextExtract, "EDESUR")

	if suite.Assert().NotNil(response.Data.TotalAmount) {
		suite.Assert().True(response.Data.TotalAmount.Equal(amount))
	}
	if suite.Assert().NotNil(response.Data.DueDate) {
		suite.Assert().Equal("2025-10-15", response.Data.DueDate.String())
	}
}

func (suite *TestSuiteStandard) TestParseHoaFeedsSummary() {
	server := pdfServer()
	defer server.Close()

	year := 2025
	month := 10
	total := decimal.NewFromInt(150000)
	v1.SetBillParser(&fakeParser{
		result: billing.ParseResult{
			Text:       strPtr("CONSORCIO EDIFICIO SUR"),
			Category:   strPtr("hoa"),
			HoaDetails: &billing.HoaDetails{PeriodYear: &year, PeriodMonth: &month, TotalToPayUnit: &total},
		},
	})

	document := createTestDocument(suite.T(), v1.DocumentEditable{StorageURL: server.URL})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("hoa", string(response.Data.Category))

	if suite.Assert().NotNil(response.Data.TotalAmount) {
		suite.Assert().True(response.Data.TotalAmount.Equal(total), "the unit total becomes the document amount")
	}

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/hoa-summaries", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summaries v1.HoaSummaryListResponse
	test.DecodeResponse(suite.T(), &r, &summaries)

	if suite.Assert().Len(summaries.Data, 1) {
		suite.Assert().Equal("2025-10", summaries.Data[0].PeriodKey)
	}
}

func (suite *TestSuiteStandard) TestParseUpstreamFailure() {
	server := pdfServer()
	defer server.Close()

	v1.SetBillParser(&fakeParser{err: errors.New("completion request failed")})

	document := createTestDocument(suite.T(), v1.DocumentEditable{StorageURL: server.URL})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadGateway)

	// The document is marked so it can be resubmitted
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/documents/%s", document.Data.ID), "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.StatusError, response.Data.Status)
}

func (suite *TestSuiteStandard) TestParseFetchFailure() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v1.SetBillParser(&fakeParser{})

	document := createTestDocument(suite.T(), v1.DocumentEditable{StorageURL: server.URL})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadGateway)
}

func (suite *TestSuiteStandard) TestParseNotOwner() {
	v1.SetBillParser(&fakeParser{})

	document := createTestDocument(suite.T(), v1.DocumentEditable{StorageURL: "https://storage.example.com/bill.pdf"})

	path := fmt.Sprintf("http://example.com/v1/documents/%s/parse", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, path, "", test.BearerToken(suite.T(), "user-2"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}
