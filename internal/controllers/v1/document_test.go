package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/tolva-app/backend/internal/controllers/v1"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/types"
	"github.com/tolva-app/backend/test"
)

func (suite *TestSuiteStandard) TestDocumentsAuthRequired() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestDocumentsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/documents", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/documents/%s", uuid.New()), "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestDocumentCreateManualEntry() {
	amount := decimal.NewFromInt(50000)
	document := createTestDocument(suite.T(), v1.DocumentEditable{
		Provider:    "Edesur",
		Amount:      &amount,
		ManualEntry: true,
	})

	suite.Assert().Equal(testUser, document.Data.UserID)
	suite.Assert().Equal("electricity", string(document.Data.Category), "category is classified from the provider name")
	suite.Assert().Equal(models.StatusNeedsReview, document.Data.Status, "manual entries await review")
	suite.Assert().NotNil(document.Data.TotalAmount)
	suite.Assert().True(document.Data.TotalAmount.Equal(amount), "amount is mirrored into totalAmount")
}

func (suite *TestSuiteStandard) TestDocumentCreateStoredFile() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{
		FileName:   "edesur-2025-10.pdf",
		StorageURL: "https://storage.example.com/bills/edesur-2025-10.pdf",
		ProviderID: "edesur",
	})

	suite.Assert().Equal(models.StatusPending, document.Data.Status, "stored files await extraction")
	suite.Assert().Equal("electricity", string(document.Data.Category))
}

func (suite *TestSuiteStandard) TestDocumentCreateInvalidCategory() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{
		Provider: "Something Unknown",
		Category: "not-a-category",
	})

	suite.Assert().Equal("other", string(document.Data.Category), "unknown categories classify to other")
}

func (suite *TestSuiteStandard) TestDocumentsGetSorted() {
	first := createTestDocument(suite.T(), v1.DocumentEditable{
		FileName:   "newest.pdf",
		UploadedAt: time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC),
	})

	_ = createTestDocument(suite.T(), v1.DocumentEditable{
		FileName:   "oldest.pdf",
		UploadedAt: time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if suite.Assert().Len(response.Data, 2) {
		suite.Assert().Equal(first.Data.ID, response.Data[0].ID, "newest upload comes first")
	}
}

func (suite *TestSuiteStandard) TestDocumentsGetFilteredByUser() {
	_ = createTestDocument(suite.T(), v1.DocumentEditable{FileName: "mine.pdf"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents", "", test.BearerToken(suite.T(), "user-2"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0, "other users' documents are not listed")
}

func (suite *TestSuiteStandard) TestDocumentGetSingle() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{FileName: "single.pdf"})

	tests := []struct {
		name   string
		id     string
		user   string
		status int
	}{
		{"Existing document", document.Data.ID.String(), testUser, http.StatusOK},
		{"No document with this ID", uuid.New().String(), testUser, http.StatusNotFound},
		{"Invalid ID", "definitely-not-a-uuid", testUser, http.StatusBadRequest},
		{"Not the owner", document.Data.ID.String(), "user-2", http.StatusForbidden},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/documents/%s", tt.id)
			r := test.Request(t, http.MethodGet, path, "", test.BearerToken(t, tt.user))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestDocumentUpdate() {
	dueDate := types.NewDate(2025, 10, 15)
	document := createTestDocument(suite.T(), v1.DocumentEditable{
		Provider: "Edesur",
		DueDate:  &dueDate,
	})

	path := fmt.Sprintf("http://example.com/v1/documents/%s", document.Data.ID)

	r := test.Request(suite.T(), http.MethodPatch, path, map[string]any{
		"provider": "Metrogas",
		"category": "gas",
	}, test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Metrogas", response.Data.Provider)
	suite.Assert().Equal("gas", string(response.Data.Category))

	if suite.Assert().NotNil(response.Data.DueDate) {
		suite.Assert().True(response.Data.DueDate.Equal(dueDate), "fields absent from the body keep their value")
	}

	// An explicit null clears the due date
	r = test.Request(suite.T(), http.MethodPatch, path, `{"dueDate": null}`, test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Nil(response.Data.DueDate)
}

func (suite *TestSuiteStandard) TestDocumentUpdateAmountMirrors() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{Provider: "Edesur"})

	path := fmt.Sprintf("http://example.com/v1/documents/%s", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPatch, path, map[string]any{
		"amount": "60000",
	}, test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DocumentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if suite.Assert().NotNil(response.Data.TotalAmount) {
		suite.Assert().True(response.Data.TotalAmount.Equal(decimal.NewFromInt(60000)))
	}
}

func (suite *TestSuiteStandard) TestDocumentUpdateNotOwner() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{FileName: "mine.pdf"})

	path := fmt.Sprintf("http://example.com/v1/documents/%s", document.Data.ID)
	r := test.Request(suite.T(), http.MethodPatch, path, map[string]any{"provider": "Evil"}, test.BearerToken(suite.T(), "user-2"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), r.Body.Bytes()), "you do not have access")
}

func (suite *TestSuiteStandard) TestDocumentDelete() {
	document := createTestDocument(suite.T(), v1.DocumentEditable{FileName: "gone.pdf"})

	path := fmt.Sprintf("http://example.com/v1/documents/%s", document.Data.ID)
	r := test.Request(suite.T(), http.MethodDelete, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestDocumentsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestDocumentsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), r.Body.Bytes()), "an error occurred on the server")
}
