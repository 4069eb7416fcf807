package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	v1 "github.com/tolva-app/backend/internal/controllers/v1"
	"github.com/tolva-app/backend/test"
)

func hoaDocument(month int, total decimal.Decimal) v1.DocumentEditable {
	year := 2025
	unit := "0005"

	return v1.DocumentEditable{
		Provider: "Consorcio Edificio Sur",
		Category: "hoa",
		HoaDetails: &billing.HoaDetails{
			UnitCode:       &unit,
			PeriodYear:     &year,
			PeriodMonth:    &month,
			TotalToPayUnit: &total,
		},
	}
}

func (suite *TestSuiteStandard) TestHoaSummariesOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/hoa-summaries", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestHoaSummariesFromDocuments() {
	_ = createTestDocument(suite.T(), hoaDocument(9, decimal.NewFromInt(140000)))
	_ = createTestDocument(suite.T(), hoaDocument(10, decimal.NewFromInt(150000)))

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/hoa-summaries", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HoaSummaryListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if suite.Assert().Len(response.Data, 2) {
		suite.Assert().Equal("2025-10", response.Data[0].PeriodKey, "newest period comes first")
		suite.Assert().Equal("OCTUBRE/2025", response.Data[0].PeriodLabel)
		suite.Assert().Equal("EDIFICIO", response.Data[0].BuildingCode, "building code defaults when absent")

		if suite.Assert().NotNil(response.Data[0].TotalToPayUnit) {
			suite.Assert().True(response.Data[0].TotalToPayUnit.Equal(decimal.NewFromInt(150000)))
		}
	}
}

func (suite *TestSuiteStandard) TestHoaSummariesUpsert() {
	// Two statements for the same period end up in a single summary row
	_ = createTestDocument(suite.T(), hoaDocument(10, decimal.NewFromInt(150000)))
	_ = createTestDocument(suite.T(), hoaDocument(10, decimal.NewFromInt(155000)))

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/hoa-summaries", "", test.BearerToken(suite.T(), testUser))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HoaSummaryListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if suite.Assert().Len(response.Data, 1) {
		if suite.Assert().NotNil(response.Data[0].TotalToPayUnit) {
			suite.Assert().True(response.Data[0].TotalToPayUnit.Equal(decimal.NewFromInt(155000)), "the newer statement wins")
		}
	}
}

func (suite *TestSuiteStandard) TestHoaSummariesFilteredByUser() {
	_ = createTestDocument(suite.T(), hoaDocument(10, decimal.NewFromInt(150000)))

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/hoa-summaries", "", test.BearerToken(suite.T(), "user-2"))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HoaSummaryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0)
}
