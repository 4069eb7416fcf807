package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/models"
)

func intRef(i int) *int {
	return &i
}

func strRef(s string) *string {
	return &s
}

func decRef(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func (suite *TestSuiteStandard) TestUpsertHoaSummaryKey() {
	err := models.UpsertHoaSummary("user-1", &billing.HoaDetails{
		PeriodYear:  intRef(2025),
		PeriodMonth: intRef(10),
	})
	suite.Require().Nil(err)

	var summary models.HoaSummary
	suite.Require().Nil(models.DB.First(&summary).Error)

	assert := suite.Assert()
	assert.Equal("user-1_EDIFICIO_0005_2025-10", summary.ID, "defaults fill in the missing codes")
	assert.Equal("2025-10", summary.PeriodKey)
	assert.Equal("OCTUBRE/2025", summary.PeriodLabel)
	assert.Equal(2025, summary.PeriodYear)
	assert.Equal(10, summary.PeriodMonth)
}

func (suite *TestSuiteStandard) TestUpsertHoaSummaryIdempotent() {
	details := &billing.HoaDetails{
		BuildingCode: strRef("TORRE1"),
		UnitCode:     strRef("5"),
		PeriodYear:   intRef(2025),
		PeriodMonth:  intRef(10),
		Rubros: []billing.Rubro{
			{Label: strRef("Limpieza"), Total: decRef(decimal.NewFromInt(50000))},
			{Label: strRef("Seguros"), Total: decRef(decimal.NewFromInt(20000))},
		},
	}

	suite.Require().Nil(models.UpsertHoaSummary("user-1", details))

	var first models.HoaSummary
	suite.Require().Nil(models.DB.First(&first).Error)

	suite.Require().Nil(models.UpsertHoaSummary("user-1", details))

	var summaries []models.HoaSummary
	suite.Require().Nil(models.DB.Find(&summaries).Error)
	suite.Require().Len(summaries, 1, "repeated upserts must not duplicate")

	second := summaries[0]
	assert := suite.Assert()
	assert.Equal("user-1_TORRE1_0005_2025-10", second.ID)
	assert.True(first.CreatedAt.Equal(second.CreatedAt), "CreatedAt survives re-upserts")
	assert.True(second.RubrosTotal.Equal(decimal.NewFromInt(70000)))
	suite.Require().Len(second.RubrosWithTotals, 2)
	assert.True(second.RubrosWithTotals[0].Share.Equal(decimal.NewFromInt(50000)))
}

func (suite *TestSuiteStandard) TestUpsertHoaSummaryMerges() {
	suite.Require().Nil(models.UpsertHoaSummary("user-1", &billing.HoaDetails{
		PeriodYear:  intRef(2025),
		PeriodMonth: intRef(10),
		OwnerName:   strRef("Ana"),
	}))

	// Second statement for the same period carries amounts but no owner.
	suite.Require().Nil(models.UpsertHoaSummary("user-1", &billing.HoaDetails{
		PeriodYear:     intRef(2025),
		PeriodMonth:    intRef(10),
		TotalToPayUnit: decRef(decimal.NewFromInt(150000)),
	}))

	var summary models.HoaSummary
	suite.Require().Nil(models.DB.First(&summary).Error)

	suite.Assert().Equal("Ana", summary.OwnerName, "merge must not lose earlier fields")
	suite.Require().NotNil(summary.TotalToPayUnit)
	suite.Assert().True(summary.TotalToPayUnit.Equal(decimal.NewFromInt(150000)))
}

func (suite *TestSuiteStandard) TestUpsertHoaSummaryNoOp() {
	// Unresolvable period
	suite.Require().Nil(models.UpsertHoaSummary("user-1", &billing.HoaDetails{
		PeriodYear: intRef(2025),
	}))

	// Unresolvable user
	suite.Require().Nil(models.UpsertHoaSummary("", &billing.HoaDetails{
		PeriodYear:  intRef(2025),
		PeriodMonth: intRef(10),
	}))

	// No details at all
	suite.Require().Nil(models.UpsertHoaSummary("user-1", nil))

	var count int64
	suite.Require().Nil(models.DB.Model(&models.HoaSummary{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "partial data must never create a summary")
}
