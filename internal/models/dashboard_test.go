package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/tolva-app/backend/internal/billing"
	"github.com/tolva-app/backend/internal/models"
	"github.com/tolva-app/backend/internal/types"
)

func (suite *TestSuiteStandard) TestDashboardFor() {
	october := types.NewMonth(2025, 10)

	due := types.NewDate(2025, 10, 15)
	suite.createTestDocument(models.Document{
		Category:    billing.CategoryElectricity,
		TotalAmount: decRef(decimal.NewFromInt(30000)),
		DueDate:     &due,
	})
	suite.createTestDocument(models.Document{
		Category:    billing.CategoryElectricity,
		TotalAmount: decRef(decimal.NewFromInt(20000)),
		DueDate:     &due,
	})
	suite.createTestDocument(models.Document{
		Category:    billing.CategoryHoa,
		TotalAmount: decRef(decimal.NewFromInt(150000)),
		DueDate:     &due,
	})

	// Other month, other user: both must be ignored
	november := types.NewDate(2025, 11, 10)
	suite.createTestDocument(models.Document{
		Category:    billing.CategoryElectricity,
		TotalAmount: decRef(decimal.NewFromInt(99999)),
		DueDate:     &november,
	})
	suite.createTestDocument(models.Document{
		UserID:      "user-2",
		Category:    billing.CategoryWater,
		TotalAmount: decRef(decimal.NewFromInt(5000)),
		DueDate:     &due,
	})

	suite.createTestIncomeEntry(models.IncomeEntry{
		Amount: decimal.NewFromInt(900000),
		Date:   types.NewDate(2025, 10, 1),
	})
	suite.createTestIncomeEntry(models.IncomeEntry{
		Amount: decimal.NewFromInt(850000),
		Date:   types.NewDate(2025, 9, 1),
	})

	dashboard, err := models.DashboardFor("user-1", october)
	suite.Require().Nil(err)

	assert := suite.Assert()
	assert.True(dashboard.SpendTotal.Equal(decimal.NewFromInt(200000)), "got %s", dashboard.SpendTotal)
	assert.True(dashboard.IncomeTotal.Equal(decimal.NewFromInt(900000)), "got %s", dashboard.IncomeTotal)

	suite.Require().Len(dashboard.Spend, 2)
	assert.Equal(billing.CategoryElectricity, dashboard.Spend[0].Category)
	assert.True(dashboard.Spend[0].Total.Equal(decimal.NewFromInt(50000)))
	assert.Equal(2, dashboard.Spend[0].Count)
	assert.Equal(billing.CategoryHoa, dashboard.Spend[1].Category)
	assert.True(dashboard.Spend[1].Total.Equal(decimal.NewFromInt(150000)))
}

func (suite *TestSuiteStandard) TestDashboardForEmptyMonth() {
	dashboard, err := models.DashboardFor("user-1", types.NewMonth(2025, 1))
	suite.Require().Nil(err)

	suite.Assert().Empty(dashboard.Spend)
	suite.Assert().True(dashboard.SpendTotal.IsZero())
	suite.Assert().True(dashboard.IncomeTotal.IsZero())
}
