package ledger_test

import (
	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/ledger"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cost(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func (suite *TestSuiteStandard) TestRecomputeSpent() {
	event := suite.createTestEvent()
	category := suite.createTestCategory(models.BudgetCategory{EventID: event.ID, Name: "Catering"})
	other := suite.createTestCategory(models.BudgetCategory{EventID: event.ID, Name: "Venue"})

	suite.createTestItem(models.BudgetItem{EventID: event.ID, CategoryID: category.ID, ActualCost: cost(500)})
	suite.createTestItem(models.BudgetItem{EventID: event.ID, CategoryID: category.ID, ActualCost: decimal.NewNullDecimal(decimal.RequireFromString("120.25"))})
	suite.createTestItem(models.BudgetItem{EventID: event.ID, CategoryID: category.ID})
	suite.createTestItem(models.BudgetItem{EventID: event.ID, CategoryID: other.ID, ActualCost: cost(1000)})

	sum, err := ledger.Accessor{}.RecomputeSpent(models.DB, category.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.RequireFromString("620.25")), "sum is %s", sum)

	reloaded, err := ledger.Accessor{}.Category(models.DB, category.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), reloaded.SpentAmount.Equal(sum), "stored spent amount is %s", reloaded.SpentAmount)
}

func (suite *TestSuiteStandard) TestRecomputeSpentIsIdempotent() {
	event := suite.createTestEvent()
	category := suite.createTestCategory(models.BudgetCategory{EventID: event.ID, Name: "Catering"})
	suite.createTestItem(models.BudgetItem{EventID: event.ID, CategoryID: category.ID, ActualCost: cost(42)})

	first, err := ledger.Accessor{}.RecomputeSpent(models.DB, category.ID)
	require.Nil(suite.T(), err)

	second, err := ledger.Accessor{}.RecomputeSpent(models.DB, category.ID)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), first.Equal(second))
}

func (suite *TestSuiteStandard) TestRecomputeSpentEmptyCategory() {
	event := suite.createTestEvent()
	category := suite.createTestCategory(models.BudgetCategory{EventID: event.ID, Name: "Empty", SpentAmount: decimal.NewFromInt(99)})

	sum, err := ledger.Accessor{}.RecomputeSpent(models.DB, category.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), sum.IsZero())

	reloaded, _ := ledger.Accessor{}.Category(models.DB, category.ID)
	assert.True(suite.T(), reloaded.SpentAmount.IsZero(), "stale spent amount %s was not reset", reloaded.SpentAmount)
}

func (suite *TestSuiteStandard) TestRecomputeSpentMissingCategory() {
	_, err := ledger.Accessor{}.RecomputeSpent(models.DB, uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestItemLifecycle() {
	l := ledger.Accessor{}
	event := suite.createTestEvent()
	category := suite.createTestCategory(models.BudgetCategory{EventID: event.ID, Name: "Staff"})

	item := models.BudgetItem{
		EventID:       event.ID,
		CategoryID:    category.ID,
		Description:   "  Staff: Rossi Mario ",
		EstimatedCost: decimal.NewFromInt(500),
		ActualCost:    cost(500),
		Status:        models.BudgetItemApproved,
	}
	require.Nil(suite.T(), l.CreateItem(models.DB, &item))
	assert.NotEqual(suite.T(), uuid.Nil, item.ID)
	assert.Equal(suite.T(), "Staff: Rossi Mario", item.Description)

	item.ActualCost = cost(600)
	require.Nil(suite.T(), l.UpdateItem(models.DB, &item))

	reloaded, err := l.Item(models.DB, item.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), reloaded.ActualCost.Decimal.Equal(decimal.NewFromInt(600)))

	deleted, err := l.DeleteItem(models.DB, item.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), category.ID, deleted.CategoryID)

	_, err = l.Item(models.DB, item.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, err = l.DeleteItem(models.DB, item.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestUpdateItemWithoutID() {
	err := ledger.Accessor{}.UpdateItem(models.DB, &models.BudgetItem{})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestIncomeCategoryIsCreatedOnce() {
	l := ledger.Accessor{}
	event := suite.createTestEvent()

	first, err := l.IncomeCategory(models.DB, event.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), ledger.IncomeCategoryName, first.Name)

	second, err := l.IncomeCategory(models.DB, event.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), first.ID, second.ID)

	var count int64
	models.DB.Model(&models.BudgetCategory{}).Where("event_id = ?", event.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestDeleteCategoryCascades() {
	l := ledger.Accessor{}
	event := suite.createTestEvent()
	category := suite.createTestCategory(models.BudgetCategory{EventID: event.ID, Name: "Staff"})
	item := suite.createTestItem(models.BudgetItem{EventID: event.ID, CategoryID: category.ID, ActualCost: cost(10)})

	staff := models.Staff{FirstName: "Mario", LastName: "Rossi", Email: "mario@example.com"}
	require.Nil(suite.T(), models.DB.Create(&staff).Error)

	assignment := models.StaffAssignment{
		EventID:      event.ID,
		StaffID:      staff.ID,
		StartTime:    event.StartDate,
		EndTime:      event.EndDate,
		BudgetItemID: &item.ID,
	}
	require.Nil(suite.T(), models.DB.Create(&assignment).Error)

	require.Nil(suite.T(), l.DeleteCategory(models.DB, category.ID))

	_, err := l.Item(models.DB, item.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "Item was not deleted with its category")

	var reloaded models.StaffAssignment
	require.Nil(suite.T(), models.DB.First(&reloaded, "id = ?", assignment.ID).Error)
	assert.Nil(suite.T(), reloaded.BudgetItemID, "Weak reference to deleted item was not cleared")
}
