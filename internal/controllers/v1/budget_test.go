package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/budgetsync"
	v1 "github.com/nuno80/agenzia-eventi/internal/controllers/v1"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/nuno80/agenzia-eventi/test"
	"github.com/shopspring/decimal"
)

func createTestItem(t *testing.T, i v1.BudgetItemEditable, expectedStatus ...int) models.BudgetItem {
	if i.Description == "" {
		i.Description = uuid.NewString()
	}

	item, _ := create[models.BudgetItem](t, "budget-items", i, expectedStatus...)
	return item
}

func (suite *TestSuiteStandard) TestBudgetCategoriesCreate() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	category := createTestCategory(suite.T(), v1.BudgetCategoryEditable{EventID: event.ID, Name: "Catering", AllocatedAmount: decimal.NewFromInt(12000)})

	suite.Assert().True(category.SpentAmount.IsZero())
	suite.Assert().True(category.AllocatedAmount.Equal(decimal.NewFromInt(12000)))
	suite.Assert().True(suite.notifier.Matches(revalidate.EventBudget(event.ID)))

	suite.Run("Name in use", func() {
		_, res := create[models.BudgetCategory](suite.T(), "budget-categories", v1.BudgetCategoryEditable{EventID: event.ID, Name: "Catering"}, http.StatusBadRequest)
		suite.Assert().Equal(models.ErrBudgetCategoryNameInUse.Error(), res.Message)
	})

	suite.Run("Same name on other event", func() {
		createTestCategory(suite.T(), v1.BudgetCategoryEditable{Name: "Catering"})
	})

	suite.Run("Negative allocation", func() {
		_, res := create[models.BudgetCategory](suite.T(), "budget-categories", v1.BudgetCategoryEditable{EventID: event.ID, Name: "Venue", AllocatedAmount: decimal.NewFromInt(-1)}, http.StatusBadRequest)
		suite.Assert().Contains(res.Errors, "allocatedAmount")
	})

	suite.Run("Unknown event", func() {
		createTestCategory(suite.T(), v1.BudgetCategoryEditable{EventID: uuid.New()}, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestBudgetCategoriesList() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	createTestCategory(suite.T(), v1.BudgetCategoryEditable{EventID: event.ID, Name: "Venue"})
	createTestCategory(suite.T(), v1.BudgetCategoryEditable{EventID: event.ID, Name: "Catering"})
	createTestCategory(suite.T(), v1.BudgetCategoryEditable{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-categories?event=%s", event.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ListResponse[models.BudgetCategory]
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Catering", response.Data[0].Name)
	suite.Assert().Equal("Venue", response.Data[1].Name)
}

// TestBudgetCategoriesUpdate verifies that the event of a category is fixed.
func (suite *TestSuiteStandard) TestBudgetCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.BudgetCategoryEditable{Name: "Venue"})
	other := createTestEvent(suite.T(), v1.EventEditable{})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/budget-categories/%s", category.ID), map[string]any{
		"eventId":         other.ID,
		"allocatedAmount": "5000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res result[models.BudgetCategory]
	test.DecodeResponse(suite.T(), &r, &res)

	suite.Assert().Equal(category.EventID, res.Data.EventID)
	suite.Assert().Equal("Venue", res.Data.Name)
	suite.Assert().True(res.Data.AllocatedAmount.Equal(decimal.NewFromInt(5000)))
}

// TestBudgetItemsRecompute verifies that creating and deleting items
// recomputes the spent amount of the category.
func (suite *TestSuiteStandard) TestBudgetItemsRecompute() {
	category := createTestCategory(suite.T(), v1.BudgetCategoryEditable{})

	first := createTestItem(suite.T(), v1.BudgetItemEditable{
		EventID:       category.EventID,
		CategoryID:    category.ID,
		EstimatedCost: decimal.NewFromInt(800),
		ActualCost:    decimal.NewNullDecimal(decimal.NewFromInt(760)),
		Status:        models.BudgetItemPurchased,
	})
	createTestItem(suite.T(), v1.BudgetItemEditable{
		EventID:       category.EventID,
		CategoryID:    category.ID,
		EstimatedCost: decimal.NewFromInt(300),
	})

	suite.Assert().Equal(models.BudgetItemPurchased, first.Status)
	suite.Assert().True(getCategory(suite.T(), category.ID).SpentAmount.Equal(decimal.NewFromInt(760)), "only incurred costs count as spent")

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-items?event=%s&category=%s", category.EventID, category.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ListResponse[models.BudgetItem]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/budget-items/%s", first.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().True(getCategory(suite.T(), category.ID).SpentAmount.IsZero())
}

func (suite *TestSuiteStandard) TestBudgetItemsCreateInvalid() {
	category := createTestCategory(suite.T(), v1.BudgetCategoryEditable{})
	other := createTestEvent(suite.T(), v1.EventEditable{})

	suite.Run("Category of other event", func() {
		_, res := create[models.BudgetItem](suite.T(), "budget-items", v1.BudgetItemEditable{
			EventID:     other.ID,
			CategoryID:  category.ID,
			Description: "Coffee break",
		}, http.StatusBadRequest)
		suite.Assert().Contains(res.Message, "belongs to a different event")
	})

	suite.Run("Unknown category", func() {
		create[models.BudgetItem](suite.T(), "budget-items", v1.BudgetItemEditable{
			EventID:     category.EventID,
			CategoryID:  uuid.New(),
			Description: "Coffee break",
		}, http.StatusNotFound)
	})

	suite.Run("Unknown status", func() {
		_, res := create[models.BudgetItem](suite.T(), "budget-items", v1.BudgetItemEditable{
			EventID:     category.EventID,
			CategoryID:  category.ID,
			Description: "Coffee break",
			Status:      "lost",
		}, http.StatusBadRequest)
		suite.Assert().Contains(res.Errors, "status")
	})
}

func (suite *TestSuiteStandard) TestBudgetItemsListRequiresEvent() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-items", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budget-items?event=abc", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestBudgetItemsDeleteLinked verifies that items owned by an assignment
// cannot be deleted directly.
func (suite *TestSuiteStandard) TestBudgetItemsDeleteLinked() {
	category := createTestCategory(suite.T(), v1.BudgetCategoryEditable{})
	assignment := createTestAssignment(suite.T(), budgetsync.AssignmentInput{
		EventID:          category.EventID,
		PaymentAmount:    decimal.NewNullDecimal(decimal.NewFromInt(500)),
		BudgetCategoryID: &category.ID,
	})
	suite.Require().NotNil(assignment.BudgetItemID)

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/budget-items/%s", *assignment.BudgetItemID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-items/%s", *assignment.BudgetItemID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().True(getCategory(suite.T(), category.ID).SpentAmount.Equal(decimal.NewFromInt(500)))
}

// TestBudgetCategoriesDelete verifies that owners booked on a deleted
// category are unlinked from their items.
func (suite *TestSuiteStandard) TestBudgetCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.BudgetCategoryEditable{})
	assignment := createTestAssignment(suite.T(), budgetsync.AssignmentInput{
		EventID:          category.EventID,
		PaymentAmount:    decimal.NewNullDecimal(decimal.NewFromInt(500)),
		BudgetCategoryID: &category.ID,
	})
	suite.Require().NotNil(assignment.BudgetItemID)
	suite.notifier.Reset()

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/budget-categories/%s", category.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-items/%s", *assignment.BudgetItemID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	suite.Assert().Nil(getAssignment(suite.T(), assignment.ID).BudgetItemID)
	suite.Assert().True(suite.notifier.Matches(revalidate.EventStaff(category.EventID)))
	suite.Assert().True(suite.notifier.Matches(revalidate.EventSponsors(category.EventID)))
}
