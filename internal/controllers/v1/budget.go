package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/ledger"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	ae_uuid "github.com/nuno80/agenzia-eventi/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategoryEditable represents all user configurable parameters.
// The spent amount is computed from the items.
type BudgetCategoryEditable struct {
	EventID         uuid.UUID       `json:"eventId" validate:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // Only used on creation
	Name            string          `json:"name" validate:"required,max=255" example:"Catering"`
	Color           string          `json:"color" validate:"max=20" example:"#f59e0b"`
	Icon            string          `json:"icon" validate:"max=50" example:"utensils"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" validate:"nonnegative" example:"12000"`
}

func budgetCategoryEditable(c models.BudgetCategory) BudgetCategoryEditable {
	return BudgetCategoryEditable{
		EventID:         c.EventID,
		Name:            c.Name,
		Color:           c.Color,
		Icon:            c.Icon,
		AllocatedAmount: c.AllocatedAmount,
	}
}

func (editable BudgetCategoryEditable) apply(c *models.BudgetCategory) {
	c.EventID = editable.EventID
	c.Name = editable.Name
	c.Color = editable.Color
	c.Icon = editable.Icon
	c.AllocatedAmount = editable.AllocatedAmount
}

// BudgetItemEditable is a budget item that is entered by hand.
type BudgetItemEditable struct {
	EventID       uuid.UUID               `json:"eventId" validate:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	CategoryID    uuid.UUID               `json:"categoryId" validate:"required" example:"8a1bc62c-0bba-4ae2-a4c4-3e0dfe8e1b3e"`
	Description   string                  `json:"description" validate:"required,max=255" example:"Coffee break"`
	EstimatedCost decimal.Decimal         `json:"estimatedCost" validate:"nonnegative" example:"800"`
	ActualCost    decimal.NullDecimal     `json:"actualCost" validate:"nonnegative" swaggertype:"primitive,string" example:"760"`
	Status        models.BudgetItemStatus `json:"status" validate:"omitempty,oneof=planned approved purchased paid cancelled" example:"purchased"`
	Vendor        string                  `json:"vendor" validate:"max=255" example:"Bar Centrale"`
	PaymentDate   *time.Time              `json:"paymentDate"`
	Notes         string                  `json:"notes" validate:"max=2000"`
}

func (editable BudgetItemEditable) model() models.BudgetItem {
	return models.BudgetItem{
		EventID:       editable.EventID,
		CategoryID:    editable.CategoryID,
		Description:   editable.Description,
		EstimatedCost: editable.EstimatedCost,
		ActualCost:    editable.ActualCost,
		Status:        editable.Status,
		Vendor:        editable.Vendor,
		PaymentDate:   editable.PaymentDate,
		Notes:         editable.Notes,
	}
}

// BudgetItemFilter restricts the list of budget items.
type BudgetItemFilter struct {
	EventFilter
	Category ae_uuid.UUID `form:"category" format:"UUID"` // Filter by category ID
}

// RegisterBudgetCategoryRoutes registers the routes for budget categories with
// the RouterGroup that is passed.
func RegisterBudgetCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetCategoryList)
		r.GET("", GetBudgetCategories)
		r.POST("", CreateBudgetCategory)
	}

	// Budget category with ID
	{
		r.OPTIONS("/:id", OptionsBudgetCategoryDetail)
		r.GET("/:id", GetBudgetCategory)
		r.PATCH("/:id", UpdateBudgetCategory)
		r.DELETE("/:id", DeleteBudgetCategory)
	}
}

// RegisterBudgetItemRoutes registers the routes for budget items with
// the RouterGroup that is passed.
func RegisterBudgetItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetItemList)
		r.GET("", GetBudgetItems)
		r.POST("", CreateBudgetItem)
	}

	// Budget item with ID
	{
		r.OPTIONS("/:id", OptionsBudgetItemDetail)
		r.GET("/:id", GetBudgetItem)
		r.DELETE("/:id", DeleteBudgetItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget-categories [options]
func OptionsBudgetCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-categories/{id} [options]
func OptionsBudgetCategoryDetail(c *gin.Context) {
	optionsDetail(c, models.BudgetCategory{})
}

// @Summary		Get budget categories
// @Description	Returns the budget categories of an event
// @Tags			Budget
// @Produce		json
// @Success		200		{object}	ListResponse[models.BudgetCategory]
// @Failure		400		{object}	httpError
// @Failure		500		{object}	ListResponse[models.BudgetCategory]
// @Param			event	query		string	true	"Event ID"
// @Router			/v1/budget-categories [get]
func GetBudgetCategories(c *gin.Context) {
	filter, ok := bindFilter(c, true)
	if !ok {
		return
	}

	list(c, func(categories *[]models.BudgetCategory) error {
		return models.DB.
			Where(&models.BudgetCategory{EventID: filter.Event.UUID}).
			Order("name ASC").
			Find(categories).Error
	})
}

// @Summary		Get budget category
// @Description	Returns a specific budget category
// @Tags			Budget
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.BudgetCategory]
// @Failure		400	{object}	ObjectResponse[models.BudgetCategory]
// @Failure		404	{object}	ObjectResponse[models.BudgetCategory]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-categories/{id} [get]
func GetBudgetCategory(c *gin.Context) {
	getResource(c, models.BudgetCategory{})
}

// @Summary		Create budget category
// @Description	Creates a new budget category. The name must be unique for the event.
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		201			{object}	action.Result
// @Failure		400			{object}	action.Result
// @Failure		500			{object}	action.Result
// @Param			category	body		BudgetCategoryEditable	true	"Budget category"
// @Router			/v1/budget-categories [post]
func CreateBudgetCategory(c *gin.Context) {
	var editable BudgetCategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusCreated, action.Invalid(fields))
		return
	}

	var category models.BudgetCategory
	editable.apply(&category)

	ctx := c.Request.Context()
	err = models.DB.WithContext(ctx).Create(&category).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.EventBudget(category.EventID))
	respond(c, http.StatusCreated, action.Ok("Budget category created", category))
}

// @Summary		Update budget category
// @Description	Update an existing budget category. Only values to be updated need to be specified. The event cannot be changed.
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200			{object}	action.Result
// @Failure		400			{object}	action.Result
// @Failure		404			{object}	action.Result
// @Failure		500			{object}	action.Result
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		BudgetCategoryEditable	true	"Budget category"
// @Router			/v1/budget-categories/{id} [patch]
func UpdateBudgetCategory(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var category models.BudgetCategory
	err := models.DB.WithContext(ctx).First(&category, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	editable := budgetCategoryEditable(category)
	err = httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}
	editable.EventID = category.EventID

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusOK, action.Invalid(fields))
		return
	}

	editable.apply(&category)
	err = models.DB.WithContext(ctx).Save(&category).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.EventBudget(category.EventID))
	respond(c, http.StatusOK, action.Ok("Budget category updated", category))
}

// @Summary		Delete budget category
// @Description	Deletes a budget category with all its items. Staff assignments and sponsors booked on it are unlinked.
// @Tags			Budget
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-categories/{id} [delete]
func DeleteBudgetCategory(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var category models.BudgetCategory
	err := models.DB.WithContext(ctx).First(&category, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	err = ledger.Accessor{}.DeleteCategory(models.DB.WithContext(ctx), category.ID)
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx,
		revalidate.EventBudget(category.EventID),
		revalidate.EventStaff(category.EventID),
		revalidate.EventSponsors(category.EventID),
	)
	respond(c, http.StatusNoContent, action.Ok("Budget category deleted", nil))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget-items [options]
func OptionsBudgetItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-items/{id} [options]
func OptionsBudgetItemDetail(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := models.DB.First(&models.BudgetItem{}, "id = ?", id.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Get budget items
// @Description	Returns the budget items of an event, optionally only those of one category
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	ListResponse[models.BudgetItem]
// @Failure		400			{object}	httpError
// @Failure		500			{object}	ListResponse[models.BudgetItem]
// @Param			event		query		string	true	"Event ID"
// @Param			category	query		string	false	"Filter by category ID"
// @Router			/v1/budget-items [get]
func GetBudgetItems(c *gin.Context) {
	var filter BudgetItemFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	if filter.Event.IsNil() {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errEventParameter.Error(),
		})
		return
	}

	list(c, func(items *[]models.BudgetItem) error {
		return models.DB.
			Where(&models.BudgetItem{EventID: filter.Event.UUID, CategoryID: filter.Category.UUID}).
			Order("created_at ASC").
			Find(items).Error
	})
}

// @Summary		Get budget item
// @Description	Returns a specific budget item
// @Tags			Budget
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.BudgetItem]
// @Failure		400	{object}	ObjectResponse[models.BudgetItem]
// @Failure		404	{object}	ObjectResponse[models.BudgetItem]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-items/{id} [get]
func GetBudgetItem(c *gin.Context) {
	getResource(c, models.BudgetItem{})
}

// @Summary		Create budget item
// @Description	Creates a budget item by hand and recomputes the spent amount of its category
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		201		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			item	body		BudgetItemEditable	true	"Budget item"
// @Router			/v1/budget-items [post]
func CreateBudgetItem(c *gin.Context) {
	var editable BudgetItemEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusCreated, action.Invalid(fields))
		return
	}

	ctx := c.Request.Context()
	item := editable.model()
	l := ledger.Accessor{}

	err = models.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := l.Category(tx, item.CategoryID)
		if err != nil {
			return err
		}

		if category.EventID != item.EventID {
			return errCategoryOfOtherEvent
		}

		err = l.CreateItem(tx, &item)
		if err != nil {
			return err
		}

		_, err = l.RecomputeSpent(tx, category.ID)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.EventBudget(item.EventID))
	respond(c, http.StatusCreated, action.Ok("Budget item created", item))
}

// @Summary		Delete budget item
// @Description	Deletes a budget item entered by hand and recomputes the spent amount of its category
// @Tags			Budget
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-items/{id} [delete]
func DeleteBudgetItem(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	l := ledger.Accessor{}

	var item models.BudgetItem
	err := models.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = l.Item(tx, id.UUID)
		if err != nil {
			return err
		}

		// Linked items are owned by their staff assignment or sponsor
		var owners int64
		for _, owner := range []any{&models.StaffAssignment{}, &models.Sponsor{}} {
			var n int64
			err = tx.Model(owner).Where("budget_item_id = ?", item.ID).Count(&n).Error
			if err != nil {
				return err
			}
			owners += n
		}

		if owners > 0 {
			return errItemLinked
		}

		_, err = l.DeleteItem(tx, item.ID)
		if err != nil {
			return err
		}

		_, err = l.RecomputeSpent(tx, item.CategoryID)
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.EventBudget(item.EventID))
	respond(c, http.StatusNoContent, action.Ok("Budget item deleted", nil))
}
