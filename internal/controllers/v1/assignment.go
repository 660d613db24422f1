package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nuno80/agenzia-eventi/internal/budgetsync"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
	ae_uuid "github.com/nuno80/agenzia-eventi/internal/uuid"
)

// AssignmentFilter restricts the list of staff assignments.
type AssignmentFilter struct {
	EventFilter
	Staff ae_uuid.UUID `form:"staff" format:"UUID"` // Filter by staff ID
}

// RegisterAssignmentRoutes registers the routes for staff assignments with
// the RouterGroup that is passed.
func RegisterAssignmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAssignmentList)
		r.GET("", GetAssignments)
		r.POST("", CreateAssignment)
	}

	// Assignment with ID
	{
		r.OPTIONS("/:id", OptionsAssignmentDetail)
		r.GET("/:id", GetAssignment)
		r.PATCH("/:id", UpdateAssignment)
		r.DELETE("/:id", DeleteAssignment)
	}

	// Payment actions
	{
		r.OPTIONS("/:id/mark-paid", OptionsAssignmentPayment)
		r.POST("/:id/mark-paid", MarkAssignmentPaid)
		r.OPTIONS("/:id/postpone-payment", OptionsAssignmentPayment)
		r.POST("/:id/postpone-payment", PostponeAssignmentPayment)
		r.OPTIONS("/:id/cancel-payment", OptionsAssignmentPayment)
		r.POST("/:id/cancel-payment", CancelAssignmentPayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assignments
// @Success		204
// @Router			/v1/assignments [options]
func OptionsAssignmentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assignments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id} [options]
func OptionsAssignmentDetail(c *gin.Context) {
	optionsDetail(c, models.StaffAssignment{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Assignments
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id}/mark-paid [options]
// @Router			/v1/assignments/{id}/postpone-payment [options]
// @Router			/v1/assignments/{id}/cancel-payment [options]
func OptionsAssignmentPayment(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get staff assignments
// @Description	Returns staff assignments in start time order, optionally filtered by event and staff member
// @Tags			Assignments
// @Produce		json
// @Success		200		{object}	ListResponse[models.StaffAssignment]
// @Failure		400		{object}	httpError
// @Failure		500		{object}	ListResponse[models.StaffAssignment]
// @Param			event	query		string	false	"Filter by event ID"
// @Param			staff	query		string	false	"Filter by staff ID"
// @Router			/v1/assignments [get]
func GetAssignments(c *gin.Context) {
	var filter AssignmentFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	list(c, func(assignments *[]models.StaffAssignment) error {
		err := models.DB.
			Where(&models.StaffAssignment{EventID: filter.Event.UUID, StaffID: filter.Staff.UUID}).
			Order("start_time ASC").
			Find(assignments).Error
		if err != nil {
			return err
		}

		s := synchronizer()
		for i := range *assignments {
			s.Refresh(&(*assignments)[i])
		}
		return nil
	})
}

// @Summary		Get staff assignment
// @Description	Returns a specific staff assignment
// @Tags			Assignments
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.StaffAssignment]
// @Failure		400	{object}	ObjectResponse[models.StaffAssignment]
// @Failure		404	{object}	ObjectResponse[models.StaffAssignment]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id} [get]
func GetAssignment(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var assignment models.StaffAssignment
	err := models.DB.First(&assignment, "id = ?", id.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObjectResponse[models.StaffAssignment]{Error: &s})
		return
	}

	synchronizer().Refresh(&assignment)
	c.JSON(http.StatusOK, ObjectResponse[models.StaffAssignment]{Data: &assignment})
}

// @Summary		Create staff assignment
// @Description	Creates a staff assignment. With a payment amount and a budget category, a budget item is booked for it.
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		201			{object}	action.Result
// @Failure		400			{object}	action.Result
// @Failure		404			{object}	action.Result
// @Failure		500			{object}	action.Result
// @Param			assignment	body		budgetsync.AssignmentInput	true	"Staff assignment"
// @Router			/v1/assignments [post]
func CreateAssignment(c *gin.Context) {
	var in budgetsync.AssignmentInput
	err := httputil.BindData(c, &in)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, synchronizer().CreateAssignment(c.Request.Context(), in))
}

// @Summary		Update staff assignment
// @Description	Update an existing staff assignment. Only values to be updated need to be specified.
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		200			{object}	action.Result
// @Failure		400			{object}	action.Result
// @Failure		404			{object}	action.Result
// @Failure		500			{object}	action.Result
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			assignment	body		budgetsync.AssignmentPatch	true	"Staff assignment"
// @Router			/v1/assignments/{id} [patch]
func UpdateAssignment(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var patch budgetsync.AssignmentPatch
	err := httputil.BindData(c, &patch)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, synchronizer().UpdateAssignment(c.Request.Context(), id.UUID, patch))
}

// @Summary		Delete staff assignment
// @Description	Deletes a staff assignment and its budget item
// @Tags			Assignments
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/assignments/{id} [delete]
func DeleteAssignment(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	respond(c, http.StatusNoContent, synchronizer().DeleteAssignment(c.Request.Context(), id.UUID))
}

// @Summary		Mark payment as paid
// @Description	Records the payment of a staff assignment. The payment date defaults to now.
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		budgetsync.MarkPaidInput	false	"Payment. The assignment ID is taken from the path."
// @Router			/v1/assignments/{id}/mark-paid [post]
func MarkAssignmentPaid(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var in budgetsync.MarkPaidInput
	if c.Request.ContentLength != 0 {
		err := httputil.BindData(c, &in)
		if err != nil {
			fail(c, err)
			return
		}
	}
	in.AssignmentID = id.UUID

	respond(c, http.StatusOK, synchronizer().MarkPaid(c.Request.Context(), in))
}

// @Summary		Postpone payment
// @Description	Moves the due date of a staff payment and notes the reason on the assignment
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		budgetsync.PostponePaymentInput	true	"New due date. The assignment ID is taken from the path."
// @Router			/v1/assignments/{id}/postpone-payment [post]
func PostponeAssignmentPayment(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var in budgetsync.PostponePaymentInput
	err := httputil.BindData(c, &in)
	if err != nil {
		fail(c, err)
		return
	}
	in.AssignmentID = id.UUID

	respond(c, http.StatusOK, synchronizer().PostponePayment(c.Request.Context(), in))
}

// @Summary		Cancel payment
// @Description	Removes the recorded payment of a staff assignment and notes the reason on the assignment
// @Tags			Assignments
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		budgetsync.CancelPaymentInput	false	"Reason. The assignment ID is taken from the path."
// @Router			/v1/assignments/{id}/cancel-payment [post]
func CancelAssignmentPayment(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var in budgetsync.CancelPaymentInput
	if c.Request.ContentLength != 0 {
		err := httputil.BindData(c, &in)
		if err != nil {
			fail(c, err)
			return
		}
	}
	in.AssignmentID = id.UUID

	respond(c, http.StatusOK, synchronizer().CancelPayment(c.Request.Context(), in))
}
