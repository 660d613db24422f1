package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
)

// StaffEditable represents all user configurable parameters
type StaffEditable struct {
	FirstName string `json:"firstName" validate:"required,max=100" example:"Mario"`
	LastName  string `json:"lastName" validate:"required,max=100" example:"Rossi"`
	Email     string `json:"email" validate:"required,email" example:"mario.rossi@example.com"`
	Phone     string `json:"phone" validate:"max=50" example:"+39 02 1234567"`
	Role      string `json:"role" validate:"max=100" example:"hostess"`
}

func staffEditable(s models.Staff) StaffEditable {
	return StaffEditable{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Phone:     s.Phone,
		Role:      s.Role,
	}
}

func (editable StaffEditable) apply(s *models.Staff) {
	s.FirstName = editable.FirstName
	s.LastName = editable.LastName
	s.Email = editable.Email
	s.Phone = editable.Phone
	s.Role = editable.Role
}

// RegisterStaffRoutes registers the routes for staff with
// the RouterGroup that is passed.
func RegisterStaffRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStaffList)
		r.GET("", GetStaffList)
		r.POST("", CreateStaff)
	}

	// Staff with ID
	{
		r.OPTIONS("/:id", OptionsStaffDetail)
		r.GET("/:id", GetStaff)
		r.PATCH("/:id", UpdateStaff)
		r.DELETE("/:id", DeleteStaff)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Staff
// @Success		204
// @Router			/v1/staff [options]
func OptionsStaffList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Staff
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/staff/{id} [options]
func OptionsStaffDetail(c *gin.Context) {
	optionsDetail(c, models.Staff{})
}

// @Summary		Get staff
// @Description	Returns all staff members ordered by their display name
// @Tags			Staff
// @Produce		json
// @Success		200	{object}	ListResponse[models.Staff]
// @Failure		500	{object}	ListResponse[models.Staff]
// @Router			/v1/staff [get]
func GetStaffList(c *gin.Context) {
	list(c, func(staff *[]models.Staff) error {
		return models.DB.Order("last_name ASC, first_name ASC").Find(staff).Error
	})
}

// @Summary		Get staff member
// @Description	Returns a specific staff member
// @Tags			Staff
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.Staff]
// @Failure		400	{object}	ObjectResponse[models.Staff]
// @Failure		404	{object}	ObjectResponse[models.Staff]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/staff/{id} [get]
func GetStaff(c *gin.Context) {
	getResource(c, models.Staff{})
}

// @Summary		Create staff member
// @Description	Creates a new staff member
// @Tags			Staff
// @Accept			json
// @Produce		json
// @Success		201		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			staff	body		StaffEditable	true	"Staff member"
// @Router			/v1/staff [post]
func CreateStaff(c *gin.Context) {
	var editable StaffEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusCreated, action.Invalid(fields))
		return
	}

	var staff models.Staff
	editable.apply(&staff)

	ctx := c.Request.Context()
	err = models.DB.WithContext(ctx).Create(&staff).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.StaffList())
	respond(c, http.StatusCreated, action.Ok("Staff member created", staff))
}

// @Summary		Update staff member
// @Description	Update an existing staff member. Only values to be updated need to be specified.
// @Tags			Staff
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			staff	body		StaffEditable	true	"Staff member"
// @Router			/v1/staff/{id} [patch]
func UpdateStaff(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var staff models.Staff
	err := models.DB.WithContext(ctx).First(&staff, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	editable := staffEditable(staff)
	err = httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusOK, action.Invalid(fields))
		return
	}

	editable.apply(&staff)
	err = models.DB.WithContext(ctx).Save(&staff).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.StaffList(), revalidate.StaffDetail(staff.ID))
	respond(c, http.StatusOK, action.Ok("Staff member updated", staff))
}

// @Summary		Delete staff member
// @Description	Deletes a staff member without assignments
// @Tags			Staff
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/staff/{id} [delete]
func DeleteStaff(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var staff models.Staff
	err := models.DB.WithContext(ctx).First(&staff, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	// Assignments carry budget items, removing them here would skip
	// the recomputation of the budget
	var assignments int64
	err = models.DB.WithContext(ctx).Model(&models.StaffAssignment{}).Where(&models.StaffAssignment{StaffID: staff.ID}).Count(&assignments).Error
	if err != nil {
		fail(c, err)
		return
	}

	if assignments > 0 {
		fail(c, errStaffAssigned)
		return
	}

	err = models.DB.WithContext(ctx).Delete(&staff).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.StaffList(), revalidate.StaffDetail(staff.ID))
	respond(c, http.StatusNoContent, action.Ok("Staff member deleted", nil))
}
