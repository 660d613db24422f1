package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nuno80/agenzia-eventi/internal/budgetsync"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
)

// RegisterSponsorRoutes registers the routes for sponsors with
// the RouterGroup that is passed.
func RegisterSponsorRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSponsorList)
		r.GET("", GetSponsors)
		r.POST("", CreateSponsor)
	}

	// Sponsor with ID
	{
		r.OPTIONS("/:id", OptionsSponsorDetail)
		r.GET("/:id", GetSponsor)
		r.PATCH("/:id", UpdateSponsor)
		r.DELETE("/:id", DeleteSponsor)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sponsors
// @Success		204
// @Router			/v1/sponsors [options]
func OptionsSponsorList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sponsors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sponsors/{id} [options]
func OptionsSponsorDetail(c *gin.Context) {
	optionsDetail(c, models.Sponsor{})
}

// @Summary		Get sponsors
// @Description	Returns the sponsors of an event, the biggest first
// @Tags			Sponsors
// @Produce		json
// @Success		200		{object}	ListResponse[models.Sponsor]
// @Failure		400		{object}	httpError
// @Failure		500		{object}	ListResponse[models.Sponsor]
// @Param			event	query		string	true	"Event ID"
// @Router			/v1/sponsors [get]
func GetSponsors(c *gin.Context) {
	filter, ok := bindFilter(c, true)
	if !ok {
		return
	}

	list(c, func(sponsors *[]models.Sponsor) error {
		return models.DB.
			Where(&models.Sponsor{EventID: filter.Event.UUID}).
			Order("sponsorship_amount DESC, company_name ASC").
			Find(sponsors).Error
	})
}

// @Summary		Get sponsor
// @Description	Returns a specific sponsor
// @Tags			Sponsors
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.Sponsor]
// @Failure		400	{object}	ObjectResponse[models.Sponsor]
// @Failure		404	{object}	ObjectResponse[models.Sponsor]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sponsors/{id} [get]
func GetSponsor(c *gin.Context) {
	getResource(c, models.Sponsor{})
}

// @Summary		Create sponsor
// @Description	Creates a sponsor. The sponsorship is booked as income on the selected budget category, or the "Income" category of the event.
// @Tags			Sponsors
// @Accept			json
// @Produce		json
// @Success		201		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			sponsor	body		budgetsync.SponsorInput	true	"Sponsor"
// @Router			/v1/sponsors [post]
func CreateSponsor(c *gin.Context) {
	var in budgetsync.SponsorInput
	err := httputil.BindData(c, &in)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, synchronizer().CreateSponsor(c.Request.Context(), in))
}

// @Summary		Update sponsor
// @Description	Update an existing sponsor. Only values to be updated need to be specified.
// @Tags			Sponsors
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			sponsor	body		budgetsync.SponsorPatch	true	"Sponsor"
// @Router			/v1/sponsors/{id} [patch]
func UpdateSponsor(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var patch budgetsync.SponsorPatch
	err := httputil.BindData(c, &patch)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, synchronizer().UpdateSponsor(c.Request.Context(), id.UUID, patch))
}

// @Summary		Delete sponsor
// @Description	Deletes a sponsor and its budget item
// @Tags			Sponsors
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sponsors/{id} [delete]
func DeleteSponsor(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	respond(c, http.StatusNoContent, synchronizer().DeleteSponsor(c.Request.Context(), id.UUID))
}
