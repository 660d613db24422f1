package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
)

// SpeakerEditable represents all user configurable parameters
type SpeakerEditable struct {
	EventID   uuid.UUID `json:"eventId" validate:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // Only used on creation
	FirstName string    `json:"firstName" validate:"required,max=100" example:"Laura"`
	LastName  string    `json:"lastName" validate:"required,max=100" example:"Verdi"`
	Company   string    `json:"company" validate:"max=255" example:"Politecnico di Milano"`
	Bio       string    `json:"bio" validate:"max=5000"`
}

func speakerEditable(s models.Speaker) SpeakerEditable {
	return SpeakerEditable{
		EventID:   s.EventID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Company:   s.Company,
		Bio:       s.Bio,
	}
}

func (editable SpeakerEditable) apply(s *models.Speaker) {
	s.EventID = editable.EventID
	s.FirstName = editable.FirstName
	s.LastName = editable.LastName
	s.Company = editable.Company
	s.Bio = editable.Bio
}

// RegisterSpeakerRoutes registers the routes for speakers with
// the RouterGroup that is passed.
func RegisterSpeakerRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpeakerList)
		r.GET("", GetSpeakers)
		r.POST("", CreateSpeaker)
	}

	// Speaker with ID
	{
		r.OPTIONS("/:id", OptionsSpeakerDetail)
		r.GET("/:id", GetSpeaker)
		r.PATCH("/:id", UpdateSpeaker)
		r.DELETE("/:id", DeleteSpeaker)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Speakers
// @Success		204
// @Router			/v1/speakers [options]
func OptionsSpeakerList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Speakers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/speakers/{id} [options]
func OptionsSpeakerDetail(c *gin.Context) {
	optionsDetail(c, models.Speaker{})
}

// @Summary		Get speakers
// @Description	Returns the speakers, optionally only those of one event
// @Tags			Speakers
// @Produce		json
// @Success		200		{object}	ListResponse[models.Speaker]
// @Failure		400		{object}	httpError
// @Failure		500		{object}	ListResponse[models.Speaker]
// @Param			event	query		string	false	"Filter by event ID"
// @Router			/v1/speakers [get]
func GetSpeakers(c *gin.Context) {
	filter, ok := bindFilter(c, false)
	if !ok {
		return
	}

	list(c, func(speakers *[]models.Speaker) error {
		return models.DB.
			Where(&models.Speaker{EventID: filter.Event.UUID}).
			Order("last_name ASC, first_name ASC").
			Find(speakers).Error
	})
}

// @Summary		Get speaker
// @Description	Returns a specific speaker
// @Tags			Speakers
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.Speaker]
// @Failure		400	{object}	ObjectResponse[models.Speaker]
// @Failure		404	{object}	ObjectResponse[models.Speaker]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/speakers/{id} [get]
func GetSpeaker(c *gin.Context) {
	getResource(c, models.Speaker{})
}

// @Summary		Create speaker
// @Description	Creates a new speaker for an event
// @Tags			Speakers
// @Accept			json
// @Produce		json
// @Success		201		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			speaker	body		SpeakerEditable	true	"Speaker"
// @Router			/v1/speakers [post]
func CreateSpeaker(c *gin.Context) {
	var editable SpeakerEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusCreated, action.Invalid(fields))
		return
	}

	var speaker models.Speaker
	editable.apply(&speaker)

	ctx := c.Request.Context()
	err = models.DB.WithContext(ctx).Create(&speaker).Error
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, action.Ok("Speaker created", speaker))
}

// @Summary		Update speaker
// @Description	Update an existing speaker. Only values to be updated need to be specified. The event cannot be changed.
// @Tags			Speakers
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			speaker	body		SpeakerEditable	true	"Speaker"
// @Router			/v1/speakers/{id} [patch]
func UpdateSpeaker(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var speaker models.Speaker
	err := models.DB.WithContext(ctx).First(&speaker, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	editable := speakerEditable(speaker)
	err = httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}
	editable.EventID = speaker.EventID

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusOK, action.Invalid(fields))
		return
	}

	editable.apply(&speaker)
	err = models.DB.WithContext(ctx).Save(&speaker).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.EventAgenda(speaker.EventID))
	respond(c, http.StatusOK, action.Ok("Speaker updated", speaker))
}

// @Summary		Delete speaker
// @Description	Deletes a speaker. Their sessions are kept without speaker.
// @Tags			Speakers
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/speakers/{id} [delete]
func DeleteSpeaker(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var speaker models.Speaker
	err := models.DB.WithContext(ctx).First(&speaker, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	err = models.DB.WithContext(ctx).Delete(&speaker).Error
	if err != nil {
		fail(c, err)
		return
	}

	notifier.Revalidate(ctx, revalidate.EventAgenda(speaker.EventID))
	respond(c, http.StatusNoContent, action.Ok("Speaker deleted", nil))
}
