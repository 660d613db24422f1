package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/agenda"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
)

// EventEditable represents all user configurable parameters
type EventEditable struct {
	Name      string    `json:"name" validate:"required,max=255" example:"Annual Partner Summit"` // Name of the event
	Location  string    `json:"location" validate:"max=255" example:"Milano, Palazzo delle Stelline"`
	StartDate time.Time `json:"startDate" validate:"required" example:"2026-05-12T09:00:00Z"`
	EndDate   time.Time `json:"endDate" validate:"required,gtefield=StartDate" example:"2026-05-13T18:00:00Z"`
	Note      string    `json:"note" validate:"max=2000"`
}

func eventEditable(e models.Event) EventEditable {
	return EventEditable{
		Name:      e.Name,
		Location:  e.Location,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Note:      e.Note,
	}
}

func (editable EventEditable) apply(e *models.Event) {
	e.Name = editable.Name
	e.Location = editable.Location
	e.StartDate = editable.StartDate
	e.EndDate = editable.EndDate
	e.Note = editable.Note
}

// RegisterEventRoutes registers the routes for events with
// the RouterGroup that is passed.
func RegisterEventRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEventList)
		r.GET("", GetEvents)
		r.POST("", CreateEvent)
	}

	// Event with ID
	{
		r.OPTIONS("/:id", OptionsEventDetail)
		r.GET("/:id", GetEvent)
		r.PATCH("/:id", UpdateEvent)
		r.DELETE("/:id", DeleteEvent)
		r.OPTIONS("/:id/agenda", OptionsEventAgenda)
		r.GET("/:id/agenda", GetEventAgenda)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Router			/v1/events [options]
func OptionsEventList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [options]
func OptionsEventDetail(c *gin.Context) {
	optionsDetail(c, models.Event{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Router			/v1/events/{id}/agenda [options]
func OptionsEventAgenda(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get events
// @Description	Returns all events, the next one first
// @Tags			Events
// @Produce		json
// @Success		200	{object}	ListResponse[models.Event]
// @Failure		500	{object}	ListResponse[models.Event]
// @Router			/v1/events [get]
func GetEvents(c *gin.Context) {
	list(c, func(events *[]models.Event) error {
		return models.DB.Order("start_date ASC, name ASC").Find(events).Error
	})
}

// @Summary		Get event
// @Description	Returns a specific event
// @Tags			Events
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.Event]
// @Failure		400	{object}	ObjectResponse[models.Event]
// @Failure		404	{object}	ObjectResponse[models.Event]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [get]
func GetEvent(c *gin.Context) {
	getResource(c, models.Event{})
}

// @Summary		Create event
// @Description	Creates a new event
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		201		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			event	body		EventEditable	true	"Event"
// @Router			/v1/events [post]
func CreateEvent(c *gin.Context) {
	var editable EventEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusCreated, action.Invalid(fields))
		return
	}

	var event models.Event
	editable.apply(&event)

	err = models.DB.WithContext(c.Request.Context()).Create(&event).Error
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, action.Ok("Event created", event))
}

// @Summary		Update event
// @Description	Update an existing event. Only values to be updated need to be specified.
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			event	body		EventEditable	true	"Event"
// @Router			/v1/events/{id} [patch]
func UpdateEvent(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var event models.Event
	err := models.DB.WithContext(c.Request.Context()).First(&event, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	// Fields missing in the body keep their current values
	editable := eventEditable(event)
	err = httputil.BindData(c, &editable)
	if err != nil {
		fail(c, err)
		return
	}

	if fields := action.Validate(editable); fields != nil {
		respond(c, http.StatusOK, action.Invalid(fields))
		return
	}

	editable.apply(&event)
	err = models.DB.WithContext(c.Request.Context()).Save(&event).Error
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, action.Ok("Event updated", event))
}

// @Summary		Delete event
// @Description	Deletes an event with everything that belongs to it
// @Tags			Events
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [delete]
func DeleteEvent(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var event models.Event
	err := models.DB.WithContext(c.Request.Context()).First(&event, "id = ?", id.UUID).Error
	if err != nil {
		fail(c, err)
		return
	}

	err = models.DB.WithContext(c.Request.Context()).Delete(&event).Error
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusNoContent, action.Ok("Event deleted", nil))
}

// @Summary		Get event agenda
// @Description	Returns the sessions of an event grouped by day, in start time order
// @Tags			Events
// @Produce		json
// @Success		200	{object}	ListResponse[agenda.Day]
// @Failure		400	{object}	ListResponse[agenda.Day]
// @Failure		404	{object}	ListResponse[agenda.Day]
// @Failure		500	{object}	ListResponse[agenda.Day]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			tz	query		string	false	"IANA time zone the days are determined in. Defaults to UTC."
// @Router			/v1/events/{id}/agenda [get]
func GetEventAgenda(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			s := errUnknownTimezone.Error()
			c.JSON(http.StatusBadRequest, ListResponse[agenda.Day]{Error: &s})
			return
		}
		loc = l
	}

	list(c, func(days *[]agenda.Day) error {
		err := models.DB.WithContext(c.Request.Context()).First(&models.Event{}, "id = ?", id.UUID).Error
		if err != nil {
			return err
		}

		timeline, err := agenda.NewTimeline(c.Request.Context(), gateway(), id.UUID, agenda.WithLocation(loc))
		if err != nil {
			return err
		}

		*days = append(*days, timeline.Days()...)
		return nil
	})
}
