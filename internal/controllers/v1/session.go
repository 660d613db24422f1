package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nuno80/agenzia-eventi/internal/agenda"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
)

// RegisterSessionRoutes registers the routes for agenda sessions with
// the RouterGroup that is passed.
func RegisterSessionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSessionList)
		r.GET("", GetSessions)
		r.POST("", CreateSession)
	}

	// Session with ID
	{
		r.OPTIONS("/:id", OptionsSessionDetail)
		r.GET("/:id", GetSession)
		r.PATCH("/:id", UpdateSession)
		r.DELETE("/:id", DeleteSession)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Router			/v1/sessions [options]
func OptionsSessionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id} [options]
func OptionsSessionDetail(c *gin.Context) {
	optionsDetail(c, models.AgendaSession{})
}

// @Summary		Get sessions
// @Description	Returns the sessions of an event in start time order
// @Tags			Sessions
// @Produce		json
// @Success		200		{object}	ListResponse[models.AgendaSession]
// @Failure		400		{object}	httpError
// @Failure		500		{object}	ListResponse[models.AgendaSession]
// @Param			event	query		string	true	"Event ID"
// @Router			/v1/sessions [get]
func GetSessions(c *gin.Context) {
	filter, ok := bindFilter(c, true)
	if !ok {
		return
	}

	list(c, func(sessions *[]models.AgendaSession) error {
		s, err := gateway().ListSessions(c.Request.Context(), filter.Event.UUID)
		*sessions = append(*sessions, s...)
		return err
	})
}

// @Summary		Get session
// @Description	Returns a specific session
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	ObjectResponse[models.AgendaSession]
// @Failure		400	{object}	ObjectResponse[models.AgendaSession]
// @Failure		404	{object}	ObjectResponse[models.AgendaSession]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id} [get]
func GetSession(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	session, err := gateway().GetSession(c.Request.Context(), id.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObjectResponse[models.AgendaSession]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ObjectResponse[models.AgendaSession]{Data: &session})
}

// @Summary		Create session
// @Description	Creates a new agenda session
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		201		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			session	body		agenda.SessionInput	true	"Session"
// @Router			/v1/sessions [post]
func CreateSession(c *gin.Context) {
	var in agenda.SessionInput
	err := httputil.BindData(c, &in)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gateway().CreateSession(c.Request.Context(), in))
}

// @Summary		Update session
// @Description	Update an existing session. Only values to be updated need to be specified. A nil UUID as speakerId removes the speaker, 0 as maxAttendees removes the attendee limit.
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		200		{object}	action.Result
// @Failure		400		{object}	action.Result
// @Failure		404		{object}	action.Result
// @Failure		500		{object}	action.Result
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			session	body		agenda.SessionPatch	true	"Session"
// @Router			/v1/sessions/{id} [patch]
func UpdateSession(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	var patch agenda.SessionPatch
	err := httputil.BindData(c, &patch)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gateway().UpdateSession(c.Request.Context(), id.UUID, patch))
}

// @Summary		Delete session
// @Description	Deletes a session
// @Tags			Sessions
// @Success		204
// @Failure		400	{object}	action.Result
// @Failure		404	{object}	action.Result
// @Failure		500	{object}	action.Result
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id} [delete]
func DeleteSession(c *gin.Context) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	respond(c, http.StatusNoContent, gateway().DeleteSession(c.Request.Context(), id.UUID))
}
