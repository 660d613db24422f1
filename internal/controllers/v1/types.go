package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/agenda"
	"github.com/nuno80/agenzia-eventi/internal/budgetsync"
	"github.com/nuno80/agenzia-eventi/internal/httputil"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	ae_uuid "github.com/nuno80/agenzia-eventi/internal/uuid"
)

type URIID struct {
	ID ae_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// EventFilter restricts lists to the resources of one event.
type EventFilter struct {
	Event ae_uuid.UUID `form:"event" format:"UUID"` // Filter by event ID
}

type ObjectResponse[T any] struct {
	Data  *T      `json:"data"`                                                          // The resource
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ListResponse[T any] struct {
	Data  []T     `json:"data"`                                                          // List of resources
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

var notifier revalidate.Notifier = revalidate.LogNotifier{}

// SetNotifier sets the notifier that is signaled with the invalidated
// views after every successful mutation.
func SetNotifier(n revalidate.Notifier) {
	notifier = n
}

func synchronizer() *budgetsync.Synchronizer {
	return budgetsync.New(models.DB, budgetsync.WithNotifier(notifier))
}

func gateway() *agenda.Gateway {
	return agenda.NewGateway(models.DB, notifier)
}

// respond writes the result of a mutation. successStatus is used when
// the mutation succeeded.
func respond(c *gin.Context, successStatus int, r action.Result) {
	if !r.Success {
		c.JSON(status(r.Err()), r)
		return
	}

	if successStatus == http.StatusNoContent {
		c.JSON(http.StatusNoContent, nil)
		return
	}

	c.JSON(successStatus, r)
}

// fail writes a failed mutation result for err.
func fail(c *gin.Context, err error) {
	c.JSON(status(err), action.Fail(err))
}

// bindURI binds the ID from the URI. On error, the response is written
// and ok is false.
func bindURI(c *gin.Context) (id ae_uuid.UUID, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return ae_uuid.Nil, false
	}

	return uri.ID, true
}

// bindFilter binds the event filter. On error, the response is written
// and ok is false. When required is set, the event must be specified.
func bindFilter(c *gin.Context, required bool) (filter EventFilter, ok bool) {
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return filter, false
	}

	if required && filter.Event.IsNil() {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errEventParameter.Error(),
		})
		return filter, false
	}

	return filter, true
}

// optionsDetail returns the appropriate response for an HTTP OPTIONS request
// for a specific resource.
func optionsDetail[R models.Event | models.Staff | models.Speaker | models.BudgetCategory | models.BudgetItem | models.StaffAssignment | models.Sponsor | models.AgendaSession](c *gin.Context, resource R) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := models.DB.First(&resource, "id = ?", id.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getResource writes the resource with the ID from the URI.
func getResource[R models.Event | models.Staff | models.Speaker | models.BudgetCategory | models.BudgetItem | models.StaffAssignment | models.Sponsor | models.AgendaSession](c *gin.Context, resource R) {
	id, ok := bindURI(c)
	if !ok {
		return
	}

	err := models.DB.First(&resource, "id = ?", id.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ObjectResponse[R]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ObjectResponse[R]{Data: &resource})
}

// list writes the result of the query.
func list[R any](c *gin.Context, query func(*[]R) error) {
	data := make([]R, 0)
	err := query(&data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ListResponse[R]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ListResponse[R]{Data: data})
}
