package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nuno80/agenzia-eventi/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errEventParameter  = errors.New("the event query parameter must be set")
	errUnknownTimezone = errors.New("the tz query parameter is not a known time zone")
)

var (
	errStaffAssigned        = errors.New("the staff member still has assignments, delete them first")
	errItemLinked           = errors.New("the budget item is managed by a staff assignment or a sponsor and cannot be deleted directly")
	errCategoryOfOtherEvent = fmt.Errorf("%w: the budget category belongs to a different event", models.ErrReferenceInvalid)
)
