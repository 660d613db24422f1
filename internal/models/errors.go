package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrEventNotFound            = errors.New("there is no event with the specified ID")
	ErrBudgetCategoryNameInUse  = errors.New("the budget category name must be unique for the event")
	ErrStaffEmailNotUnique      = errors.New("a staff member with this email address already exists")
	ErrSessionTimeWindowInvalid = errors.New("the end time of a session must be after its start time")
)

// ErrReferenceInvalid is returned when a foreign key does not point to an existing resource.
var ErrReferenceInvalid = errors.New("a resource ID you specified does not identify an existing resource")
