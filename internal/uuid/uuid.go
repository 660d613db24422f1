// Package uuid wraps google/uuid so that IDs can be bound from URI
// parameters and query strings by gin.
package uuid

import (
	"strings"

	google_uuid "github.com/google/uuid"
)

// UUID is a resource ID as it appears in paths and filters.
type UUID struct {
	google_uuid.UUID
}

// Nil is the value of an ID that was not specified.
var Nil UUID

// IsNil reports whether no ID was specified.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}

// UnmarshalParam parses an ID from a request parameter. Surrounding
// whitespace is ignored, an empty parameter yields Nil.
func (u *UUID) UnmarshalParam(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}
