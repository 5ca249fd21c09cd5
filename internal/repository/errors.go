// Package repository implements data access for the seat-map tables.
// This file defines the error values shared by the repositories so the
// handler tier can translate failures into HTTP statuses: not-found
// sentinels map to 404, ErrLayoutInUse to 409, ValidationError to 400
// and anything else to 500.
package repository

import (
	"errors"
	"fmt"
)

// ErrLayoutNotFound is returned when a layout lookup yields no rows.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrLayoutInUse is returned when destructive layout operations are
// blocked because seats under the layout carry event_seat_statuses
// rows. The caller must release or migrate the event state first.
var ErrLayoutInUse = errors.New("layout in use by event seat statuses")

// ErrEmailExists is returned by user creation on a duplicate email.
var ErrEmailExists = errors.New("email already exists")

// ValidationError reports a malformed input shape. Field identifies the
// offending spec element (e.g. "sections[2].rows[0].seats[4].x").
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout spec: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
