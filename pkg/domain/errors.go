package domain

import "fmt"

// ValidationError reports a malformed or incomplete record rejected before
// any write. Always recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceError reports a resource id that does not name an existing
// resource at creation or edit time.
type ReferenceError struct {
	Entity EntityType
	ID     string
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown resource %q", e.Entity, e.ID)
}

// ConflictError reports an overlapping active reservation for the same
// resource. It carries the conflicting reservation so callers can surface it;
// dates must not be silently coerced.
type ConflictError struct {
	ResourceID    string
	ReservationID string
	StartDate     Date
	EndDate       Date
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("resource %q already reserved %s..%s by reservation %q",
		e.ResourceID, e.StartDate, e.EndDate, e.ReservationID)
}

// NotFoundError reports an update or delete against an unknown id.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// PersistenceError wraps a storage medium failure. The triggering command is
// fatal: in-memory state is never advanced past a failed save, so derived
// state stays consistent with what is durably stored.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s collection %q: %v", e.Op, e.Collection, e.Err)
}

// Unwrap exposes the underlying storage error.
func (e PersistenceError) Unwrap() error { return e.Err }
