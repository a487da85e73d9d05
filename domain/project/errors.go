package project

import "errors"

var (
	// ErrInvalidProject is returned when a loaded project file violates a
	// structural invariant (schema version, id sequence, ordering)
	ErrInvalidProject = errors.New("invalid project file")

	// ErrNoEvents is returned when a generation run finds no enabled events
	ErrNoEvents = errors.New("project has no enabled events")
)
