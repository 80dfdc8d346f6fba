package entity

import "errors"

var (
	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrNoObservations is returned when there is no data to select from.
	ErrNoObservations = errors.New("no observations available")
	// ErrNoPriorObservation is returned when the fetched window contains no
	// observation at or before the requested start date.
	ErrNoPriorObservation = errors.New("no observation at or before start date")
)
