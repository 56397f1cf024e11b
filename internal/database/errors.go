package database

import "errors"

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a rental's date range overlaps an
	// existing non-cancelled rental for the same dress.
	ErrConflict = errors.New("rental dates conflict with an existing rental")

	// ErrDressUnavailable is returned when the dress is under maintenance
	// and cannot be booked regardless of conflicts.
	ErrDressUnavailable = errors.New("dress is not available for booking")

	// ErrInvalidTransition is returned when a rental in a terminal status
	// is asked to change status.
	ErrInvalidTransition = errors.New("invalid rental status transition")

	// ErrHasRentals is the referential guard for customer/dress deletion.
	ErrHasRentals = errors.New("record still has dependent rentals")

	// ErrNoData is returned by exports when the query yields zero rows.
	ErrNoData = errors.New("no data to export")

	// ErrInvalidExportType is returned for an unrecognized export kind.
	ErrInvalidExportType = errors.New("invalid export type")
)
