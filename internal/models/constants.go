package models

const (
	DressAvailable   = "available"
	DressRented      = "rented"
	DressMaintenance = "maintenance"
)

const (
	RentalActive    = "active"
	RentalCompleted = "completed"
	RentalCancelled = "cancelled"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

const (
	AppointmentFitting = "fitting"
	AppointmentPickup  = "pickup"
	AppointmentReturn  = "return"
	AppointmentOther   = "other"
)

const (
	// DateLayout is the canonical calendar-date format used in storage,
	// queries and the API. Lexicographic order equals chronological order.
	DateLayout = "2006-01-02"

	// UpcomingReturnsWindowDays is the default lookahead for return alerts.
	UpcomingReturnsWindowDays = 7

	// PopularDressesLimit caps the popular-dresses ranking.
	PopularDressesLimit = 10

	// ReminderHour is the default local hour for the daily reminder scan.
	ReminderHour = 9

	// SettingsCacheTTL is the Redis TTL for cached settings, in seconds.
	SettingsCacheTTL = 60 * 60
)

// ValidRentalTransition reports whether a rental status change is allowed.
// Completed and cancelled are terminal.
func ValidRentalTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case RentalActive:
		return to == RentalCompleted || to == RentalCancelled
	default:
		return false
	}
}
