package models

// Appointment is a scheduling entry independent of rentals. Customer and
// dress references are optional.
type Appointment struct {
	ID           int64  `json:"id"`
	CustomerID   *int64 `json:"customer_id"`
	DressID      *int64 `json:"dress_id"`
	Type         string `json:"type"` // fitting, pickup, return, other
	Date         string `json:"date"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
	Status       string `json:"status"` // scheduled, completed, cancelled
	ReminderSent bool   `json:"reminder_sent"`
	CreatedAt    string `json:"created_at"`

	// Joined display fields.
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	DressName     string `json:"dress_name,omitempty"`
}
