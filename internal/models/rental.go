package models

// Rental is a booking of one dress for one customer over an inclusive
// calendar-date range. Dates are ISO strings (YYYY-MM-DD).
type Rental struct {
	ID         int64   `json:"id"`
	DressID    int64   `json:"dress_id"`
	CustomerID int64   `json:"customer_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
	Deposit    float64 `json:"deposit"`
	Status     string  `json:"status"` // active, completed, cancelled
	Notes      string  `json:"notes"`
	CreatedAt  string  `json:"created_at"`

	// Joined display fields, populated by list/get queries.
	DressName     string `json:"dress_name,omitempty"`
	DressImage    string `json:"dress_image,omitempty"`
	DressColor    string `json:"dress_color,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`

	Payments []Payment `json:"payments,omitempty"`
}

// AvailabilityResult is the outcome of an overlap check for one dress.
type AvailabilityResult struct {
	Available bool     `json:"available"`
	Conflicts []Rental `json:"conflicts"`
}

// Overlaps reports whether two inclusive date ranges share at least one day.
// ISO date strings compare lexicographically in chronological order.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}
