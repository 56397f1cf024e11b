package models

type Payment struct {
	ID          int64   `json:"id"`
	RentalID    int64   `json:"rental_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method"` // cash, credit, transfer, bit
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`

	// Joined display fields.
	CustomerName string `json:"customer_name,omitempty"`
	DressName    string `json:"dress_name,omitempty"`
}

// MonthlyRevenue is one month's aggregated payments.
type MonthlyRevenue struct {
	Month        string  `json:"month"` // YYYY-MM
	Total        float64 `json:"total"`
	PaymentCount int64   `json:"payment_count"`
}
