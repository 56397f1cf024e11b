package models

type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

// ReturningCustomer is a customer with more than one rental.
type ReturningCustomer struct {
	Customer
	RentalCount int64   `json:"rental_count"`
	TotalSpent  float64 `json:"total_spent"`
}
