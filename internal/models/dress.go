package models

type Dress struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	RentalPrice float64 `json:"rental_price"`
	ImagePath   string  `json:"image_path"`
	Status      string  `json:"status"` // available, rented, maintenance
	CreatedAt   string  `json:"created_at"`
}

// PopularDress is a dress joined with its rental statistics.
type PopularDress struct {
	Dress
	RentalCount  int64   `json:"rental_count"`
	TotalRevenue float64 `json:"total_revenue"`
}
