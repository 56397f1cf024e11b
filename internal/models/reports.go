package models

// DashboardSummary holds the point-in-time counters for the dashboard.
// Every call re-queries; nothing is cached.
type DashboardSummary struct {
	TotalDresses       int64   `json:"totalDresses"`
	AvailableDresses   int64   `json:"availableDresses"`
	TotalCustomers     int64   `json:"totalCustomers"`
	ActiveRentals      int64   `json:"activeRentals"`
	TodaysAppointments int64   `json:"todaysAppointments"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
}

// CalendarEvent is a rental projected onto the calendar view.
type CalendarEvent struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Color        string `json:"color"`
	DressName    string `json:"dressName"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}
