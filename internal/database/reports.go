package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"atelier/internal/models"
)

func (s *Store) CountDresses(ctx context.Context) (int64, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM dresses`)
}

func (s *Store) CountDressesByStatus(ctx context.Context, status string) (int64, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM dresses WHERE status = ?`, status)
}

func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM customers`)
}

func (s *Store) CountRentalsByStatus(ctx context.Context, status string) (int64, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM rentals WHERE status = ?`, status)
}

func (s *Store) CountAppointmentsOn(ctx context.Context, date string) (int64, error) {
	return s.countRow(ctx, `SELECT COUNT(*) FROM appointments WHERE date = ? AND status = ?`,
		date, models.AppointmentScheduled)
}

func (s *Store) countRow(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := s.queryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}

func (s *Store) SumPaymentsSince(ctx context.Context, date string) (float64, error) {
	var total float64
	err := s.queryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= ?`, date).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

// MonthlyRevenue groups payments by calendar month, newest first. The month
// key is a substring of the TEXT ISO date, which both backings support with
// identical semantics. Empty bounds mean no range filter.
func (s *Store) MonthlyRevenue(ctx context.Context, startDate, endDate string) ([]models.MonthlyRevenue, error) {
	query := `SELECT substr(payment_date, 1, 7) AS month, SUM(amount), COUNT(*)
        FROM payments`
	var args []any
	if startDate != "" && endDate != "" {
		query += ` WHERE payment_date BETWEEN ? AND ?`
		args = append(args, startDate, endDate)
	}
	query += ` GROUP BY substr(payment_date, 1, 7) ORDER BY month DESC`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	var revenue []models.MonthlyRevenue
	for rows.Next() {
		var m models.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Total, &m.PaymentCount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue: %w", err)
		}
		revenue = append(revenue, m)
	}
	return revenue, rows.Err()
}

// PopularDresses ranks dresses by rental count. Dresses with zero rentals
// are included with a zero count and zero revenue.
func (s *Store) PopularDresses(ctx context.Context, limit int) ([]models.PopularDress, error) {
	if limit <= 0 {
		limit = models.PopularDressesLimit
	}
	rows, err := s.query(ctx, `SELECT d.id, d.name, d.description, d.size, d.color, d.rental_price,
               d.image_path, d.status, d.created_at,
               COUNT(r.id) AS rental_count,
               COALESCE(SUM(r.total_price), 0) AS total_revenue
        FROM dresses d
        LEFT JOIN rentals r ON d.id = r.dress_id
        GROUP BY d.id, d.name, d.description, d.size, d.color, d.rental_price, d.image_path, d.status, d.created_at
        ORDER BY rental_count DESC, d.id ASC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular dresses: %w", err)
	}
	defer rows.Close()

	var dresses []models.PopularDress
	for rows.Next() {
		var p models.PopularDress
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Size,
			&p.Color,
			&p.RentalPrice,
			&p.ImagePath,
			&p.Status,
			&p.CreatedAt,
			&p.RentalCount,
			&p.TotalRevenue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan popular dress: %w", err)
		}
		dresses = append(dresses, p)
	}
	return dresses, rows.Err()
}

// ReturningCustomers keeps only customers with more than one rental.
func (s *Store) ReturningCustomers(ctx context.Context) ([]models.ReturningCustomer, error) {
	rows, err := s.query(ctx, `SELECT c.id, c.name, c.phone, c.email, c.address, c.notes, c.created_at,
               COUNT(r.id) AS rental_count,
               COALESCE(SUM(r.total_price), 0) AS total_spent
        FROM customers c
        JOIN rentals r ON c.id = r.customer_id
        GROUP BY c.id, c.name, c.phone, c.email, c.address, c.notes, c.created_at
        HAVING COUNT(r.id) > 1
        ORDER BY rental_count DESC, c.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query returning customers: %w", err)
	}
	defer rows.Close()

	var customers []models.ReturningCustomer
	for rows.Next() {
		var r models.ReturningCustomer
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Phone,
			&r.Email,
			&r.Address,
			&r.Notes,
			&r.CreatedAt,
			&r.RentalCount,
			&r.TotalSpent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan returning customer: %w", err)
		}
		customers = append(customers, r)
	}
	return customers, rows.Err()
}

// CalendarRentals returns every non-cancelled rental for projection onto
// the calendar view.
func (s *Store) CalendarRentals(ctx context.Context) ([]models.Rental, error) {
	rows, err := s.query(ctx, rentalSelect+` WHERE r.status != ? ORDER BY r.start_date ASC`,
		models.RentalCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar rentals: %w", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}

var exportQueries = map[string]string{
	"rentals": `SELECT r.id, d.name AS dress_name, c.name AS customer_name,
               r.start_date, r.end_date, r.total_price, r.deposit, r.status
        FROM rentals r
        JOIN dresses d ON r.dress_id = d.id
        JOIN customers c ON r.customer_id = c.id
        ORDER BY r.start_date DESC`,
	"customers": `SELECT id, name, phone, email, address FROM customers ORDER BY id`,
	"dresses":   `SELECT id, name, size, color, rental_price, status FROM dresses ORDER BY id`,
	"payments": `SELECT p.id, p.amount, p.payment_date, p.method,
               c.name AS customer_name, d.name AS dress_name
        FROM payments p
        JOIN rentals r ON p.rental_id = r.id
        JOIN customers c ON r.customer_id = c.id
        JOIN dresses d ON r.dress_id = d.id
        ORDER BY p.payment_date DESC`,
}

// stringValue scans any SQL value into its text form, with NULL as "".
type stringValue struct {
	s string
}

func (v *stringValue) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		v.s = ""
	case string:
		v.s = t
	case []byte:
		v.s = string(t)
	case int64:
		v.s = strconv.FormatInt(t, 10)
	case float64:
		v.s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		v.s = strconv.FormatBool(t)
	case time.Time:
		v.s = t.Format(models.DateLayout)
	default:
		v.s = fmt.Sprintf("%v", t)
	}
	return nil
}

// ExportRows runs the export query for the kind and returns column names
// plus stringified rows. NULL values render as empty strings.
func (s *Store) ExportRows(ctx context.Context, kind string) ([]string, [][]string, error) {
	query, ok := exportQueries[kind]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidExportType, kind)
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get export columns: %w", err)
	}

	var data [][]string
	for rows.Next() {
		values := make([]stringValue, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = v.s
		}
		data = append(data, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	if len(data) == 0 {
		return nil, nil, ErrNoData
	}
	return columns, data, nil
}
