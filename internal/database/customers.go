package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/models"
)

const customerColumns = `id, name, phone, email, address, notes, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.Notes,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	row := s.queryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	createdAt := now()
	id, err := s.insert(ctx, `INSERT INTO customers (name, phone, email, address, notes, created_at)
            VALUES (?, ?, ?, ?, ?, ?)`,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
		customer.Notes,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	customer.ID = id
	customer.CreatedAt = createdAt
	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	result, err := s.exec(ctx, `UPDATE customers
            SET name = ?, phone = ?, email = ?, address = ?, notes = ?
            WHERE id = ?`,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.Address,
		customer.Notes,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) RentalCountForCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM rentals WHERE customer_id = ?`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customer rentals: %w", err)
	}
	return count, nil
}

func (s *Store) ListRentalsForCustomer(ctx context.Context, customerID int64) ([]models.Rental, error) {
	rows, err := s.query(ctx, rentalSelect+` WHERE r.customer_id = ? ORDER BY r.start_date DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer rentals: %w", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}
