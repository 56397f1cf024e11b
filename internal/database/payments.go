package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/models"
)

const paymentColumns = `id, rental_id, amount, payment_date, method, notes, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.RentalID,
		&p.Amount,
		&p.PaymentDate,
		&p.Method,
		&p.Notes,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPayments returns every payment joined with customer and dress names.
func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := s.query(ctx, `SELECT p.id, p.rental_id, p.amount, p.payment_date, p.method, p.notes, p.created_at,
               c.name, d.name
        FROM payments p
        JOIN rentals r ON p.rental_id = r.id
        JOIN customers c ON r.customer_id = c.id
        JOIN dresses d ON r.dress_id = d.id
        ORDER BY p.payment_date DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.ID,
			&p.RentalID,
			&p.Amount,
			&p.PaymentDate,
			&p.Method,
			&p.Notes,
			&p.CreatedAt,
			&p.CustomerName,
			&p.DressName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	row := s.queryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

func (s *Store) ListPaymentsForRental(ctx context.Context, rentalID int64) ([]models.Payment, error) {
	rows, err := s.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE rental_id = ? ORDER BY payment_date DESC, id DESC`, rentalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rental payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	createdAt := now()
	id, err := s.insert(ctx, `INSERT INTO payments (rental_id, amount, payment_date, method, notes, created_at)
            VALUES (?, ?, ?, ?, ?, ?)`,
		payment.RentalID,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
		payment.Notes,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	payment.ID = id
	payment.CreatedAt = createdAt
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	result, err := s.exec(ctx, `UPDATE payments
            SET amount = ?, payment_date = ?, method = ?, notes = ?
            WHERE id = ?`,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
		payment.Notes,
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
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

func (s *Store) DeletePayment(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
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

// DeletePaymentsForRental is part of the rental delete cascade.
func (s *Store) DeletePaymentsForRental(ctx context.Context, rentalID int64) error {
	_, err := s.exec(ctx, `DELETE FROM payments WHERE rental_id = ?`, rentalID)
	if err != nil {
		return fmt.Errorf("failed to delete rental payments: %w", err)
	}
	return nil
}
