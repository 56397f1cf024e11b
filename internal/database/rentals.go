package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/models"
)

const rentalSelect = `SELECT r.id, r.dress_id, r.customer_id, r.start_date, r.end_date,
               r.total_price, r.deposit, r.status, r.notes, r.created_at,
               d.name, d.image_path, d.color,
               c.name, c.phone, c.email
        FROM rentals r
        JOIN dresses d ON r.dress_id = d.id
        JOIN customers c ON r.customer_id = c.id`

func scanRental(row interface{ Scan(...any) error }) (*models.Rental, error) {
	var r models.Rental
	err := row.Scan(
		&r.ID,
		&r.DressID,
		&r.CustomerID,
		&r.StartDate,
		&r.EndDate,
		&r.TotalPrice,
		&r.Deposit,
		&r.Status,
		&r.Notes,
		&r.CreatedAt,
		&r.DressName,
		&r.DressImage,
		&r.DressColor,
		&r.CustomerName,
		&r.CustomerPhone,
		&r.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRentals(rows *sql.Rows) ([]models.Rental, error) {
	var rentals []models.Rental
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental: %w", err)
		}
		rentals = append(rentals, *r)
	}
	return rentals, rows.Err()
}

func (s *Store) ListRentals(ctx context.Context) ([]models.Rental, error) {
	rows, err := s.query(ctx, rentalSelect+` ORDER BY r.start_date DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (s *Store) GetRental(ctx context.Context, id int64) (*models.Rental, error) {
	row := s.queryRow(ctx, rentalSelect+` WHERE r.id = ?`, id)
	r, err := scanRental(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	return r, nil
}

// FindConflicts returns every non-cancelled rental for the dress whose
// inclusive date range intersects [startDate, endDate]. Two ranges [a,b]
// and [c,d] intersect iff a <= d AND c <= b; a shared boundary date counts.
func (s *Store) FindConflicts(ctx context.Context, dressID int64, startDate, endDate string) ([]models.Rental, error) {
	rows, err := s.query(ctx, rentalSelect+`
        WHERE r.dress_id = ?
        AND r.status != ?
        AND r.start_date <= ?
        AND r.end_date >= ?
        ORDER BY r.start_date`,
		dressID, models.RentalCancelled, endDate, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicts: %w", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}

// CreateRentalWithLock runs the overlap check, the rental insert and the
// dress status flip inside one transaction, closing the check-then-act
// race between concurrent bookings of the same dress.
func (s *Store) CreateRentalWithLock(ctx context.Context, rental *models.Rental) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. The dress must exist and not be under maintenance. On postgres the
	// row lock serializes concurrent creates for the same dress: under the
	// default READ COMMITTED isolation two transactions could otherwise both
	// pass the conflict count before either insert commits. SQLite has a
	// single writer, so no lock clause is needed (or supported) there.
	dressQuery := `SELECT status FROM dresses WHERE id = ?`
	if s.driver == DriverPostgres {
		dressQuery += ` FOR UPDATE`
	}
	var dressStatus string
	err = tx.QueryRowContext(ctx, s.rebind(dressQuery), rental.DressID).Scan(&dressStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check dress status in tx: %w", err)
	}
	if dressStatus == models.DressMaintenance {
		return ErrDressUnavailable
	}

	// 2. Check for overlapping rentals inside the transaction.
	var conflictCount int
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM rentals
            WHERE dress_id = ? AND status != ? AND start_date <= ? AND end_date >= ?`),
		rental.DressID, models.RentalCancelled, rental.EndDate, rental.StartDate).Scan(&conflictCount)
	if err != nil {
		return fmt.Errorf("failed to check conflicts in tx: %w", err)
	}
	if conflictCount > 0 {
		return ErrConflict
	}

	// 3. Insert the rental as active.
	createdAt := now()
	rental.Status = models.RentalActive
	id, err := s.txInsert(ctx, tx, `INSERT INTO rentals (dress_id, customer_id, start_date, end_date, total_price, deposit, status, notes, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rental.DressID,
		rental.CustomerID,
		rental.StartDate,
		rental.EndDate,
		rental.TotalPrice,
		rental.Deposit,
		rental.Status,
		rental.Notes,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rental in tx: %w", err)
	}

	// 4. Mirror the booking onto the dress.
	_, err = tx.ExecContext(ctx, s.rebind(`UPDATE dresses SET status = ? WHERE id = ?`),
		models.DressRented, rental.DressID)
	if err != nil {
		return fmt.Errorf("failed to set dress status in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rental: %w", err)
	}

	rental.ID = id
	rental.CreatedAt = createdAt
	return nil
}

func (s *Store) UpdateRental(ctx context.Context, rental *models.Rental) error {
	result, err := s.exec(ctx, `UPDATE rentals
            SET start_date = ?, end_date = ?, total_price = ?, deposit = ?, status = ?, notes = ?
            WHERE id = ?`,
		rental.StartDate,
		rental.EndDate,
		rental.TotalPrice,
		rental.Deposit,
		rental.Status,
		rental.Notes,
		rental.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rental: %w", err)
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

func (s *Store) DeleteRental(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM rentals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rental: %w", err)
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

// DeleteRentalCascade removes a rental and its payment rows in one
// transaction, then restores the dress to available. With guarded set the
// dress is only freed when no other active rental still holds it. A failure
// at any step rolls the whole cascade back.
func (s *Store) DeleteRentalCascade(ctx context.Context, id, dressID int64, guarded bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM payments WHERE rental_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete rental payments in tx: %w", err)
	}

	result, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM rentals WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete rental in tx: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	free := true
	if guarded {
		var count int64
		err = tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM rentals WHERE dress_id = ? AND status = ?`),
			dressID, models.RentalActive).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count active rentals in tx: %w", err)
		}
		free = count == 0
	}
	if free {
		_, err = tx.ExecContext(ctx, s.rebind(`UPDATE dresses SET status = ? WHERE id = ?`),
			models.DressAvailable, dressID)
		if err != nil {
			return fmt.Errorf("failed to free dress in tx: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rental delete: %w", err)
	}
	return nil
}

func (s *Store) ListActiveRentals(ctx context.Context) ([]models.Rental, error) {
	rows, err := s.query(ctx, rentalSelect+` WHERE r.status = ? ORDER BY r.end_date ASC`,
		models.RentalActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rentals: %w", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (s *Store) ListUpcomingReturns(ctx context.Context, from, to string) ([]models.Rental, error) {
	rows, err := s.query(ctx, rentalSelect+`
        WHERE r.status = ?
        AND r.end_date BETWEEN ? AND ?
        ORDER BY r.end_date ASC`,
		models.RentalActive, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming returns: %w", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}
