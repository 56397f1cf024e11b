package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/models"
)

const dressColumns = `id, name, description, size, color, rental_price, image_path, status, created_at`

func scanDress(row interface{ Scan(...any) error }) (*models.Dress, error) {
	var d models.Dress
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.Size,
		&d.Color,
		&d.RentalPrice,
		&d.ImagePath,
		&d.Status,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListDresses(ctx context.Context) ([]models.Dress, error) {
	rows, err := s.query(ctx, `SELECT `+dressColumns+` FROM dresses ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dresses: %w", err)
	}
	defer rows.Close()

	var dresses []models.Dress
	for rows.Next() {
		d, err := scanDress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dress: %w", err)
		}
		dresses = append(dresses, *d)
	}
	return dresses, rows.Err()
}

func (s *Store) GetDress(ctx context.Context, id int64) (*models.Dress, error) {
	row := s.queryRow(ctx, `SELECT `+dressColumns+` FROM dresses WHERE id = ?`, id)
	d, err := scanDress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dress: %w", err)
	}
	return d, nil
}

func (s *Store) CreateDress(ctx context.Context, dress *models.Dress) error {
	if dress.Status == "" {
		dress.Status = models.DressAvailable
	}
	createdAt := now()
	id, err := s.insert(ctx, `INSERT INTO dresses (name, description, size, color, rental_price, image_path, status, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		dress.Name,
		dress.Description,
		dress.Size,
		dress.Color,
		dress.RentalPrice,
		dress.ImagePath,
		dress.Status,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dress: %w", err)
	}
	dress.ID = id
	dress.CreatedAt = createdAt
	return nil
}

func (s *Store) UpdateDress(ctx context.Context, dress *models.Dress) error {
	result, err := s.exec(ctx, `UPDATE dresses
            SET name = ?, description = ?, size = ?, color = ?, rental_price = ?, image_path = ?, status = ?
            WHERE id = ?`,
		dress.Name,
		dress.Description,
		dress.Size,
		dress.Color,
		dress.RentalPrice,
		dress.ImagePath,
		dress.Status,
		dress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dress: %w", err)
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

func (s *Store) DeleteDress(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM dresses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dress: %w", err)
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

// SetDressStatus is the rental ledger's write path to dress availability.
func (s *Store) SetDressStatus(ctx context.Context, id int64, status string) error {
	_, err := s.exec(ctx, `UPDATE dresses SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set dress status: %w", err)
	}
	return nil
}

func (s *Store) ActiveRentalCount(ctx context.Context, dressID int64) (int64, error) {
	var count int64
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM rentals WHERE dress_id = ? AND status = ?`,
		dressID, models.RentalActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active rentals: %w", err)
	}
	return count, nil
}
