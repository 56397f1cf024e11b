package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/models"
)

func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	rows, err := s.query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var st models.Setting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

func (s *Store) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	var st models.Setting
	err := s.queryRow(ctx, `SELECT key, value, updated_at FROM settings WHERE key = ?`, key).
		Scan(&st.Key, &st.Value, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &st, nil
}

// PutSetting inserts or replaces a key. ON CONFLICT upsert has the same
// syntax in both backings.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.exec(ctx, `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now())
	if err != nil {
		return fmt.Errorf("failed to put setting %s: %w", key, err)
	}
	return nil
}
