package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/models"
)

const appointmentSelect = `SELECT a.id, a.customer_id, a.dress_id, a.type, a.date, a.time,
               a.notes, a.status, a.reminder_sent, a.created_at,
               c.name, c.phone, d.name
        FROM appointments a
        LEFT JOIN customers c ON a.customer_id = c.id
        LEFT JOIN dresses d ON a.dress_id = d.id`

func scanAppointment(row interface{ Scan(...any) error }) (*models.Appointment, error) {
	var (
		a             models.Appointment
		customerID    sql.NullInt64
		dressID       sql.NullInt64
		reminderSent  int
		customerName  sql.NullString
		customerPhone sql.NullString
		dressName     sql.NullString
	)
	err := row.Scan(
		&a.ID,
		&customerID,
		&dressID,
		&a.Type,
		&a.Date,
		&a.Time,
		&a.Notes,
		&a.Status,
		&reminderSent,
		&a.CreatedAt,
		&customerName,
		&customerPhone,
		&dressName,
	)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		a.CustomerID = &customerID.Int64
	}
	if dressID.Valid {
		a.DressID = &dressID.Int64
	}
	a.ReminderSent = reminderSent != 0
	a.CustomerName = customerName.String
	a.CustomerPhone = customerPhone.String
	a.DressName = dressName.String
	return &a, nil
}

func collectAppointments(rows *sql.Rows) ([]models.Appointment, error) {
	var appointments []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

func (s *Store) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	rows, err := s.query(ctx, appointmentSelect+` ORDER BY a.date ASC, a.time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (s *Store) ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	rows, err := s.query(ctx, appointmentSelect+`
        WHERE a.date >= ? AND a.date <= ? AND a.status = ?
        ORDER BY a.date ASC, a.time ASC`,
		from, to, models.AppointmentScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (s *Store) ListAppointmentsOn(ctx context.Context, date string) ([]models.Appointment, error) {
	rows, err := s.query(ctx, appointmentSelect+`
        WHERE a.date = ? AND a.status = ?
        ORDER BY a.time ASC`,
		date, models.AppointmentScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list day appointments: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// ListDueReminders returns scheduled appointments on the given date with the
// reminder flag still unset.
func (s *Store) ListDueReminders(ctx context.Context, date string) ([]models.Appointment, error) {
	rows, err := s.query(ctx, appointmentSelect+`
        WHERE a.date = ? AND a.status = ? AND a.reminder_sent = 0
        ORDER BY a.time ASC`,
		date, models.AppointmentScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	row := s.queryRow(ctx, appointmentSelect+` WHERE a.id = ?`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}
	createdAt := now()
	id, err := s.insert(ctx, `INSERT INTO appointments (customer_id, dress_id, type, date, time, notes, status, reminder_sent, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(appointment.CustomerID),
		nullableID(appointment.DressID),
		appointment.Type,
		appointment.Date,
		appointment.Time,
		appointment.Notes,
		appointment.Status,
		boolToInt(appointment.ReminderSent),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	appointment.ID = id
	appointment.CreatedAt = createdAt
	return nil
}

func (s *Store) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	result, err := s.exec(ctx, `UPDATE appointments
            SET customer_id = ?, dress_id = ?, type = ?, date = ?, time = ?,
                notes = ?, status = ?, reminder_sent = ?
            WHERE id = ?`,
		nullableID(appointment.CustomerID),
		nullableID(appointment.DressID),
		appointment.Type,
		appointment.Date,
		appointment.Time,
		appointment.Notes,
		appointment.Status,
		boolToInt(appointment.ReminderSent),
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
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

// MarkReminderSent flips the one-shot reminder flag.
func (s *Store) MarkReminderSent(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `UPDATE appointments SET reminder_sent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
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

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	result, err := s.exec(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
