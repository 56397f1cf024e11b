package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"atelier/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockPostgres(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Store{db: db, driver: DriverPostgres}, mock
}

func TestPostgresGetDressUsesNumberedPlaceholders(t *testing.T) {
	store, mock := setupMockPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, size, color, rental_price, image_path, status, created_at FROM dresses WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "size", "color", "rental_price", "image_path", "status", "created_at",
		}).AddRow(7, "Gown", "", "M", "white", 500.0, "", "available", "2024-06-01 10:00:00"))

	dress, err := store.GetDress(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), dress.ID)
	assert.Equal(t, "Gown", dress.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertUsesReturningID(t *testing.T) {
	store, mock := setupMockPostgres(t)

	mock.ExpectQuery(`INSERT INTO customers .+ RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	customer := &models.Customer{Name: "Postgres Customer"}
	require.NoError(t, store.CreateCustomer(context.Background(), customer))
	assert.Equal(t, int64(11), customer.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateRentalWithLockConflict(t *testing.T) {
	store, mock := setupMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM dresses WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("available"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	rental := &models.Rental{
		DressID:    1,
		CustomerID: 2,
		StartDate:  "2024-06-05",
		EndDate:    "2024-06-10",
	}
	err := store.CreateRentalWithLock(context.Background(), rental)
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The dress row lock is what serializes two concurrent bookings of the same
// dress on postgres; without it both transactions pass the conflict count
// under READ COMMITTED before either insert commits.
func TestPostgresCreateRentalWithLockLocksDressRow(t *testing.T) {
	store, mock := setupMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM dresses WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("available"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO rentals`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE dresses SET status = $1 WHERE id = $2`)).
		WithArgs(models.DressRented, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rental := &models.Rental{
		DressID:    3,
		CustomerID: 2,
		StartDate:  "2024-06-05",
		EndDate:    "2024-06-10",
	}
	require.NoError(t, store.CreateRentalWithLock(context.Background(), rental))
	assert.Equal(t, int64(21), rental.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// SQLite has no FOR UPDATE; the sqlite dialect must keep the plain lookup.
func TestSQLiteCreateRentalWithLockNoLockClause(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := &Store{db: db, driver: DriverSQLite}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM dresses WHERE id = ?`) + `$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("maintenance"))
	mock.ExpectRollback()

	rental := &models.Rental{DressID: 1, CustomerID: 2, StartDate: "2024-06-05", EndDate: "2024-06-10"}
	err = store.CreateRentalWithLock(context.Background(), rental)
	assert.ErrorIs(t, err, ErrDressUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failure mid-cascade must roll back the payment deletes along with it;
// nothing else in the cascade may have been applied.
func TestPostgresDeleteRentalCascadeRollsBack(t *testing.T) {
	store, mock := setupMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM payments WHERE rental_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM rentals WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.DeleteRentalCascade(context.Background(), 5, 3, false)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
