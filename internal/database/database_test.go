package database

import (
	"context"
	"os"
	"testing"

	"atelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	store, err := OpenSQLiteMemory(&logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestDress(t *testing.T, store *Store, name string) *models.Dress {
	t.Helper()
	dress := &models.Dress{
		Name:        name,
		Size:        "M",
		Color:       "white",
		RentalPrice: 500,
	}
	require.NoError(t, store.CreateDress(context.Background(), dress))
	require.NotZero(t, dress.ID)
	return dress
}

func createTestCustomer(t *testing.T, store *Store, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:  name,
		Phone: "0501234567",
	}
	require.NoError(t, store.CreateCustomer(context.Background(), customer))
	require.NotZero(t, customer.ID)
	return customer
}

func createTestRental(t *testing.T, store *Store, dressID, customerID int64, start, end string) *models.Rental {
	t.Helper()
	rental := &models.Rental{
		DressID:    dressID,
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: 500,
		Deposit:    100,
	}
	require.NoError(t, store.CreateRentalWithLock(context.Background(), rental))
	require.NotZero(t, rental.ID)
	return rental
}

func TestCreateTablesIdempotent(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.createTables())
}

func TestRebindPostgres(t *testing.T) {
	s := &Store{driver: DriverPostgres}
	got := s.rebind(`SELECT * FROM rentals WHERE dress_id = ? AND start_date <= ? AND end_date >= ?`)
	require.Equal(t, `SELECT * FROM rentals WHERE dress_id = $1 AND start_date <= $2 AND end_date >= $3`, got)
}

func TestRebindSQLiteUntouched(t *testing.T) {
	s := &Store{driver: DriverSQLite}
	query := `SELECT * FROM dresses WHERE id = ?`
	require.Equal(t, query, s.rebind(query))
}
