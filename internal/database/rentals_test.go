package database

import (
	"context"
	"sync"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRentalWithLockMarksDressRented(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Evening Gown")
	customer := createTestCustomer(t, store, "Dana")

	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")
	assert.Equal(t, models.RentalActive, rental.Status)

	updated, err := store.GetDress(ctx, dress.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DressRented, updated.Status)
}

func TestCreateRentalWithLockSharedBoundaryConflicts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Ball Gown")
	customer := createTestCustomer(t, store, "Noa")
	createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")

	// Inclusive end date: starting on the existing end date is a conflict.
	overlap := &models.Rental{
		DressID:    dress.ID,
		CustomerID: customer.ID,
		StartDate:  "2024-06-05",
		EndDate:    "2024-06-10",
		TotalPrice: 500,
	}
	err := store.CreateRentalWithLock(ctx, overlap)
	assert.ErrorIs(t, err, ErrConflict)

	// The day after the end date is free.
	next := &models.Rental{
		DressID:    dress.ID,
		CustomerID: customer.ID,
		StartDate:  "2024-06-06",
		EndDate:    "2024-06-10",
		TotalPrice: 500,
	}
	require.NoError(t, store.CreateRentalWithLock(ctx, next))
}

func TestCreateRentalWithLockIgnoresCancelled(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Cocktail Dress")
	customer := createTestCustomer(t, store, "Yael")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")

	rental.Status = models.RentalCancelled
	require.NoError(t, store.UpdateRental(ctx, rental))

	again := &models.Rental{
		DressID:    dress.ID,
		CustomerID: customer.ID,
		StartDate:  "2024-06-03",
		EndDate:    "2024-06-07",
		TotalPrice: 500,
	}
	require.NoError(t, store.CreateRentalWithLock(ctx, again))
}

func TestCreateRentalWithLockMaintenanceRejected(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Lace Dress")
	customer := createTestCustomer(t, store, "Shira")
	require.NoError(t, store.SetDressStatus(ctx, dress.ID, models.DressMaintenance))

	rental := &models.Rental{
		DressID:    dress.ID,
		CustomerID: customer.ID,
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-05",
		TotalPrice: 500,
	}
	err := store.CreateRentalWithLock(ctx, rental)
	assert.ErrorIs(t, err, ErrDressUnavailable)
}

func TestCreateRentalWithLockMissingDress(t *testing.T) {
	store := setupTestStore(t)
	customer := createTestCustomer(t, store, "Tamar")

	rental := &models.Rental{
		DressID:    999,
		CustomerID: customer.ID,
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-05",
	}
	err := store.CreateRentalWithLock(context.Background(), rental)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRentalWithLockConcurrent(t *testing.T) {
	store := setupTestStore(t)

	dress := createTestDress(t, store, "Silk Dress")
	customer := createTestCustomer(t, store, "Rivka")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rental := &models.Rental{
				DressID:    dress.ID,
				CustomerID: customer.ID,
				StartDate:  "2024-07-01",
				EndDate:    "2024-07-05",
				TotalPrice: 500,
			}
			errs[n] = store.CreateRentalWithLock(context.Background(), rental)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, created, "exactly one booking should win")
}

func TestFindConflicts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Tulle Dress")
	customer := createTestCustomer(t, store, "Michal")
	existing := createTestRental(t, store, dress.ID, customer.ID, "2024-06-10", "2024-06-15")

	conflicts, err := store.FindConflicts(ctx, dress.ID, "2024-06-15", "2024-06-20")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, existing.ID, conflicts[0].ID)
	assert.Equal(t, "Tulle Dress", conflicts[0].DressName)
	assert.Equal(t, "Michal", conflicts[0].CustomerName)

	conflicts, err = store.FindConflicts(ctx, dress.ID, "2024-06-16", "2024-06-20")
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// A different dress has no conflicts at all.
	other := createTestDress(t, store, "Other Dress")
	conflicts, err = store.FindConflicts(ctx, other.ID, "2024-06-10", "2024-06-15")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestGetRentalJoinsDisplayFields(t *testing.T) {
	store := setupTestStore(t)

	dress := createTestDress(t, store, "Velvet Dress")
	customer := createTestCustomer(t, store, "Efrat")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-08-01", "2024-08-03")

	got, err := store.GetRental(context.Background(), rental.ID)
	require.NoError(t, err)
	assert.Equal(t, "Velvet Dress", got.DressName)
	assert.Equal(t, "Efrat", got.CustomerName)
	assert.Equal(t, "0501234567", got.CustomerPhone)
}

func TestUpdateRentalNotFound(t *testing.T) {
	store := setupTestStore(t)
	err := store.UpdateRental(context.Background(), &models.Rental{ID: 42, Status: models.RentalCompleted})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRental(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Chiffon Dress")
	customer := createTestCustomer(t, store, "Adi")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-09-01", "2024-09-03")

	require.NoError(t, store.DeleteRental(ctx, rental.ID))

	_, err := store.GetRental(ctx, rental.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteRental(ctx, rental.ID), ErrNotFound)
}

func TestListUpcomingReturns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress1 := createTestDress(t, store, "Dress One")
	dress2 := createTestDress(t, store, "Dress Two")
	dress3 := createTestDress(t, store, "Dress Three")
	customer := createTestCustomer(t, store, "Hila")

	inWindow := createTestRental(t, store, dress1.ID, customer.ID, "2024-06-01", "2024-06-08")
	createTestRental(t, store, dress2.ID, customer.ID, "2024-06-01", "2024-06-20")
	completed := createTestRental(t, store, dress3.ID, customer.ID, "2024-06-01", "2024-06-07")
	completed.Status = models.RentalCompleted
	require.NoError(t, store.UpdateRental(ctx, completed))

	returns, err := store.ListUpcomingReturns(ctx, "2024-06-05", "2024-06-12")
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, inWindow.ID, returns[0].ID)
}

func TestDeleteRentalCascade(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Satin Dress")
	customer := createTestCustomer(t, store, "Tamar")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-09-01", "2024-09-03")
	createTestPayment(t, store, rental.ID, 300, "2024-09-01")
	createTestPayment(t, store, rental.ID, 200, "2024-09-02")

	require.NoError(t, store.DeleteRentalCascade(ctx, rental.ID, dress.ID, false))

	_, err := store.GetRental(ctx, rental.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	payments, err := store.ListPaymentsForRental(ctx, rental.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	freed, err := store.GetDress(ctx, dress.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DressAvailable, freed.Status)
}

func TestDeleteRentalCascadeGuardedKeepsBusyDress(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Shared Dress")
	customer := createTestCustomer(t, store, "Noa")
	first := createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")
	createTestRental(t, store, dress.ID, customer.ID, "2024-06-10", "2024-06-15")

	require.NoError(t, store.DeleteRentalCascade(ctx, first.ID, dress.ID, true))

	got, err := store.GetDress(ctx, dress.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DressRented, got.Status)
}

func TestDeleteRentalCascadeNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Lonely Dress")

	err := store.DeleteRentalCascade(ctx, 404, dress.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}
