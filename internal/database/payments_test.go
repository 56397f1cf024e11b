package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Paid Dress")
	customer := createTestCustomer(t, store, "Sara")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")

	payment := createTestPayment(t, store, rental.ID, 300, "2024-06-01")
	require.NotZero(t, payment.ID)

	got, err := store.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Amount)
	assert.Equal(t, "cash", got.Method)

	got.Amount = 350
	got.Method = "credit"
	require.NoError(t, store.UpdatePayment(ctx, got))

	updated, err := store.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, updated.Amount)
	assert.Equal(t, "credit", updated.Method)

	require.NoError(t, store.DeletePayment(ctx, payment.ID))
	_, err = store.GetPayment(ctx, payment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPaymentsJoinsNames(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Joined Dress")
	customer := createTestCustomer(t, store, "Joined Customer")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")
	createTestPayment(t, store, rental.ID, 100, "2024-06-01")

	payments, err := store.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "Joined Customer", payments[0].CustomerName)
	assert.Equal(t, "Joined Dress", payments[0].DressName)
}

func TestListPaymentsForRentalOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress := createTestDress(t, store, "Dress")
	customer := createTestCustomer(t, store, "Dina")
	rental := createTestRental(t, store, dress.ID, customer.ID, "2024-06-01", "2024-06-05")

	createTestPayment(t, store, rental.ID, 100, "2024-06-01")
	createTestPayment(t, store, rental.ID, 200, "2024-06-03")

	payments, err := store.ListPaymentsForRental(ctx, rental.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	// Newest payment date first.
	assert.Equal(t, 200.0, payments[0].Amount)
	assert.Equal(t, 100.0, payments[1].Amount)
}

func TestDeletePaymentsForRental(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	dress1 := createTestDress(t, store, "Dress One")
	dress2 := createTestDress(t, store, "Dress Two")
	customer := createTestCustomer(t, store, "Vered")
	rental1 := createTestRental(t, store, dress1.ID, customer.ID, "2024-06-01", "2024-06-05")
	rental2 := createTestRental(t, store, dress2.ID, customer.ID, "2024-06-01", "2024-06-05")

	createTestPayment(t, store, rental1.ID, 100, "2024-06-01")
	createTestPayment(t, store, rental1.ID, 200, "2024-06-02")
	keep := createTestPayment(t, store, rental2.ID, 300, "2024-06-01")

	require.NoError(t, store.DeletePaymentsForRental(ctx, rental1.ID))

	payments, err := store.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, keep.ID, payments[0].ID)

	// Deleting payments for a rental with none left is not an error.
	require.NoError(t, store.DeletePaymentsForRental(ctx, rental1.ID))
}
