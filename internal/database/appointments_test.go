package database

import (
	"context"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	customer := createTestCustomer(t, store, "Maayan")
	dress := createTestDress(t, store, "Fitting Dress")

	appointment := &models.Appointment{
		CustomerID: &customer.ID,
		DressID:    &dress.ID,
		Type:       models.AppointmentFitting,
		Date:       "2024-06-10",
		Time:       "14:30",
		Notes:      "first fitting",
	}
	require.NoError(t, store.CreateAppointment(ctx, appointment))
	require.NotZero(t, appointment.ID)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)

	got, err := store.GetAppointment(ctx, appointment.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CustomerID)
	assert.Equal(t, customer.ID, *got.CustomerID)
	assert.Equal(t, "Maayan", got.CustomerName)
	assert.Equal(t, "Fitting Dress", got.DressName)
	assert.False(t, got.ReminderSent)

	got.Status = models.AppointmentCompleted
	require.NoError(t, store.UpdateAppointment(ctx, got))

	updated, err := store.GetAppointment(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, updated.Status)

	require.NoError(t, store.DeleteAppointment(ctx, appointment.ID))
	_, err = store.GetAppointment(ctx, appointment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppointmentWithoutReferences(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	appointment := &models.Appointment{
		Type: models.AppointmentOther,
		Date: "2024-06-11",
	}
	require.NoError(t, store.CreateAppointment(ctx, appointment))

	got, err := store.GetAppointment(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerID)
	assert.Nil(t, got.DressID)
	assert.Empty(t, got.CustomerName)
}

func TestListAppointmentsBetween(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-01", "2024-06-05", "2024-06-20"} {
		appointment := &models.Appointment{Type: models.AppointmentPickup, Date: date}
		require.NoError(t, store.CreateAppointment(ctx, appointment))
	}
	cancelled := &models.Appointment{
		Type:   models.AppointmentPickup,
		Date:   "2024-06-03",
		Status: models.AppointmentCancelled,
	}
	require.NoError(t, store.CreateAppointment(ctx, cancelled))

	appointments, err := store.ListAppointmentsBetween(ctx, "2024-06-01", "2024-06-10")
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "2024-06-01", appointments[0].Date)
	assert.Equal(t, "2024-06-05", appointments[1].Date)
}

func TestListDueRemindersAndMark(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	customer := createTestCustomer(t, store, "Ruth")
	first := &models.Appointment{
		CustomerID: &customer.ID,
		Type:       models.AppointmentReturn,
		Date:       "2024-06-15",
		Time:       "10:00",
	}
	second := &models.Appointment{
		CustomerID: &customer.ID,
		Type:       models.AppointmentFitting,
		Date:       "2024-06-15",
		Time:       "12:00",
	}
	require.NoError(t, store.CreateAppointment(ctx, first))
	require.NoError(t, store.CreateAppointment(ctx, second))

	due, err := store.ListDueReminders(ctx, "2024-06-15")
	require.NoError(t, err)
	require.Len(t, due, 2)

	require.NoError(t, store.MarkReminderSent(ctx, first.ID))

	due, err = store.ListDueReminders(ctx, "2024-06-15")
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, second.ID, due[0].ID)

	// Other dates are untouched.
	due, err = store.ListDueReminders(ctx, "2024-06-16")
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestCountAppointmentsOn(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	appointment := &models.Appointment{Type: models.AppointmentFitting, Date: "2024-06-18"}
	require.NoError(t, store.CreateAppointment(ctx, appointment))

	count, err := store.CountAppointmentsOn(ctx, "2024-06-18")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.CountAppointmentsOn(ctx, "2024-06-19")
	require.NoError(t, err)
	assert.Zero(t, count)
}
