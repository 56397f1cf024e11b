package service

import (
	"context"
	"testing"

	"atelier/internal/database"
	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAppointmentService(t *testing.T) (*AppointmentService, *database.Store) {
	t.Helper()
	store, err := database.OpenSQLiteMemory(testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewAppointmentService(store, testLogger()), store
}

func TestAppointmentValidation(t *testing.T) {
	svc, _ := setupAppointmentService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &models.Appointment{Type: "wedding", Date: "2024-06-10"})
	assert.ErrorIs(t, err, ErrInvalidAppointmentType)

	err = svc.Create(ctx, &models.Appointment{Type: models.AppointmentFitting, Date: "2024-06-10", Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidAppointmentStatus)

	err = svc.Create(ctx, &models.Appointment{Type: models.AppointmentFitting, Date: "next tuesday"})
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestAppointmentReferencesChecked(t *testing.T) {
	svc, store := setupAppointmentService(t)
	ctx := context.Background()

	missing := int64(404)
	err := svc.Create(ctx, &models.Appointment{
		Type:       models.AppointmentFitting,
		Date:       "2024-06-10",
		CustomerID: &missing,
	})
	assert.ErrorIs(t, err, database.ErrNotFound)

	customer := &models.Customer{Name: "Visitor"}
	require.NoError(t, store.CreateCustomer(ctx, customer))

	appointment := &models.Appointment{
		Type:       models.AppointmentFitting,
		Date:       "2024-06-10",
		Time:       "11:00",
		CustomerID: &customer.ID,
	}
	require.NoError(t, svc.Create(ctx, appointment))

	got, err := svc.Get(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Visitor", got.CustomerName)
	assert.Equal(t, models.AppointmentScheduled, got.Status)
}
