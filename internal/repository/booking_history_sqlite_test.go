package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medlyst-gateway/internal/domain/entity"
)

func newTestHistory(t *testing.T) *SQLiteBookingHistory {
	t.Helper()
	store, err := NewSQLiteBookingHistory(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleBooking(id string, createdAt time.Time) *entity.Booking {
	return &entity.Booking{
		ID:          id,
		DoctorID:    "1",
		DoctorName:  "Dr. Amy Adams",
		Specialty:   "Cardiologist",
		PatientName: "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+1 555 010 2030",
		Date:        "2025-01-10",
		Time:        "09:00",
		Reason:      "Recurring chest pain during exercise",
		SlotID:      "42",
		CreatedAt:   createdAt,
	}
}

func TestSaveAndFindByID(t *testing.T) {
	store := newTestHistory(t)
	ctx := context.Background()

	created := time.Date(2025, 1, 8, 12, 30, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, sampleBooking("b1", created)))

	got, err := store.FindByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dr. Amy Adams", got.DoctorName)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "42", got.SlotID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.Persisted())
}

func TestFindByID_Absent(t *testing.T) {
	store := newTestHistory(t)

	got, err := store.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindAll_NewestFirst(t *testing.T) {
	store := newTestHistory(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, sampleBooking("older", base)))
	require.NoError(t, store.Save(ctx, sampleBooking("newer", base.Add(time.Hour))))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].ID)
	assert.Equal(t, "older", all[1].ID)
}

func TestDelete(t *testing.T) {
	store := newTestHistory(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleBooking("b1", time.Now())))

	deleted, err := store.Delete(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := store.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = store.Delete(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSave_PlaceholderSlotNotPersisted(t *testing.T) {
	store := newTestHistory(t)
	ctx := context.Background()

	booking := sampleBooking("b1", time.Now())
	booking.SlotID = "mock_1736500000_0"
	require.NoError(t, store.Save(ctx, booking))

	got, err := store.FindByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Persisted())
}
