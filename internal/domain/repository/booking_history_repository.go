package repository

import (
	"context"

	"medlyst-gateway/internal/domain/entity"
)

// BookingHistoryRepository stores the gateway's local record of
// confirmed bookings. This is a convenience log for the UI, not the
// system of record; the appointments backend owns real bookings.
type BookingHistoryRepository interface {
	Save(ctx context.Context, booking *entity.Booking) error
	FindAll(ctx context.Context) ([]entity.Booking, error)
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
	Close() error
}
