package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"medlyst-gateway/internal/converter"
	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/domain/repository"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingHistoryUsecase exposes the locally recorded bookings.
type BookingHistoryUsecase interface {
	List(ctx context.Context) (*dto.BookingListResponse, error)
	Get(ctx context.Context, id string) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
}

type bookingHistoryUsecase struct {
	log     *logrus.Logger
	history repository.BookingHistoryRepository
}

func NewBookingHistoryUsecase(log *logrus.Logger, history repository.BookingHistoryRepository) BookingHistoryUsecase {
	return &bookingHistoryUsecase{
		log:     log,
		history: history,
	}
}

func (u *bookingHistoryUsecase) List(ctx context.Context) (*dto.BookingListResponse, error) {
	bookings, err := u.history.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list booking history: %+v", err)
		return nil, err
	}
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingHistoryUsecase) Get(ctx context.Context, id string) (*dto.BookingResponse, error) {
	booking, err := u.history.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return converter.BookingToResponse(booking), nil
}

// Cancel removes a booking from the local history. The backend record,
// if one was ever created, is untouched; the gateway has no delete
// contract with the backend.
func (u *bookingHistoryUsecase) Cancel(ctx context.Context, id string) error {
	deleted, err := u.history.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", id, err)
		return err
	}
	if !deleted {
		return ErrBookingNotFound
	}
	return nil
}
