package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/infrastructure/backend"
)

var ErrInvalidStartTime = errors.New("invalid start time, use ISO 8601")

// AdminBackend is the slice of the backend client the admin panel
// needs.
type AdminBackend interface {
	CreateDoctor(ctx context.Context, payload backend.CreateDoctorPayload) (*backend.RawDoctor, error)
	DeleteDoctor(ctx context.Context, id int64) error
	CreateSlot(ctx context.Context, payload backend.CreateSlotPayload) (*backend.RawSlot, error)
}

// AdminUsecase proxies doctor/slot management to the backend and kicks
// a directory refresh afterwards so the public listing catches up
// without waiting for the cache to expire.
type AdminUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*backend.RawDoctor, error)
	DeleteDoctor(ctx context.Context, id int64) error
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*backend.RawSlot, error)
}

type adminUsecase struct {
	log       *logrus.Logger
	backend   AdminBackend
	directory DirectoryUsecase
}

func NewAdminUsecase(log *logrus.Logger, adminBackend AdminBackend, directory DirectoryUsecase) AdminUsecase {
	return &adminUsecase{
		log:       log,
		backend:   adminBackend,
		directory: directory,
	}
}

func (u *adminUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*backend.RawDoctor, error) {
	doctor, err := u.backend.CreateDoctor(ctx, backend.CreateDoctorPayload{
		Name:       req.Name,
		Speciality: req.Speciality,
		Hospital:   req.Hospital,
		Bio:        req.Bio,
		PhotoURL:   req.PhotoURL,
		Tags:       req.Tags,
		Experience: req.Experience,
	})
	if err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.refreshDirectory()
	return doctor, nil
}

func (u *adminUsecase) DeleteDoctor(ctx context.Context, id int64) error {
	if err := u.backend.DeleteDoctor(ctx, id); err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}

	u.refreshDirectory()
	return nil
}

func (u *adminUsecase) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*backend.RawSlot, error) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	capacity := req.TotalCapacity
	if capacity == 0 {
		capacity = 1
	}

	slot, err := u.backend.CreateSlot(ctx, backend.CreateSlotPayload{
		DoctorID:      req.DoctorID,
		StartTime:     startTime.UTC().Format(time.RFC3339),
		DurationMin:   req.DurationMin,
		TotalCapacity: capacity,
	})
	if err != nil {
		u.log.Warnf("Failed to create slot: %+v", err)
		return nil, err
	}

	u.refreshDirectory()
	return slot, nil
}

// refreshDirectory runs the refresh detached from the admin request so
// a slow aggregate doesn't hold the admin response. The sequence guard
// in the directory keeps overlapping refreshes consistent.
func (u *adminUsecase) refreshDirectory() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := u.directory.Refresh(ctx); err != nil {
			u.log.Warnf("Directory refresh after admin change failed: %+v", err)
		}
	}()
}
