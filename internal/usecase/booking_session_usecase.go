package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medlyst-gateway/internal/converter"
	"medlyst-gateway/internal/delivery/dto"
	"medlyst-gateway/internal/domain/entity"
	"medlyst-gateway/internal/domain/repository"
	"medlyst-gateway/internal/infrastructure/backend"
	"medlyst-gateway/internal/service"
)

var (
	ErrSessionNotFound = errors.New("booking session not found")
	ErrNoDateSelected  = errors.New("no date selected")
	ErrSlotUnavailable = errors.New("selected time is not available for this doctor")
	ErrNotReady        = errors.New("date and time must be selected first")
	ErrWrongStep       = errors.New("operation not valid for the current wizard step")
	ErrBookingFailed   = errors.New("booking submission failed")
)

// Wizard steps.
const (
	StepDatetime = "datetime"
	StepForm     = "form"
	StepSuccess  = "success"
)

// SlotBooker commits a booking for a real backend slot.
type SlotBooker interface {
	CreateBooking(ctx context.Context, slotID int64, userName, userPhone string) (*backend.RawBooking, error)
}

// BookingSessionUsecase drives the three-step booking wizard. Each
// session holds one BookingSelection and advances it exclusively
// through the selection reducer.
type BookingSessionUsecase interface {
	Open(ctx context.Context, req *dto.OpenSessionRequest) (*dto.BookingSessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.BookingSessionResponse, error)
	SetDate(ctx context.Context, sessionID string, req *dto.SetDateRequest) (*dto.BookingSessionResponse, error)
	SetTime(ctx context.Context, sessionID string, req *dto.SetTimeRequest) (*dto.BookingSessionResponse, error)
	Advance(ctx context.Context, sessionID string) (*dto.BookingSessionResponse, error)
	Submit(ctx context.Context, sessionID string, req *dto.SubmitBookingRequest) (*dto.BookingResponse, error)
	Close(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) (*dto.BookingSessionResponse, error)
}

type wizardSession struct {
	id         string
	selection  entity.BookingSelection
	step       string
	lastActive time.Time
}

type bookingSessionUsecase struct {
	log        *logrus.Logger
	directory  DirectoryUsecase
	booker     SlotBooker
	mailer     service.Mailer
	history    repository.BookingHistoryRepository
	resetDelay time.Duration
	sessionTTL time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*wizardSession
}

func NewBookingSessionUsecase(
	log *logrus.Logger,
	directory DirectoryUsecase,
	booker SlotBooker,
	mailer service.Mailer,
	history repository.BookingHistoryRepository,
	resetDelay time.Duration,
	sessionTTL time.Duration,
) BookingSessionUsecase {
	return &bookingSessionUsecase{
		log:        log,
		directory:  directory,
		booker:     booker,
		mailer:     mailer,
		history:    history,
		resetDelay: resetDelay,
		sessionTTL: sessionTTL,
		now:        time.Now,
		sessions:   make(map[string]*wizardSession),
	}
}

// session looks a live session up and marks it active. Callers hold
// u.mu.
func (u *bookingSessionUsecase) session(sessionID string) (*wizardSession, bool) {
	session, ok := u.sessions[sessionID]
	if !ok {
		return nil, false
	}
	session.lastActive = u.now()
	return session, true
}

// pruneExpired evicts sessions idle past the TTL. Callers hold u.mu.
// A non-positive TTL keeps sessions for the process lifetime.
func (u *bookingSessionUsecase) pruneExpired() {
	if u.sessionTTL <= 0 {
		return
	}
	cutoff := u.now().Add(-u.sessionTTL)
	for id, session := range u.sessions {
		if session.lastActive.Before(cutoff) {
			delete(u.sessions, id)
			u.log.Infof("Evicted idle booking session %s", id)
		}
	}
}

// Open starts a wizard session for a doctor. Opening always resets any
// previous selection values, matching the shipped flow where reopening
// the modal starts over.
func (u *bookingSessionUsecase) Open(ctx context.Context, req *dto.OpenSessionRequest) (*dto.BookingSessionResponse, error) {
	doctor, err := u.directory.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	session := &wizardSession{
		id:         uuid.NewString(),
		selection:  entity.Reduce(entity.BookingSelection{}, entity.OpenModal{Doctor: doctor}),
		step:       StepDatetime,
		lastActive: u.now(),
	}

	u.mu.Lock()
	u.pruneExpired()
	u.sessions[session.id] = session
	u.mu.Unlock()

	u.log.Infof("Opened booking session %s for doctor %s", session.id, doctor.ID)
	return converter.SelectionToSessionResponse(session.id, session.step, session.selection), nil
}

// Get returns the current session view.
func (u *bookingSessionUsecase) Get(ctx context.Context, sessionID string) (*dto.BookingSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.session(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return converter.SelectionToSessionResponse(session.id, session.step, session.selection), nil
}

// SetDate picks a date. The reducer clears any chosen time.
func (u *bookingSessionUsecase) SetDate(ctx context.Context, sessionID string, req *dto.SetDateRequest) (*dto.BookingSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.session(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.selection = entity.Reduce(session.selection, entity.SetDate{Date: req.Date})
	session.step = StepDatetime
	return converter.SelectionToSessionResponse(session.id, session.step, session.selection), nil
}

// SetTime picks a time on the selected date. Rejected when no date is
// set or the doctor does not offer that time on that date.
func (u *bookingSessionUsecase) SetTime(ctx context.Context, sessionID string, req *dto.SetTimeRequest) (*dto.BookingSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.session(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.selection.Date == "" {
		return nil, ErrNoDateSelected
	}
	if doc := session.selection.Doctor; doc != nil && !doc.HasTime(session.selection.Date, req.Time) {
		return nil, ErrSlotUnavailable
	}

	session.selection = entity.Reduce(session.selection, entity.SetTime{
		Time: entity.SlotTime{Time: req.Time, SlotID: req.SlotID},
	})
	return converter.SelectionToSessionResponse(session.id, session.step, session.selection), nil
}

// Advance moves the wizard from date/time picking to the patient form.
// Gated on a complete selection.
func (u *bookingSessionUsecase) Advance(ctx context.Context, sessionID string) (*dto.BookingSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.session(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.step != StepDatetime {
		return nil, ErrWrongStep
	}
	if !session.selection.IsReady() {
		return nil, ErrNotReady
	}

	session.step = StepForm
	return converter.SelectionToSessionResponse(session.id, session.step, session.selection), nil
}

// Submit commits the booking. On success the session reaches the
// terminal success step; on backend failure it stays on the form step
// so the patient can retry with their input intact.
//
// Commit order: backend booking (skipped for placeholder slots), then
// best-effort confirmation email, then local history. Only the backend
// call can fail the submission.
func (u *bookingSessionUsecase) Submit(ctx context.Context, sessionID string, req *dto.SubmitBookingRequest) (*dto.BookingResponse, error) {
	u.mu.Lock()
	session, ok := u.session(sessionID)
	if !ok {
		u.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.step != StepForm {
		u.mu.Unlock()
		return nil, ErrWrongStep
	}
	sel := session.selection
	u.mu.Unlock()

	if !sel.IsReady() {
		return nil, ErrNotReady
	}

	slotTime := *sel.Time
	if slotTime.IsPlaceholder() {
		u.log.Warnf("Booking a placeholder slot (%s), nothing persisted to backend", slotTime.SlotID)
	} else {
		slotID, err := strconv.ParseInt(slotTime.SlotID, 10, 64)
		if err != nil {
			u.log.Warnf("Unparseable slot id %q: %+v", slotTime.SlotID, err)
			return nil, ErrBookingFailed
		}
		if _, err := u.booker.CreateBooking(ctx, slotID, req.PatientName, req.Phone); err != nil {
			u.log.Warnf("Booking submission failed for session %s: %+v", sessionID, err)
			return nil, ErrBookingFailed
		}
	}

	// Email is fire-and-forget: a failed dispatch is logged and never
	// surfaced, so it can't hold the wizard back from success.
	if err := u.mailer.SendAppointmentEmail(ctx, service.AppointmentEmail{
		PatientName:  req.PatientName,
		PatientEmail: req.Email,
		DoctorName:   sel.Doctor.Name,
		Date:         sel.Date,
		Time:         slotTime.Time,
		Reason:       req.Reason,
	}); err != nil {
		u.log.Warnf("Confirmation email failed for session %s: %+v", sessionID, err)
	}

	booking := &entity.Booking{
		ID:          uuid.NewString(),
		DoctorID:    sel.Doctor.ID,
		DoctorName:  sel.Doctor.Name,
		Specialty:   sel.Doctor.Specialty,
		PatientName: req.PatientName,
		Email:       req.Email,
		Phone:       req.Phone,
		Date:        sel.Date,
		Time:        slotTime.Time,
		Reason:      req.Reason,
		SlotID:      slotTime.SlotID,
		CreatedAt:   time.Now().UTC(),
	}
	if u.history != nil {
		if err := u.history.Save(ctx, booking); err != nil {
			u.log.Warnf("Failed to record booking history: %+v", err)
		}
	}

	u.mu.Lock()
	if current, ok := u.session(sessionID); ok {
		current.step = StepSuccess
	}
	u.mu.Unlock()

	u.log.Infof("Booking confirmed for session %s with %s", sessionID, sel.Doctor.Name)
	return converter.BookingToResponse(booking), nil
}

// Close closes the modal now and schedules the full reset after the
// configured delay, giving a close animation time to finish before the
// selection visibly clears. A non-positive delay resets synchronously.
func (u *bookingSessionUsecase) Close(ctx context.Context, sessionID string) error {
	u.mu.Lock()
	session, ok := u.session(sessionID)
	if !ok {
		u.mu.Unlock()
		return ErrSessionNotFound
	}
	session.selection = entity.Reduce(session.selection, entity.CloseModal{})
	u.mu.Unlock()

	if u.resetDelay <= 0 {
		u.resetSession(sessionID)
		return nil
	}
	time.AfterFunc(u.resetDelay, func() {
		u.resetSession(sessionID)
	})
	return nil
}

// Reset immediately returns the session to the idle shape.
func (u *bookingSessionUsecase) Reset(ctx context.Context, sessionID string) (*dto.BookingSessionResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.session(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.selection = entity.Reduce(session.selection, entity.ResetSelection{})
	session.step = StepDatetime
	return converter.SelectionToSessionResponse(session.id, session.step, session.selection), nil
}

func (u *bookingSessionUsecase) resetSession(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if session, ok := u.sessions[sessionID]; ok {
		session.selection = entity.Reduce(session.selection, entity.ResetSelection{})
		session.step = StepDatetime
	}
}
