package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"medlyst-gateway/internal/domain/entity"
	"medlyst-gateway/internal/domain/repository"
)

// SQLiteBookingHistory keeps booking history in a local sqlite file.
type SQLiteBookingHistory struct {
	db *sql.DB
}

var _ repository.BookingHistoryRepository = (*SQLiteBookingHistory)(nil)

// NewSQLiteBookingHistory opens (or creates) the history database and
// runs migrations.
func NewSQLiteBookingHistory(dbPath string) (*SQLiteBookingHistory, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// sqlite supports a single write connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteBookingHistory{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteBookingHistory) migrate() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return fmt.Errorf("failed to set WAL mode: %w", err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			doctor_id TEXT NOT NULL,
			doctor_name TEXT NOT NULL,
			specialty TEXT NOT NULL,
			patient_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			reason TEXT NOT NULL,
			slot_id TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_doctor_id ON bookings(doctor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(date)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration query: %w", err)
		}
	}

	return nil
}

// Save inserts a booking record.
func (s *SQLiteBookingHistory) Save(ctx context.Context, booking *entity.Booking) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (id, doctor_id, doctor_name, specialty, patient_name, email, phone, date, time, reason, slot_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID, booking.DoctorID, booking.DoctorName, booking.Specialty,
		booking.PatientName, booking.Email, booking.Phone,
		booking.Date, booking.Time, booking.Reason, booking.SlotID,
		booking.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindAll returns all bookings, newest first.
func (s *SQLiteBookingHistory) FindAll(ctx context.Context) ([]entity.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, doctor_id, doctor_name, specialty, patient_name, email, phone, date, time, reason, slot_id, created_at
		 FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

// FindByID returns one booking, or nil when absent.
func (s *SQLiteBookingHistory) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, doctor_id, doctor_name, specialty, patient_name, email, phone, date, time, reason, slot_id, created_at
		 FROM bookings WHERE id = ?`, id)

	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Delete removes a booking and reports whether one existed.
func (s *SQLiteBookingHistory) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Close closes the underlying database.
func (s *SQLiteBookingHistory) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	var slotID sql.NullString
	var createdAt string

	err := row.Scan(
		&booking.ID, &booking.DoctorID, &booking.DoctorName, &booking.Specialty,
		&booking.PatientName, &booking.Email, &booking.Phone,
		&booking.Date, &booking.Time, &booking.Reason, &slotID, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.SlotID = slotID.String
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		booking.CreatedAt = ts
	}
	return &booking, nil
}
