package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"medlyst-gateway/internal/converter"
	"medlyst-gateway/internal/domain/entity"
	"medlyst-gateway/internal/infrastructure/backend"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// AllSpecialties is the sentinel that disables the specialty filter.
const AllSpecialties = "All Specialties"

const directoryCacheKey = "directory:snapshot"

// DoctorSource provides the two independently fetched backend
// collections the directory is aggregated from.
type DoctorSource interface {
	GetDoctors(ctx context.Context) ([]backend.RawDoctor, error)
	GetSlots(ctx context.Context) ([]backend.RawSlot, error)
}

// DirectorySnapshot is one fully aggregated directory state. Degraded
// marks the built-in demo fallback used when the backend is entirely
// unreachable, so callers and tests can assert on the recovery path
// instead of guessing from the data.
//
// Seq orders refreshes within one process and is deliberately excluded
// from serialization: counters restart at zero on every boot, so a
// cached snapshot carrying a previous process's Seq would outrank every
// refresh the new process makes.
type DirectorySnapshot struct {
	Doctors     []entity.Doctor `json:"doctors"`
	Degraded    bool            `json:"degraded"`
	Seq         uint64          `json:"-"`
	RefreshedAt time.Time       `json:"refreshed_at"`
}

type DirectoryUsecase interface {
	Refresh(ctx context.Context) (*DirectorySnapshot, error)
	Snapshot(ctx context.Context) (*DirectorySnapshot, error)
	Search(ctx context.Context, query, specialty string, minRating float64) ([]entity.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*entity.Doctor, error)
}

type directoryUsecase struct {
	source      DoctorSource
	redisClient *redis.Client
	log         *logrus.Logger
	cacheTTL    time.Duration
	now         func() time.Time

	mu      sync.RWMutex
	current *DirectorySnapshot
	nextSeq uint64

	cacheMu sync.Mutex
}

func NewDirectoryUsecase(source DoctorSource, redisClient *redis.Client, log *logrus.Logger, cacheTTL time.Duration) DirectoryUsecase {
	return &directoryUsecase{
		source:      source,
		redisClient: redisClient,
		log:         log,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// Refresh fetches doctors and slots concurrently and aggregates them
// into a new snapshot. The two fetches settle independently: one side
// failing degrades that side to empty rather than aborting the other.
// Only when both fail (or aggregation itself blows up) does the
// directory fall back to the demo dataset, so the UI is never empty.
//
// Refreshes take a monotonic sequence ticket; a result is dropped when
// a newer refresh has already been applied, so overlapping refreshes
// can't reorder.
func (u *directoryUsecase) Refresh(ctx context.Context) (*DirectorySnapshot, error) {
	u.mu.Lock()
	u.nextSeq++
	seq := u.nextSeq
	u.mu.Unlock()

	var (
		doctors []backend.RawDoctor
		slots   []backend.RawSlot
		derr    error
		serr    error
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		doctors, derr = u.source.GetDoctors(ctx)
	}()
	go func() {
		defer wg.Done()
		slots, serr = u.source.GetSlots(ctx)
	}()
	wg.Wait()

	if derr != nil {
		u.log.Warnf("Failed to fetch doctors: %+v", derr)
	}
	if serr != nil {
		u.log.Warnf("Failed to fetch slots: %+v", serr)
	}

	snapshot := u.aggregate(doctors, slots, derr != nil && serr != nil)
	snapshot.Seq = seq
	snapshot.RefreshedAt = u.now()

	if !u.apply(snapshot) {
		u.log.Infof("Dropping stale directory refresh (seq %d)", seq)
		return u.Snapshot(ctx)
	}

	u.cacheSnapshot(ctx, snapshot)
	return snapshot, nil
}

// aggregate builds the doctor list. A panic inside the transform is
// treated the same way as a total fetch failure.
func (u *directoryUsecase) aggregate(doctors []backend.RawDoctor, slots []backend.RawSlot, totalFailure bool) (snapshot *DirectorySnapshot) {
	defer func() {
		if r := recover(); r != nil {
			u.log.Errorf("Directory aggregation panicked: %v", r)
			snapshot = u.demoSnapshot()
		}
	}()

	if totalFailure {
		return u.demoSnapshot()
	}

	list := converter.AttachSlots(converter.DoctorsFromAPI(doctors), slots)
	return &DirectorySnapshot{Doctors: list}
}

func (u *directoryUsecase) demoSnapshot() *DirectorySnapshot {
	r := rand.New(rand.NewSource(u.now().UnixNano()))
	return &DirectorySnapshot{
		Doctors:  entity.DemoDoctors(u.now(), r),
		Degraded: true,
	}
}

func (u *directoryUsecase) apply(snapshot *DirectorySnapshot) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.current != nil && u.current.Seq > snapshot.Seq {
		return false
	}
	u.current = snapshot
	return true
}

// cacheSnapshot writes an applied snapshot to redis. Writes are
// serialized and re-checked against the applied sequence, so when
// refreshes overlap the loser cannot clobber the winner's cache entry
// after the fact.
func (u *directoryUsecase) cacheSnapshot(ctx context.Context, snapshot *DirectorySnapshot) {
	if u.redisClient == nil || u.cacheTTL <= 0 {
		return
	}

	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()

	u.mu.RLock()
	stale := u.current != nil && u.current.Seq > snapshot.Seq
	u.mu.RUnlock()
	if stale {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := u.redisClient.Set(ctx, directoryCacheKey, data, u.cacheTTL).Err(); err != nil {
		u.log.Warnf("Failed to cache directory snapshot: %+v", err)
	}
}

func (u *directoryUsecase) cachedSnapshot(ctx context.Context) *DirectorySnapshot {
	if u.redisClient == nil {
		return nil
	}
	data, err := u.redisClient.Get(ctx, directoryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var snapshot DirectorySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

// Snapshot returns the current directory, loading the redis cache or
// refreshing if nothing has been aggregated yet.
func (u *directoryUsecase) Snapshot(ctx context.Context) (*DirectorySnapshot, error) {
	u.mu.RLock()
	current := u.current
	u.mu.RUnlock()
	if current != nil {
		return current, nil
	}

	if cached := u.cachedSnapshot(ctx); cached != nil {
		u.mu.Lock()
		if u.current == nil {
			u.current = cached
		}
		current = u.current
		u.mu.Unlock()
		return current, nil
	}

	return u.Refresh(ctx)
}

// Search filters the current directory. See Filter for the matching
// rules.
func (u *directoryUsecase) Search(ctx context.Context, query, specialty string, minRating float64) ([]entity.Doctor, error) {
	snapshot, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(snapshot.Doctors, query, specialty, minRating), nil
}

// GetDoctor looks a doctor up by id in the current directory.
func (u *directoryUsecase) GetDoctor(ctx context.Context, id string) (*entity.Doctor, error) {
	snapshot, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshot.Doctors {
		if snapshot.Doctors[i].ID == id {
			doc := snapshot.Doctors[i]
			return &doc, nil
		}
	}
	return nil, ErrDoctorNotFound
}

// Filter returns the doctors matching a free-text query (case
// insensitive substring over name, specialty and hospital; empty
// matches all), a specialty (exact, with "All Specialties"/"All"/""
// as match-all sentinels) and a minimum rating. Input order is kept
// and the function is pure, so filtering is safe on every keystroke.
func Filter(doctors []entity.Doctor, query, specialty string, minRating float64) []entity.Doctor {
	query = strings.ToLower(strings.TrimSpace(query))
	matchAll := specialty == "" || specialty == AllSpecialties || strings.EqualFold(specialty, "All")

	matched := make([]entity.Doctor, 0, len(doctors))
	for _, doc := range doctors {
		matchesQuery := query == "" ||
			strings.Contains(strings.ToLower(doc.Name), query) ||
			strings.Contains(strings.ToLower(doc.Specialty), query) ||
			strings.Contains(strings.ToLower(doc.Hospital), query)

		matchesSpecialty := matchAll || doc.Specialty == specialty

		if matchesQuery && matchesSpecialty && doc.Rating >= minRating {
			matched = append(matched, doc)
		}
	}
	return matched
}
