package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medlyst-gateway/internal/domain/entity"
	"medlyst-gateway/internal/infrastructure/backend"
)

type fakeSource struct {
	mu      sync.Mutex
	doctors []backend.RawDoctor
	slots   []backend.RawSlot
	derr    error
	serr    error

	// when set, the first GetDoctors call signals started and then
	// blocks until gate is closed; later calls run normally.
	gate    chan struct{}
	started chan struct{}
	calls   int
}

func (f *fakeSource) GetDoctors(ctx context.Context) ([]backend.RawDoctor, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	gate, started := f.gate, f.started
	doctors, err := f.doctors, f.derr
	f.mu.Unlock()

	if first && gate != nil {
		close(started)
		<-gate
	}
	return doctors, err
}

func (f *fakeSource) GetSlots(ctx context.Context) ([]backend.RawSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots, f.serr
}

func (f *fakeSource) set(doctors []backend.RawDoctor, slots []backend.RawSlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doctors, f.slots = doctors, slots
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRefresh_AggregatesDoctorsWithSlots(t *testing.T) {
	source := &fakeSource{
		doctors: []backend.RawDoctor{{ID: 1, Name: "Dr. Amy Adams", Speciality: "Cardiologist"}},
		slots:   []backend.RawSlot{{ID: 10, DoctorID: 1, StartTime: "2025-01-10T09:00:00Z"}},
	}
	uc := NewDirectoryUsecase(source, nil, testLogger(), 0)

	snapshot, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, snapshot.Degraded)
	require.Len(t, snapshot.Doctors, 1)
	require.Len(t, snapshot.Doctors[0].AvailableSlots, 1)
	assert.Equal(t, "09:00", snapshot.Doctors[0].AvailableSlots[0].Times[0].Time)
}

func TestRefresh_SlotFailureLeavesDoctorsWithoutSlots(t *testing.T) {
	source := &fakeSource{
		doctors: []backend.RawDoctor{{ID: 1, Name: "Dr. Amy Adams"}},
		serr:    errors.New("slots endpoint down"),
	}
	uc := NewDirectoryUsecase(source, nil, testLogger(), 0)

	snapshot, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, snapshot.Degraded, "one side failing is not a total failure")
	require.Len(t, snapshot.Doctors, 1)
	assert.Empty(t, snapshot.Doctors[0].AvailableSlots)
}

func TestRefresh_TotalFailureFallsBackToDemoDirectory(t *testing.T) {
	source := &fakeSource{
		derr: errors.New("connection refused"),
		serr: errors.New("connection refused"),
	}
	uc := NewDirectoryUsecase(source, nil, testLogger(), 0)

	snapshot, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot.Degraded)
	require.NotEmpty(t, snapshot.Doctors)
	for _, doc := range snapshot.Doctors {
		assert.True(t, strings.HasPrefix(doc.ID, entity.PlaceholderIDPrefix),
			"demo doctor %q must carry the placeholder prefix", doc.Name)
	}
}

func TestRefresh_StaleResultIsDropped(t *testing.T) {
	source := &fakeSource{
		gate:    make(chan struct{}),
		started: make(chan struct{}),
		doctors: []backend.RawDoctor{{ID: 1, Name: "Dr. Old"}},
	}
	uc := NewDirectoryUsecase(source, nil, testLogger(), 0)

	done := make(chan *DirectorySnapshot, 1)
	go func() {
		snapshot, _ := uc.Refresh(context.Background())
		done <- snapshot
	}()
	<-source.started

	// A second refresh starts and finishes while the first is stuck.
	source.set([]backend.RawDoctor{{ID: 2, Name: "Dr. New"}}, nil)
	fresh, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, fresh.Doctors, 1)
	assert.Equal(t, "Dr. New", fresh.Doctors[0].Name)

	close(source.gate)
	stale := <-done
	require.NotNil(t, stale)
	assert.Equal(t, "Dr. New", stale.Doctors[0].Name, "late refresh returns the applied snapshot, not its own result")

	snapshot, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dr. New", snapshot.Doctors[0].Name)
}

func TestRefresh_AppliesAfterRestartWithCachedSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	// First process: several refreshes run the sequence up and leave a
	// snapshot in redis.
	oldSource := &fakeSource{doctors: []backend.RawDoctor{{ID: 1, Name: "Dr. Old"}}}
	first := NewDirectoryUsecase(oldSource, redis.NewClient(&redis.Options{Addr: mr.Addr()}), testLogger(), time.Minute)
	for i := 0; i < 5; i++ {
		_, err := first.Refresh(ctx)
		require.NoError(t, err)
	}

	// Second process: fresh usecase, same redis, counter back at zero.
	newSource := &fakeSource{doctors: []backend.RawDoctor{{ID: 2, Name: "Dr. New"}}}
	second := NewDirectoryUsecase(newSource, redis.NewClient(&redis.Options{Addr: mr.Addr()}), testLogger(), time.Minute)

	cached, err := second.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, cached.Doctors, 1)
	assert.Equal(t, "Dr. Old", cached.Doctors[0].Name)
	assert.Zero(t, cached.Seq, "a cached snapshot must not carry the previous process's sequence")

	// A forced refresh must beat the cache-seeded snapshot.
	fresh, err := second.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, fresh.Doctors, 1)
	assert.Equal(t, "Dr. New", fresh.Doctors[0].Name)

	snapshot, err := second.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dr. New", snapshot.Doctors[0].Name)
}

func TestCacheSnapshot_RejectsOutdatedWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	source := &fakeSource{doctors: []backend.RawDoctor{{ID: 2, Name: "Dr. New"}}}
	uc := NewDirectoryUsecase(source, redis.NewClient(&redis.Options{Addr: mr.Addr()}), testLogger(), time.Minute).(*directoryUsecase)

	_, err := uc.Refresh(ctx)
	require.NoError(t, err)

	// A refresh that lost the sequence race tries to cache its result
	// after the winner already did.
	uc.cacheSnapshot(ctx, &DirectorySnapshot{
		Doctors: []entity.Doctor{{ID: "1", Name: "Dr. Old"}},
		Seq:     0,
	})

	data, err := mr.Get(directoryCacheKey)
	require.NoError(t, err)
	var cached DirectorySnapshot
	require.NoError(t, json.Unmarshal([]byte(data), &cached))
	require.Len(t, cached.Doctors, 1)
	assert.Equal(t, "Dr. New", cached.Doctors[0].Name)
}

func TestSnapshot_RefreshesWhenEmpty(t *testing.T) {
	source := &fakeSource{doctors: []backend.RawDoctor{{ID: 1, Name: "Dr. Amy Adams"}}}
	uc := NewDirectoryUsecase(source, nil, testLogger(), 0)

	snapshot, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Doctors, 1)

	source.mu.Lock()
	calls := source.calls
	source.mu.Unlock()
	assert.Equal(t, 1, calls)

	// A second read serves the held snapshot without refetching.
	_, err = uc.Snapshot(context.Background())
	require.NoError(t, err)
	source.mu.Lock()
	calls = source.calls
	source.mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestGetDoctor_NotFound(t *testing.T) {
	source := &fakeSource{doctors: []backend.RawDoctor{{ID: 1, Name: "Dr. Amy Adams"}}}
	uc := NewDirectoryUsecase(source, nil, testLogger(), 0)

	_, err := uc.GetDoctor(context.Background(), "999")
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	doc, err := uc.GetDoctor(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Amy Adams", doc.Name)
}

func filterFixture() []entity.Doctor {
	return []entity.Doctor{
		{ID: "1", Name: "Amy", Specialty: "Cardiologist", Hospital: "Central", Rating: 4.5},
		{ID: "2", Name: "Bo", Specialty: "Orthopedist", Hospital: "Hillcrest", Rating: 4.8},
	}
}

func TestFilter_CombinesAllCriteria(t *testing.T) {
	// Amy matches the query but misses the rating floor; Bo clears the
	// floor but has no "a" in name, specialty or hospital.
	got := Filter(filterFixture(), "a", "All", 4.6)
	assert.Empty(t, got)

	got = Filter(filterFixture(), "a", "All", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Amy", got[0].Name)
}

func TestFilter_SpecialtySentinels(t *testing.T) {
	for _, sentinel := range []string{"", AllSpecialties, "All", "all"} {
		got := Filter(filterFixture(), "", sentinel, 0)
		assert.Len(t, got, 2, "sentinel %q must match every specialty", sentinel)
	}

	got := Filter(filterFixture(), "", "Cardiologist", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Amy", got[0].Name)
}

func TestFilter_IsIdempotent(t *testing.T) {
	once := Filter(filterFixture(), "central", "All", 4.0)
	twice := Filter(once, "central", "All", 4.0)
	assert.Equal(t, once, twice)
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := Filter(filterFixture(), "", "", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Amy", got[0].Name)
	assert.Equal(t, "Bo", got[1].Name)
}
