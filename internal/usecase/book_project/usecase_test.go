package book_project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	"github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/inkline/INK-AvailabilityService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	nextProjectID int64
	nextApptID    int64
	busy          []domain.Interval
	created       []*domain.Appointment
}

func (f *fakeAppointmentRepo) NextProjectID(_ context.Context) (int64, error) {
	f.nextProjectID++
	return f.nextProjectID, nil
}

func (f *fakeAppointmentRepo) HasOverlap(_ context.Context, _ int64, start, end time.Time) (bool, error) {
	candidate := domain.Interval{Start: start, End: end}
	return candidate.OverlapsAny(f.busy), nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextApptID++
	saved := *appt
	saved.ID = f.nextApptID
	f.created = append(f.created, &saved)
	f.busy = append(f.busy, saved.Interval())
	return &saved, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

// fakeTxManager выполняет функцию без транзакции, но фиксирует факт вызова
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func tattooService() *catalogservice.Service {
	return &catalogservice.Service{
		ID:              3,
		ProviderID:      7,
		Name:            "Спина, чёрно-серая работа",
		Price:           ptr.Ptr(200.0),
		DurationMinutes: 180,
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, catalog *fakeCatalogClient, tx *fakeTxManager, now time.Time) *UseCase {
	uc := NewUseCase(repo, catalog, tx, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecuteCreatesAllSittings(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
	}

	repo := &fakeAppointmentRepo{}
	tx := &fakeTxManager{}
	uc := newTestUseCase(repo, &fakeCatalogClient{service: tattooService()}, tx, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:      1,
		ProviderID:    7,
		ServiceID:     3,
		ProposedDates: dates,
		Notes:         ptr.Ptr("эскиз согласован"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, int64(1), resp.ProjectID)
	assert.Equal(t, "Спина, чёрно-серая работа", resp.ServiceName)
	assert.Equal(t, 180, resp.DurationMinutes)
	assert.Equal(t, 600.0, resp.TotalCost)

	require.Len(t, resp.Sittings, 3)
	for i, sitting := range resp.Sittings {
		assert.Equal(t, i+1, sitting.SittingNumber)
		assert.True(t, sitting.StartTime.Equal(dates[i]))
		assert.True(t, sitting.EndTime.Equal(dates[i].Add(180*time.Minute)))
	}

	// Все сеансы созданы под одним project_id со статусом confirmed
	require.Len(t, repo.created, 3)
	for _, appt := range repo.created {
		require.NotNil(t, appt.ProjectID)
		assert.Equal(t, int64(1), *appt.ProjectID)
		assert.Equal(t, domain.StatusConfirmed, appt.Status)
		assert.Equal(t, 200.0, appt.ServicePrice)
	}
}

func TestExecuteSittingTaken(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Вторая дата конфликтует с уже существующей записью
	repo := &fakeAppointmentRepo{busy: []domain.Interval{
		{
			Start: time.Date(2026, 6, 8, 11, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 6, 8, 12, 0, 0, 0, time.UTC),
		},
	}}
	uc := newTestUseCase(repo, &fakeCatalogClient{service: tattooService()}, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:   1,
		ProviderID: 7,
		ServiceID:  3,
		ProposedDates: []time.Time{
			time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC),
		},
	})
	require.ErrorIs(t, err, ErrSlotTaken)

	var taken *SittingTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, 2, taken.Sitting)
}

func TestExecuteServiceNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}
	uc := newTestUseCase(&fakeAppointmentRepo{}, catalog, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:      1,
		ProviderID:    7,
		ServiceID:     999,
		ProposedDates: []time.Time{time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteDurationFromCatalogDetectsOverlap(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Длительность не передана: берется из каталога (180 минут), и тогда
	// сеансы с шагом в час пересекаются между собой
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCatalogClient{service: tattooService()}, &fakeTxManager{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:   1,
		ProviderID: 7,
		ServiceID:  3,
		ProposedDates: []time.Time{
			time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC),
		},
	})
	assert.ErrorIs(t, err, ErrDatesOverlap)
}
