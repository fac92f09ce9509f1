package compute_project_availability

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	scheduleRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/schedule"
	"github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/inkline/INK-AvailabilityService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	gotFilter    domain.ProviderAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	return f.appointments, f.err
}

type fakeScheduleRepo struct {
	schedule *domain.ProviderSchedule
	err      error
}

func (f *fakeScheduleRepo) GetByProviderID(_ context.Context, _ int64) (*domain.ProviderSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
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

func weekdayScheduleJSON() json.RawMessage {
	return json.RawMessage(`{
		"monday":    {"enabled": true, "start": "09:00", "end": "18:00"},
		"tuesday":   {"enabled": true, "start": "09:00", "end": "18:00"},
		"wednesday": {"enabled": true, "start": "09:00", "end": "18:00"},
		"thursday":  {"enabled": true, "start": "09:00", "end": "18:00"},
		"friday":    {"enabled": true, "start": "09:00", "end": "18:00"}
	}`)
}

func newTestUseCase(apptRepo *fakeAppointmentRepo, schedRepo *fakeScheduleRepo, catalog *fakeCatalogClient, now time.Time) *UseCase {
	uc := NewUseCase(apptRepo, schedRepo, catalog, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecuteProposesDates(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	apptRepo := &fakeAppointmentRepo{}
	schedRepo := &fakeScheduleRepo{schedule: &domain.ProviderSchedule{
		ProviderID:   7,
		Timezone:     "UTC",
		WorkSchedule: weekdayScheduleJSON(),
	}}
	catalog := &fakeCatalogClient{service: &catalogservice.Service{
		ID:              3,
		ProviderID:      7,
		Name:            "Рукав, цветная работа",
		Price:           ptr.Ptr(150.0),
		DurationMinutes: 120,
	}}

	uc := newTestUseCase(apptRepo, schedRepo, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		ServiceID:  3,
		Sittings:   3,
		Frequency:  domain.FrequencyWeekly,
		StartDate:  utc(2026, 6, 1, 9, 0),
	})
	require.NoError(t, err)

	require.Len(t, resp.ProposedDates, 3)
	assert.True(t, resp.ProposedDates[0].Equal(utc(2026, 6, 1, 9, 0)))
	assert.True(t, resp.ProposedDates[1].Equal(utc(2026, 6, 8, 9, 0)))
	assert.True(t, resp.ProposedDates[2].Equal(utc(2026, 6, 15, 9, 0)))

	// Длительность взята из каталога, цена умножена на число сеансов
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, 450.0, resp.TotalCost)

	// Отменённые записи не должны занимать слоты
	assert.False(t, apptRepo.gotFilter.IncludeInactive)
	require.NotNil(t, apptRepo.gotFilter.From)
}

func TestExecuteDurationOverride(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	schedRepo := &fakeScheduleRepo{schedule: &domain.ProviderSchedule{
		ProviderID:   7,
		Timezone:     "UTC",
		WorkSchedule: weekdayScheduleJSON(),
	}}
	catalog := &fakeCatalogClient{service: &catalogservice.Service{
		ID:              3,
		DurationMinutes: 120,
		Price:           ptr.Ptr(100.0),
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, schedRepo, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID:      7,
		ServiceID:       3,
		Sittings:        1,
		Frequency:       domain.FrequencySingle,
		StartDate:       utc(2026, 6, 1, 9, 0),
		DurationMinutes: 240,
	})
	require.NoError(t, err)
	assert.Equal(t, 240, resp.DurationMinutes)
}

func TestExecuteNilPriceMeansZeroCost(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	schedRepo := &fakeScheduleRepo{schedule: &domain.ProviderSchedule{
		Timezone:     "UTC",
		WorkSchedule: weekdayScheduleJSON(),
	}}
	catalog := &fakeCatalogClient{service: &catalogservice.Service{
		ID:              3,
		DurationMinutes: 60,
		Price:           nil, // цена по договорённости
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, schedRepo, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		ServiceID:  3,
		Sittings:   2,
		Frequency:  domain.FrequencyConsecutive,
		StartDate:  utc(2026, 6, 1, 9, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.TotalCost)
}

func TestExecuteServiceNotFound(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, catalog, now)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		ServiceID:  999,
		Sittings:   1,
		Frequency:  domain.FrequencySingle,
		StartDate:  utc(2026, 6, 1, 9, 0),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteScheduleNotConfigured(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	catalog := &fakeCatalogClient{service: &catalogservice.Service{ID: 3, DurationMinutes: 60}}
	schedRepo := &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}

	uc := newTestUseCase(&fakeAppointmentRepo{}, schedRepo, catalog, now)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		ServiceID:  3,
		Sittings:   1,
		Frequency:  domain.FrequencySingle,
		StartDate:  utc(2026, 6, 1, 9, 0),
	})
	assert.ErrorIs(t, err, ErrScheduleNotConfigured)
}

func TestExecuteInvalidInput(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeCatalogClient{}, now)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero provider", req: &Request{ServiceID: 3, Sittings: 1, Frequency: domain.FrequencySingle, StartDate: now}},
		{name: "zero service", req: &Request{ProviderID: 7, Sittings: 1, Frequency: domain.FrequencySingle, StartDate: now}},
		{name: "zero sittings", req: &Request{ProviderID: 7, ServiceID: 3, Frequency: domain.FrequencySingle, StartDate: now}},
		{name: "too many sittings", req: &Request{ProviderID: 7, ServiceID: 3, Sittings: domain.MaxSittings + 1, Frequency: domain.FrequencySingle, StartDate: now}},
		{name: "unknown frequency", req: &Request{ProviderID: 7, ServiceID: 3, Sittings: 1, Frequency: "fortnightly-ish", StartDate: now}},
		{name: "zero start date", req: &Request{ProviderID: 7, ServiceID: 3, Sittings: 1, Frequency: domain.FrequencySingle}},
		{name: "negative duration", req: &Request{ProviderID: 7, ServiceID: 3, Sittings: 1, Frequency: domain.FrequencySingle, StartDate: now, DurationMinutes: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteExistingAppointmentsBlockSlots(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	apptRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{
			ProviderID: 7,
			StartTime:  utc(2026, 6, 1, 9, 0),
			EndTime:    utc(2026, 6, 1, 12, 0),
			Status:     domain.StatusConfirmed,
		},
	}}
	schedRepo := &fakeScheduleRepo{schedule: &domain.ProviderSchedule{
		Timezone:     "UTC",
		WorkSchedule: weekdayScheduleJSON(),
	}}
	catalog := &fakeCatalogClient{service: &catalogservice.Service{
		ID:              3,
		DurationMinutes: 60,
		Price:           ptr.Ptr(100.0),
	}}

	uc := newTestUseCase(apptRepo, schedRepo, catalog, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 7,
		ServiceID:  3,
		Sittings:   1,
		Frequency:  domain.FrequencySingle,
		StartDate:  utc(2026, 6, 1, 9, 0),
	})
	require.NoError(t, err)
	require.Len(t, resp.ProposedDates, 1)

	// Первый свободный слот сразу после занятого интервала
	assert.True(t, resp.ProposedDates[0].Equal(utc(2026, 6, 1, 12, 0)))
}
