package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	"github.com/inkline/INK-AvailabilityService/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		ClientID:        1,
		ProviderID:      2,
		ServiceID:       3,
		StartTime:       time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		valid  bool
	}{
		{name: "valid", mutate: func(r *Request) {}, valid: true},
		{name: "zero client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "negative provider", mutate: func(r *Request) { r.ProviderID = -5 }},
		{name: "zero service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero start time", mutate: func(r *Request) { r.StartTime = time.Time{} }},
		{name: "negative duration", mutate: func(r *Request) { r.DurationMinutes = -60 }},
		{name: "duration above maximum", mutate: func(r *Request) { r.DurationMinutes = domain.MaxServiceDurationMinutes + 30 }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }, valid: true},
		{name: "notes too long", mutate: func(r *Request) {
			long := make([]byte, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'x'
			}
			r.Notes = ptr.Ptr(string(long))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestValidateStartTime(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, validateStartTime(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), now))
	assert.NoError(t, validateStartTime(time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC), now))

	// "Сейчас" не считается прошлым
	assert.NoError(t, validateStartTime(now, now))

	assert.ErrorIs(t, validateStartTime(time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC), now), ErrDateInPast)
	assert.ErrorIs(t, validateStartTime(time.Date(2026, 6, 1, 10, 15, 0, 0, time.UTC), now), ErrInvalidTimeSlot)
	assert.ErrorIs(t, validateStartTime(time.Date(2026, 6, 1, 10, 0, 45, 0, time.UTC), now), ErrInvalidTimeSlot)
}

func TestValidateWithinWorkingHours(t *testing.T) {
	days := []domain.WorkDay{
		// 2026-06-01 - понедельник
		{Day: domain.Monday, Enabled: true, Start: "10:00", End: "19:00"},
		{Day: domain.Tuesday, Enabled: false, Start: "10:00", End: "19:00"},
	}

	at := func(day, hour, minute int) time.Time {
		return time.Date(2026, 6, day, hour, minute, 0, 0, time.UTC)
	}

	assert.NoError(t, validateWithinWorkingHours(at(1, 10, 0), 60, days, time.UTC))
	assert.NoError(t, validateWithinWorkingHours(at(1, 18, 0), 60, days, time.UTC))

	// До открытия и после закрытия
	assert.ErrorIs(t, validateWithinWorkingHours(at(1, 9, 30), 60, days, time.UTC), ErrOutsideWorkingHours)
	assert.ErrorIs(t, validateWithinWorkingHours(at(1, 18, 30), 60, days, time.UTC), ErrOutsideWorkingHours)

	// Выключенный день
	assert.ErrorIs(t, validateWithinWorkingHours(at(2, 12, 0), 60, days, time.UTC), ErrOutsideWorkingHours)

	// День без расписания
	assert.ErrorIs(t, validateWithinWorkingHours(at(7, 12, 0), 60, days, time.UTC), ErrOutsideWorkingHours)
}

func TestValidateWithinWorkingHoursProviderTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Brisbane")
	require.NoError(t, err)

	days := []domain.WorkDay{
		{Day: domain.Sunday, Enabled: true, Start: "09:00", End: "17:00"},
	}

	// 2026-02-14T23:00Z - суббота в UTC, но воскресенье 09:00 в Брисбене
	start := time.Date(2026, 2, 14, 23, 0, 0, 0, time.UTC)
	assert.NoError(t, validateWithinWorkingHours(start, 120, days, loc))

	// В сыром UTC тот же инстант был бы отклонён
	assert.ErrorIs(t, validateWithinWorkingHours(start, 120, days, time.UTC), ErrOutsideWorkingHours)
}

func TestValidateWithinWorkingHoursMidnightWindow(t *testing.T) {
	days := []domain.WorkDay{
		// 2026-06-05 - пятница, смена через полночь
		{Day: domain.Friday, Enabled: true, Start: "22:00", End: "02:00"},
	}

	assert.NoError(t, validateWithinWorkingHours(
		time.Date(2026, 6, 5, 22, 30, 0, 0, time.UTC), 120, days, time.UTC))

	// 23:30 + 180 минут = 02:30, выходит за край окна
	assert.ErrorIs(t, validateWithinWorkingHours(
		time.Date(2026, 6, 5, 23, 30, 0, 0, time.UTC), 180, days, time.UTC), ErrOutsideWorkingHours)
}
