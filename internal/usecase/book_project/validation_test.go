package book_project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	"github.com/inkline/INK-AvailabilityService/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		ClientID:        1,
		ProviderID:      2,
		ServiceID:       3,
		DurationMinutes: 60,
		ProposedDates: []time.Time{
			time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC),
		},
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
		{name: "negative provider", mutate: func(r *Request) { r.ProviderID = -1 }},
		{name: "zero service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "no dates", mutate: func(r *Request) { r.ProposedDates = nil }},
		{name: "too many dates", mutate: func(r *Request) {
			dates := make([]time.Time, domain.MaxSittings+1)
			base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
			for i := range dates {
				dates[i] = base.AddDate(0, 0, i)
			}
			r.ProposedDates = dates
		}},
		{name: "negative duration", mutate: func(r *Request) { r.DurationMinutes = -30 }},
		{name: "duration below minimum", mutate: func(r *Request) { r.DurationMinutes = domain.MinServiceDurationMinutes - 1 }},
		{name: "duration above maximum", mutate: func(r *Request) { r.DurationMinutes = domain.MaxServiceDurationMinutes + 1 }},
		// Нулевая длительность означает "взять из каталога" и валидна
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }, valid: true},
		{name: "notes too long", mutate: func(r *Request) {
			long := make([]byte, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'a'
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

func TestValidateProposedDates(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	at := func(day, hour, minute int) time.Time {
		return time.Date(2026, 6, day, hour, minute, 0, 0, time.UTC)
	}

	t.Run("valid weekly cadence", func(t *testing.T) {
		err := validateProposedDates([]time.Time{at(1, 10, 0), at(8, 10, 0), at(15, 10, 0)}, 120, now)
		assert.NoError(t, err)
	})

	t.Run("zero date", func(t *testing.T) {
		err := validateProposedDates([]time.Time{at(1, 10, 0), {}}, 60, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("date in past", func(t *testing.T) {
		err := validateProposedDates([]time.Time{time.Date(2026, 5, 31, 10, 0, 0, 0, time.UTC)}, 60, now)
		assert.ErrorIs(t, err, ErrDateInPast)
		assert.Contains(t, err.Error(), "sitting 1")
	})

	t.Run("not aligned to grid", func(t *testing.T) {
		err := validateProposedDates([]time.Time{at(1, 10, 15)}, 60, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("seconds break alignment", func(t *testing.T) {
		err := validateProposedDates([]time.Time{time.Date(2026, 6, 1, 10, 0, 30, 0, time.UTC)}, 60, now)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not increasing", func(t *testing.T) {
		err := validateProposedDates([]time.Time{at(8, 10, 0), at(1, 10, 0)}, 60, now)
		assert.ErrorIs(t, err, ErrDatesNotIncreasing)
	})

	t.Run("equal dates", func(t *testing.T) {
		err := validateProposedDates([]time.Time{at(1, 10, 0), at(1, 10, 0)}, 60, now)
		assert.ErrorIs(t, err, ErrDatesNotIncreasing)
	})

	t.Run("overlapping sittings", func(t *testing.T) {
		// Второй сеанс начинается через 30 минут при длительности 60
		err := validateProposedDates([]time.Time{at(1, 10, 0), at(1, 10, 30)}, 60, now)
		assert.ErrorIs(t, err, ErrDatesOverlap)
	})

	t.Run("back to back sittings allowed", func(t *testing.T) {
		// Соприкосновение границ пересечением не считается
		err := validateProposedDates([]time.Time{at(1, 10, 0), at(1, 11, 0)}, 60, now)
		assert.NoError(t, err)
	})
}

func TestSittingTakenError(t *testing.T) {
	err := &SittingTakenError{Sitting: 2}

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Contains(t, err.Error(), "sitting 2")
}
