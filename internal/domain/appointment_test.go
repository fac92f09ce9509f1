package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, endHour int) Interval {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "identical", a: interval(10, 12), b: interval(10, 12), want: true},
		{name: "partial overlap", a: interval(10, 12), b: interval(11, 13), want: true},
		{name: "contained", a: interval(10, 14), b: interval(11, 12), want: true},
		{name: "touching boundaries", a: interval(10, 12), b: interval(12, 14), want: false},
		{name: "touching reversed", a: interval(12, 14), b: interval(10, 12), want: false},
		{name: "disjoint", a: interval(8, 9), b: interval(10, 11), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalOverlapsAny(t *testing.T) {
	busy := []Interval{interval(9, 10), interval(14, 16)}

	assert.True(t, interval(9, 11).OverlapsAny(busy))
	assert.True(t, interval(15, 17).OverlapsAny(busy))
	assert.False(t, interval(10, 14).OverlapsAny(busy))
	assert.False(t, interval(10, 14).OverlapsAny(nil))
}

func TestAppointmentIsActive(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted} {
		assert.True(t, (&Appointment{Status: status}).IsActive(), "status %s", status)
	}
	for _, status := range []AppointmentStatus{StatusCancelledByClient, StatusCancelledByProvider, StatusNoShow} {
		assert.False(t, (&Appointment{Status: status}).IsActive(), "status %s", status)
	}
}

func TestAppointmentCanBeCancelled(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCancelledByClient}).CanBeCancelled())
}
