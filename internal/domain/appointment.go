package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusInProgress          AppointmentStatus = "in_progress"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByClient   AppointmentStatus = "cancelled_by_client"
	StatusCancelledByProvider AppointmentStatus = "cancelled_by_provider"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment represents a single sitting booked with a provider
type Appointment struct {
	ID         int64
	ProviderID int64
	ClientID   int64
	ServiceID  int64

	// Привязка к многосеансовому проекту (nil для разовых записей)
	ProjectID     *int64
	SittingNumber *int

	// Абсолютные UTC-инстанты; рабочие часы провайдера сравниваются
	// с ними только после перевода в его таймзону
	StartTime time.Time
	EndTime   time.Time

	Status AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the busy interval occupied by the appointment
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// IsActive returns true if the appointment is in an active state
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledByProvider &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByProvider
}

// Interval непрозрачное занятое окно [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// Touching boundaries (a ends exactly where b starts) do not count.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// IsValid returns true if the interval has positive length
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// OverlapsAny reports whether the interval intersects any of the given busy intervals
func (i Interval) OverlapsAny(busy []Interval) bool {
	for _, b := range busy {
		if i.Overlaps(b) {
			return true
		}
	}
	return false
}

// ProviderAppointmentsFilter фильтр для получения записей провайдера
type ProviderAppointmentsFilter struct {
	ProviderID      int64              // Обязательный параметр
	From            *time.Time         // Начало периода (опционально)
	To              *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи и no-show
}
