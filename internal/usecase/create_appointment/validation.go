package create_appointment

import (
	"fmt"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes > 0 &&
		(req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStartTime проверяет, что запрошенное время в будущем
// и выровнено по сетке слотов
func validateStartTime(start time.Time, now time.Time) error {
	if start.Before(now) {
		return ErrDateInPast
	}

	step := domain.SlotStepMinutes * time.Minute
	if !start.Truncate(step).Equal(start) {
		return ErrInvalidTimeSlot
	}

	return nil
}

// validateWithinWorkingHours проверяет, что интервал [start, start+duration)
// укладывается в рабочее окно провайдера в его таймзоне
func validateWithinWorkingHours(
	start time.Time,
	durationMinutes int,
	days []domain.WorkDay,
	loc *time.Location,
) error {
	local := start.In(loc)

	day, ok := domain.WorkDayFor(days, domain.FromTimeWeekday(local.Weekday()))
	if !ok {
		return ErrOutsideWorkingHours
	}

	windowStart, windowEnd, ok := day.Window()
	if !ok {
		return ErrOutsideWorkingHours
	}

	startMin := windowStart.Minutes()
	endMin := windowEnd.Minutes()
	if endMin <= startMin {
		// Окно через полночь
		endMin += 24 * 60
	}

	localMin := local.Hour()*60 + local.Minute()
	if localMin < startMin || localMin > endMin-durationMinutes {
		return ErrOutsideWorkingHours
	}

	return nil
}
