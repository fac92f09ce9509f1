package book_project

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

	if len(req.ProposedDates) < domain.MinSittings || len(req.ProposedDates) > domain.MaxSittings {
		return fmt.Errorf("%w: number of sittings must be between %d and %d",
			ErrInvalidInput, domain.MinSittings, domain.MaxSittings)
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

// validateProposedDates проверяет даты сеансов: все в будущем, выровнены по
// сетке слотов, строго возрастают и не пересекаются между собой при заданной
// длительности сеанса
func validateProposedDates(dates []time.Time, durationMinutes int, now time.Time) error {
	step := domain.SlotStepMinutes * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	for i, d := range dates {
		if d.IsZero() {
			return fmt.Errorf("%w: proposed date %d is required", ErrInvalidInput, i+1)
		}

		if d.Before(now) {
			return fmt.Errorf("%w: sitting %d", ErrDateInPast, i+1)
		}

		if !d.Truncate(step).Equal(d) {
			return fmt.Errorf("%w: sitting %d is not aligned to the %d-minute grid",
				ErrInvalidInput, i+1, domain.SlotStepMinutes)
		}

		if i == 0 {
			continue
		}

		prev := dates[i-1]
		if !d.After(prev) {
			return fmt.Errorf("%w: sitting %d", ErrDatesNotIncreasing, i+1)
		}
		if d.Before(prev.Add(duration)) {
			return fmt.Errorf("%w: sittings %d and %d", ErrDatesOverlap, i, i+1)
		}
	}

	return nil
}
