package compute_project_availability

import (
	"fmt"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Sittings < domain.MinSittings || req.Sittings > domain.MaxSittings {
		return fmt.Errorf("%w: sittings must be between %d and %d", ErrInvalidInput, domain.MinSittings, domain.MaxSittings)
	}

	if _, ok := domain.ParseFrequency(string(req.Frequency)); !ok {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes > 0 &&
		(req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}
