package get_provider_appointments

import (
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	"github.com/inkline/INK-AvailabilityService/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// from и to принимаются как даты (YYYY-MM-DD): from раскрывается в начало дня,
// to — в начало следующего дня, чтобы покрыть весь день целиком
func ToServiceRequest(providerID, userID int64, fromStr, toStr, statusStr string, includeInactive bool) (*models.GetProviderAppointmentsRequest, error) {
	req := &models.GetProviderAppointmentsRequest{
		UserID:          userID,
		ProviderID:      providerID,
		IncludeInactive: includeInactive,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		endOfDay := to.AddDate(0, 0, 1)
		req.To = &endOfDay
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
