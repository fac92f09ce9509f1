package compute_project_availability

import (
	"fmt"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	computeProjectAvailability "github.com/inkline/INK-AvailabilityService/internal/usecase/compute_project_availability"
)

// ProjectAvailabilityResponse HTTP response model
type ProjectAvailabilityResponse struct {
	ProviderID      int64    `json:"providerId"`
	ServiceID       int64    `json:"serviceId"`
	Sittings        int      `json:"sittings"`
	Frequency       string   `json:"frequency"`
	DurationMinutes int      `json:"durationMinutes"`
	ProposedDates   []string `json:"proposedDates"` // ISO 8601, UTC
	TotalCost       float64  `json:"totalCost"`
}

// SearchExhaustedResponse HTTP response при исчерпании горизонта поиска
type SearchExhaustedResponse struct {
	Code     int                 `json:"code"`
	Message  string              `json:"message"`
	Sitting  int                 `json:"sitting"` // Номер сеанса, для которого не нашлось слота
	Examples []RejectedCandidate `json:"examples,omitempty"`
}

// RejectedCandidate пример отклонённого кандидата с причиной
type RejectedCandidate struct {
	At     string `json:"at"` // ISO 8601, UTC
	Reason string `json:"reason"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(providerID, serviceID int64, sittings int, frequencyStr, startDateStr string, durationMinutes int) (*computeProjectAvailability.Request, error) {
	frequency, ok := domain.ParseFrequency(frequencyStr)
	if !ok {
		return nil, fmt.Errorf("unknown frequency %q", frequencyStr)
	}

	// Дата начала поиска: полная метка времени или просто дата
	startDate, err := time.Parse(time.RFC3339, startDateStr)
	if err != nil {
		startDate, err = time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
	}

	return &computeProjectAvailability.Request{
		ProviderID:      providerID,
		ServiceID:       serviceID,
		Sittings:        sittings,
		Frequency:       frequency,
		StartDate:       startDate,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeProjectAvailability.Response) *ProjectAvailabilityResponse {
	dates := make([]string, len(resp.ProposedDates))
	for i, d := range resp.ProposedDates {
		dates[i] = d.UTC().Format(time.RFC3339)
	}

	return &ProjectAvailabilityResponse{
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		Sittings:        resp.Sittings,
		Frequency:       string(resp.Frequency),
		DurationMinutes: resp.DurationMinutes,
		ProposedDates:   dates,
		TotalCost:       resp.TotalCost,
	}
}

// FromSearchExhaustedError конвертирует ошибку исчерпания горизонта в HTTP response
func FromSearchExhaustedError(code int, message string, exhausted *computeProjectAvailability.SearchExhaustedError) *SearchExhaustedResponse {
	examples := make([]RejectedCandidate, len(exhausted.Examples))
	for i, ex := range exhausted.Examples {
		examples[i] = RejectedCandidate{
			At:     ex.At.UTC().Format(time.RFC3339),
			Reason: ex.Reason,
		}
	}

	return &SearchExhaustedResponse{
		Code:     code,
		Message:  message,
		Sitting:  exhausted.Sitting,
		Examples: examples,
	}
}
