package book_project

import (
	"time"

	bookProject "github.com/inkline/INK-AvailabilityService/internal/usecase/book_project"
)

// BookProjectRequest HTTP request model
type BookProjectRequest struct {
	ClientID        int64    `json:"clientId"`
	ProviderID      int64    `json:"providerId"`
	ServiceID       int64    `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes,omitempty"` // 0 = длительность услуги из каталога
	ProposedDates   []string `json:"proposedDates"`             // ISO 8601, из ответа project-availability
	Notes           *string  `json:"notes,omitempty"`
}

// SittingResponse созданный сеанс проекта
type SittingResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	SittingNumber int    `json:"sittingNumber"`
	StartTime     string `json:"startTime"` // ISO 8601
	EndTime       string `json:"endTime"`   // ISO 8601
}

// ProjectResponse HTTP response model
type ProjectResponse struct {
	ProjectID       int64             `json:"projectId"`
	ClientID        int64             `json:"clientId"`
	ProviderID      int64             `json:"providerId"`
	ServiceID       int64             `json:"serviceId"`
	DurationMinutes int               `json:"durationMinutes"`
	ServiceName     string            `json:"serviceName"`
	Sittings        []SittingResponse `json:"sittings"`
	TotalCost       float64           `json:"totalCost"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookProjectRequest) ToUseCaseRequest() (*bookProject.Request, error) {
	dates := make([]time.Time, len(r.ProposedDates))
	for i, dateStr := range r.ProposedDates {
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, err
		}
		dates[i] = date
	}

	return &bookProject.Request{
		ClientID:        r.ClientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		DurationMinutes: r.DurationMinutes,
		ProposedDates:   dates,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookProject.Response) *ProjectResponse {
	sittings := make([]SittingResponse, len(resp.Sittings))
	for i, s := range resp.Sittings {
		sittings[i] = SittingResponse{
			AppointmentID: s.AppointmentID,
			SittingNumber: s.SittingNumber,
			StartTime:     s.StartTime.UTC().Format(time.RFC3339),
			EndTime:       s.EndTime.UTC().Format(time.RFC3339),
		}
	}

	return &ProjectResponse{
		ProjectID:       resp.ProjectID,
		ClientID:        resp.ClientID,
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		ServiceName:     resp.ServiceName,
		Sittings:        sittings,
		TotalCost:       resp.TotalCost,
	}
}
