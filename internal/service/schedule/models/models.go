package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

// Request модели

// UpdateScheduleRequest запрос на обновление расписания мастера
type UpdateScheduleRequest struct {
	UserID       int64           `json:"userId"`
	Timezone     string          `json:"timezone"`     // IANA-идентификатор, например "Europe/Moscow"
	WorkSchedule json.RawMessage `json:"workSchedule"` // Недельное расписание в объектной или массивной форме
}

// Response модели

// WorkDayResponse один день недельного расписания в каноничной форме.
// Название дня отдаётся в нижнем регистре — в той же форме, в какой
// клиенты присылают ключи объектного workSchedule, чтобы ответ можно было
// отправить обратно в PUT без преобразований
type WorkDayResponse struct {
	Day     string `json:"day"`
	Enabled bool   `json:"enabled"`
	Start   string `json:"start,omitempty"` // "10:00"
	End     string `json:"end,omitempty"`   // "19:00"
}

// ScheduleResponse ответ с расписанием мастера
type ScheduleResponse struct {
	ProviderID   int64             `json:"providerId"`
	Timezone     string            `json:"timezone"`
	WorkSchedule []WorkDayResponse `json:"workSchedule"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
// Недельное расписание отдаётся в каноничной форме независимо от того,
// в какой форме оно было сохранено
func FromDomainSchedule(s *domain.ProviderSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	days := domain.NormalizeWorkSchedule(s.WorkSchedule)

	workSchedule := make([]WorkDayResponse, len(days))
	for i, day := range days {
		workSchedule[i] = WorkDayResponse{
			Day:     strings.ToLower(string(day.Day)),
			Enabled: day.Enabled,
			Start:   day.Start,
			End:     day.End,
		}
	}

	return &ScheduleResponse{
		ProviderID:   s.ProviderID,
		Timezone:     s.Timezone,
		WorkSchedule: workSchedule,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
