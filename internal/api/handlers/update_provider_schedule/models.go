package update_provider_schedule

import (
	"encoding/json"

	"github.com/inkline/INK-AvailabilityService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
// workSchedule принимается как есть: объект по дням недели или массив дней
type UpdateScheduleRequest struct {
	Timezone     string          `json:"timezone"`
	WorkSchedule json.RawMessage `json:"workSchedule"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:       userID,
		Timezone:     r.Timezone,
		WorkSchedule: r.WorkSchedule,
	}
}
