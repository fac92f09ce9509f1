package get_provider_schedule

import (
	"context"

	"github.com/inkline/INK-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, providerID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
