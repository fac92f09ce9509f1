package schedule

import (
	"context"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	"github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний мастеров
type ScheduleRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSchedule, error)
	Upsert(ctx context.Context, schedule *domain.ProviderSchedule) (*domain.ProviderSchedule, error)
}

// CatalogServiceClient интерфейс клиента каталога
type CatalogServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
