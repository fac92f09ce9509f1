package compute_project_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	scheduleRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/schedule"
	catalogClient "github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
)

// UseCase use case подбора дат многосеансового проекта
//
// Ядро движка (computeProjectDates и findNextSlot в slots.go) — чистые
// функции от входных данных; use case только собирает для них снимок
// расписания и занятых интервалов из хранилища
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подбора дат проекта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeProjectAvailability: provider=%d, service=%d, sittings=%d, frequency=%s, start=%s",
		req.ProviderID, req.ServiceID, req.Sittings, req.Frequency, req.StartDate.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeProjectAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу из каталога (длительность сеанса и цена)
	service, err := uc.catalogClient.GetService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ComputeProjectAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ComputeProjectAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = service.DurationMinutes
	}

	// 4. Получаем расписание провайдера
	schedule, err := uc.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("ComputeProjectAvailability: provider id=%d has no schedule", req.ProviderID)
			return nil, ErrScheduleNotConfigured
		}
		uc.logger.Error("ComputeProjectAvailability: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Таймзона провайдера провалидирована на слое настроек,
	// здесь только загружаем локацию
	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		uc.logger.Error("ComputeProjectAvailability: provider id=%d has invalid timezone %q: %v",
			req.ProviderID, schedule.Timezone, err)
		return nil, fmt.Errorf("%w: invalid provider timezone %q: %v", ErrInternal, schedule.Timezone, err)
	}

	// 6. Нормализуем недельное расписание к единому виду
	workDays := domain.NormalizeWorkSchedule(schedule.WorkSchedule)

	// 7. Собираем занятые интервалы от начала поиска и дальше
	searchFrom := req.StartDate
	if searchFrom.Before(now) {
		searchFrom = now
	}

	filter := domain.ProviderAppointmentsFilter{
		ProviderID:      req.ProviderID,
		From:            &searchFrom,
		IncludeInactive: false, // Отменённые записи слоты не занимают
	}

	appointments, err := uc.appointmentRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ComputeProjectAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	busy := make([]domain.Interval, 0, len(appointments))
	for _, appt := range appointments {
		busy = append(busy, appt.Interval())
	}

	// 8. Запускаем чистый движок подбора
	result, err := computeProjectDates(domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: durationMinutes,
		Sittings:               req.Sittings,
		Frequency:              req.Frequency,
		StartDate:              req.StartDate,
		WorkSchedule:           workDays,
		ExistingAppointments:   busy,
		TimeZone:               schedule.Timezone,
	}, getServicePrice(service), loc, now)
	if err != nil {
		uc.logger.Warn("ComputeProjectAvailability: search failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	uc.logger.Info("ComputeProjectAvailability: proposed %d dates for provider=%d, first=%s, totalCost=%.2f",
		len(result.ProposedDates), req.ProviderID, result.ProposedDates[0].Format(time.RFC3339), result.TotalCost)

	return &Response{
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		Sittings:        req.Sittings,
		Frequency:       req.Frequency,
		DurationMinutes: durationMinutes,
		ProposedDates:   result.ProposedDates,
		TotalCost:       result.TotalCost,
	}, nil
}

// getServicePrice извлекает цену сеанса из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
