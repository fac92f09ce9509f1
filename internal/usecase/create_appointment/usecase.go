package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	apptRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/appointment"
	scheduleRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/schedule"
	catalogClient "github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
)

// UseCase use case создания разовой записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Снимок занятости, увиденный клиентом при поиске слота, к моменту записи
// мог устареть, поэтому проверка пересечений повторяется здесь в
// сериализуемой транзакции непосредственно перед вставкой. Exclusion
// constraint в таблице страхует и этот путь.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, provider=%d, service=%d, start=%s",
		req.ClientID, req.ProviderID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем время начала (не в прошлом, по сетке)
	if err := validateStartTime(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: start time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = service.DurationMinutes
	}
	endTime := req.StartTime.Add(time.Duration(durationMinutes) * time.Minute)

	// 5. Получаем расписание провайдера и проверяем рабочие часы
	schedule, err := uc.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateAppointment: provider id=%d has no schedule", req.ProviderID)
			return nil, ErrScheduleNotConfigured
		}
		uc.logger.Error("CreateAppointment: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		uc.logger.Error("CreateAppointment: provider id=%d has invalid timezone %q: %v",
			req.ProviderID, schedule.Timezone, err)
		return nil, fmt.Errorf("%w: invalid provider timezone %q: %v", ErrInternal, schedule.Timezone, err)
	}

	workDays := domain.NormalizeWorkSchedule(schedule.WorkSchedule)
	if err := validateWithinWorkingHours(req.StartTime, durationMinutes, workDays, loc); err != nil {
		uc.logger.Warn("CreateAppointment: working hours validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Финальная проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlaps, err := uc.appointmentRepo.HasOverlap(txCtx, req.ProviderID, req.StartTime, endTime)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if overlaps {
			uc.logger.Warn("CreateAppointment: slot %s already taken for provider=%d",
				req.StartTime.Format(time.RFC3339), req.ProviderID)
			return ErrSlotTaken
		}

		appt := &domain.Appointment{
			ProviderID:   req.ProviderID,
			ClientID:     req.ClientID,
			ServiceID:    req.ServiceID,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			Status:       domain.StatusConfirmed,
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			Notes:        req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				// Страховка на уровне БД сработала раньше нашей проверки
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ProviderID:      result.ProviderID,
		ServiceID:       result.ServiceID,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: durationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
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
