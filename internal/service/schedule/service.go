package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	scheduleRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/schedule"
	catalogClient "github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/inkline/INK-AvailabilityService/internal/service/schedule/models"
)

// Service сервис для работы с расписаниями мастеров
type Service struct {
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Get получает расписание мастера
// Публичный метод - расписание видно всем
func (s *Service) Get(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for provider=%d", providerID)

	schedule, err := s.scheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule for provider=%d not found", providerID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched schedule for provider=%d", providerID)
	return models.FromDomainSchedule(schedule), nil
}

// Update создает или обновляет расписание мастера
// Доступно только самому мастеру
//
// Таймзона проверяется здесь, на границе настроек: дальше по коду
// (поиск слотов, проверка рабочих часов) она считается валидной
func (s *Service) Update(ctx context.Context, providerID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule for provider=%d by user=%d", providerID, req.UserID)

	// 1. Проверяем права доступа (только сам мастер)
	if providerID != req.UserID {
		s.logger.Warn("Update: access denied for user=%d to provider=%d schedule", req.UserID, providerID)
		return nil, ErrAccessDenied
	}

	// 2. Проверяем, что мастер существует в каталоге
	if _, err := s.catalogClient.GetProvider(ctx, providerID); err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			s.logger.Warn("Update: provider id=%d not found", providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Update: failed to get provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Валидируем таймзону и расписание
	if err := s.validateScheduleData(req.Timezone, req.WorkSchedule); err != nil {
		s.logger.Warn("Update: validation failed for provider=%d: %v", providerID, err)
		return nil, err
	}

	// 4. Сохраняем (insert или update - решает БД)
	schedule := &domain.ProviderSchedule{
		ProviderID:   providerID,
		Timezone:     req.Timezone,
		WorkSchedule: req.WorkSchedule,
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("Update: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule for provider=%d", providerID)
	return models.FromDomainSchedule(saved), nil
}

// Вспомогательные методы

// validateScheduleData валидирует таймзону и недельное расписание
func (s *Service) validateScheduleData(timezone string, workSchedule []byte) error {
	if timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}

	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("%w: %q is not a valid IANA timezone", ErrInvalidTimezone, timezone)
	}

	if len(workSchedule) == 0 {
		return fmt.Errorf("%w: workSchedule is required", ErrInvalidInput)
	}

	days := domain.NormalizeWorkSchedule(workSchedule)
	if len(days) == 0 {
		return fmt.Errorf("%w: workSchedule must be an object keyed by weekday or an array of days", ErrInvalidWorkSchedule)
	}

	// У включённого дня должно быть валидное рабочее окно
	hasEnabled := false
	for _, day := range days {
		if !day.Enabled {
			continue
		}
		hasEnabled = true
		if _, _, ok := day.Window(); !ok {
			return fmt.Errorf("%w: day %s has invalid working hours %q-%q",
				ErrInvalidWorkSchedule, day.Day, day.Start, day.End)
		}
	}
	if !hasEnabled {
		return fmt.Errorf("%w: at least one working day must be enabled", ErrInvalidWorkSchedule)
	}

	return nil
}
