package book_project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
	apptRepo "github.com/inkline/INK-AvailabilityService/internal/infra/storage/appointment"
	catalogClient "github.com/inkline/INK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/inkline/INK-AvailabilityService/pkg/ptr"
)

// UseCase use case фиксации многосеансового проекта
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case фиксации проекта
//
// Даты приходят из предшествующего подбора доступности и к моменту фиксации
// могли устареть, поэтому каждый сеанс повторно проверяется на пересечения
// в одной сериализуемой транзакции. Либо создаются все сеансы, либо ни одного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookProject: client=%d, provider=%d, service=%d, sittings=%d",
		req.ClientID, req.ProviderID, req.ServiceID, len(req.ProposedDates))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookProject: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("BookProject: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookProject: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = service.DurationMinutes
	}

	// 3. Проверяем даты сеансов (будущее, сетка, порядок, самопересечения)
	now := uc.timeProvider.Now()
	if err := validateProposedDates(req.ProposedDates, durationMinutes, now); err != nil {
		uc.logger.Warn("BookProject: proposed dates validation failed: %v", err)
		return nil, err
	}

	duration := time.Duration(durationMinutes) * time.Minute
	pricePerSitting := getServicePrice(service)

	// Переменные для хранения результата
	var projectID int64
	created := make([]*domain.Appointment, 0, len(req.ProposedDates))

	// 4. Финальная проверка пересечений и вставка всех сеансов в одной
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		id, err := uc.appointmentRepo.NextProjectID(txCtx)
		if err != nil {
			uc.logger.Error("BookProject: failed to allocate project id: %v", err)
			return fmt.Errorf("%w: failed to allocate project id: %v", ErrInternal, err)
		}
		projectID = id

		for i, start := range req.ProposedDates {
			end := start.Add(duration)

			overlaps, err := uc.appointmentRepo.HasOverlap(txCtx, req.ProviderID, start, end)
			if err != nil {
				uc.logger.Error("BookProject: failed to check overlap for sitting %d: %v", i+1, err)
				return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
			}
			if overlaps {
				uc.logger.Warn("BookProject: sitting %d at %s already taken for provider=%d",
					i+1, start.Format(time.RFC3339), req.ProviderID)
				return &SittingTakenError{Sitting: i + 1}
			}

			appt := &domain.Appointment{
				ProviderID:    req.ProviderID,
				ClientID:      req.ClientID,
				ServiceID:     req.ServiceID,
				ProjectID:     &projectID,
				SittingNumber: ptr.Ptr(i + 1),
				StartTime:     start,
				EndTime:       end,
				Status:        domain.StatusConfirmed,
				ServiceName:   service.Name,
				ServicePrice:  pricePerSitting,
				Notes:         req.Notes,
			}

			saved, err := uc.appointmentRepo.Create(txCtx, appt)
			if err != nil {
				if errors.Is(err, apptRepo.ErrSlotTaken) {
					// Страховка на уровне БД сработала раньше нашей проверки
					return &SittingTakenError{Sitting: i + 1}
				}
				uc.logger.Error("BookProject: failed to create sitting %d: %v", i+1, err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookProject: successfully created project id=%d with %d sittings",
		projectID, len(created))

	sittings := make([]Sitting, 0, len(created))
	for _, appt := range created {
		sittings = append(sittings, Sitting{
			AppointmentID: appt.ID,
			SittingNumber: *appt.SittingNumber,
			StartTime:     appt.StartTime,
			EndTime:       appt.EndTime,
		})
	}

	return &Response{
		ProjectID:       projectID,
		ClientID:        req.ClientID,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		ServiceName:     service.Name,
		Sittings:        sittings,
		TotalCost:       pricePerSitting * float64(len(created)),
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
