package create_appointment

import (
	"errors"
	"net/http"

	"github.com/inkline/INK-AvailabilityService/internal/api/handlers"
	createAppointment "github.com/inkline/INK-AvailabilityService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается ISO 8601"
	msgInvalidInput       = "некорректные параметры запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgScheduleNotSet     = "расписание мастера не настроено"
	msgOutsideHours       = "запрошенное время вне рабочих часов мастера"
	msgInvalidTimeSlot    = "время не выровнено по 30-минутной сетке"
	msgDateInPast         = "запрошенное время уже прошло"
	msgSlotTaken          = "выбранный слот больше недоступен"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: provider_id=%d, service_id=%d",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrScheduleNotConfigured):
			h.logger.Warn("POST /appointments - Schedule not configured: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgScheduleNotSet)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Date in past: client_id=%d, start=%s", req.ClientID, req.StartTime)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Not aligned to grid: client_id=%d, start=%s", req.ClientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: provider_id=%d, start=%s",
				req.ProviderID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: provider_id=%d, start=%s", req.ProviderID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, provider_id=%d, error=%v",
				req.ClientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d",
		result.ID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
