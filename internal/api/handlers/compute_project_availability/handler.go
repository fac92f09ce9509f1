package compute_project_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inkline/INK-AvailabilityService/internal/api/handlers"
	computeProjectAvailability "github.com/inkline/INK-AvailabilityService/internal/usecase/compute_project_availability"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgInvalidSittings   = "некорректное количество сеансов"
	msgMissingSittings   = "количество сеансов обязательно"
	msgMissingFrequency  = "периодичность сеансов обязательна"
	msgMissingStartDate  = "дата начала поиска обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
	msgInvalidDuration   = "некорректная длительность сеанса"
	msgServiceNotFound   = "услуга не найдена"
	msgScheduleNotSet    = "расписание мастера не настроено"
	msgScheduleMisconfig = "в расписании мастера нет рабочих дней"
	msgServiceTooLong    = "длительность сеанса превышает рабочий день мастера"
	msgNoSlotsInHorizon  = "не удалось подобрать даты сеансов в пределах года"
)

type Handler struct {
	useCase ComputeProjectAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ComputeProjectAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/project-availability
// Query params: serviceId (required), sittings (required), frequency (required),
// startDate (required, RFC 3339 или YYYY-MM-DD), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем providerId из URL
	providerIDStr := vars["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/project-availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()

	// Извлекаем serviceId из query параметров
	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /providers/{id}/project-availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/project-availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем sittings из query параметров
	sittingsStr := query.Get("sittings")
	if sittingsStr == "" {
		h.logger.Warn("GET /providers/{id}/project-availability - Missing sittings")
		handlers.RespondBadRequest(w, msgMissingSittings)
		return
	}

	sittings, err := strconv.Atoi(sittingsStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/project-availability - Invalid sittings: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSittings)
		return
	}

	// Извлекаем frequency из query параметров
	frequencyStr := query.Get("frequency")
	if frequencyStr == "" {
		h.logger.Warn("GET /providers/{id}/project-availability - Missing frequency")
		handlers.RespondBadRequest(w, msgMissingFrequency)
		return
	}

	// Извлекаем startDate из query параметров
	startDateStr := query.Get("startDate")
	if startDateStr == "" {
		h.logger.Warn("GET /providers/{id}/project-availability - Missing start date")
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	// Опциональное переопределение длительности
	durationMinutes := 0
	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/project-availability - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом frequency и startDate)
	useCaseReq, err := ToUseCaseRequest(providerID, serviceID, sittings, frequencyStr, startDateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/project-availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, computeProjectAvailability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/project-availability - Invalid input: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, computeProjectAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /providers/{id}/project-availability - Service not found: provider_id=%d, service_id=%d",
				providerID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, computeProjectAvailability.ErrScheduleNotConfigured):
			h.logger.Warn("GET /providers/{id}/project-availability - Schedule not configured: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgScheduleNotSet)

		case errors.Is(err, computeProjectAvailability.ErrInvalidScheduleConfiguration):
			h.logger.Warn("GET /providers/{id}/project-availability - No working days: provider_id=%d", providerID)
			handlers.RespondUnprocessableEntity(w, msgScheduleMisconfig)

		case errors.Is(err, computeProjectAvailability.ErrServiceExceedsCapacity):
			h.logger.Warn("GET /providers/{id}/project-availability - Service exceeds capacity: provider_id=%d, service_id=%d",
				providerID, serviceID)
			handlers.RespondUnprocessableEntity(w, msgServiceTooLong)

		case errors.Is(err, computeProjectAvailability.ErrSlotSearchExhausted):
			h.logger.Warn("GET /providers/{id}/project-availability - Search exhausted: provider_id=%d, error=%v",
				providerID, err)
			h.respondSearchExhausted(w, err)

		default:
			h.logger.Error("GET /providers/{id}/project-availability - Failed to compute availability: provider_id=%d, service_id=%d, error=%v",
				providerID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /providers/{id}/project-availability - Dates computed successfully: provider_id=%d, service_id=%d, sittings=%d",
		providerID, serviceID, sittings)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// respondSearchExhausted отдаёт 422 с номером сеанса и примерами отклонённых
// кандидатов, чтобы клиенту было видно, почему даты не подобрались
func (h *Handler) respondSearchExhausted(w http.ResponseWriter, err error) {
	var exhausted *computeProjectAvailability.SearchExhaustedError
	if !errors.As(err, &exhausted) {
		handlers.RespondUnprocessableEntity(w, msgNoSlotsInHorizon)
		return
	}

	response := FromSearchExhaustedError(http.StatusUnprocessableEntity, msgNoSlotsInHorizon, exhausted)
	handlers.RespondJSON(w, http.StatusUnprocessableEntity, response)
}
