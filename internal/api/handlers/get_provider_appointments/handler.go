package get_provider_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inkline/INK-AvailabilityService/internal/api/handlers"
	"github.com/inkline/INK-AvailabilityService/internal/api/middleware"
	"github.com/inkline/INK-AvailabilityService/internal/service/appointments"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgProviderNotFound  = "мастер не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/appointments
// Query params: from (optional, YYYY-MM-DD), to (optional, YYYY-MM-DD),
// status (optional), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем providerId из URL
	vars := mux.Vars(r)
	providerIDStr := vars["providerId"]

	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/appointments - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{providerId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	includeInactive := query.Get("includeInactive") == "true"

	// Формируем запрос сервиса (с парсингом периода)
	serviceReq, err := ToServiceRequest(providerID, userID,
		query.Get("from"), query.Get("to"), query.Get("status"), includeInactive)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/appointments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем записи (сервис сам проверит права доступа)
	result, err := h.service.GetProviderAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{providerId}/appointments - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /providers/{providerId}/appointments - Access denied: provider_id=%d, user_id=%d",
				providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /providers/{providerId}/appointments - Invalid filter: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /providers/{providerId}/appointments - Failed to get appointments: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/appointments - Appointments retrieved successfully: provider_id=%d, count=%d",
		providerID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
