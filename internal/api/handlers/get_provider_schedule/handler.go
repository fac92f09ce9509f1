package get_provider_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inkline/INK-AvailabilityService/internal/api/handlers"
	"github.com/inkline/INK-AvailabilityService/internal/service/schedule"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgNotFound          = "расписание мастера не настроено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем providerId из URL
	vars := mux.Vars(r)
	providerIDStr := vars["providerId"]

	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/schedule - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Получаем расписание
	result, err := h.service.Get(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("GET /providers/{providerId}/schedule - Schedule not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /providers/{providerId}/schedule - Failed to get schedule: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/schedule - Schedule retrieved successfully: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
