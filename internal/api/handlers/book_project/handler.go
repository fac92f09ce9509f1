package book_project

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/inkline/INK-AvailabilityService/internal/api/handlers"
	bookProject "github.com/inkline/INK-AvailabilityService/internal/usecase/book_project"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат сеансов, ожидается ISO 8601"
	msgInvalidInput       = "некорректные параметры запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgDateInPast         = "дата сеанса уже прошла"
	msgDatesNotIncreasing = "даты сеансов должны строго возрастать"
	msgDatesOverlap       = "сеансы пересекаются между собой"
	msgSlotTaken          = "слот сеанса %d больше недоступен, повторите подбор дат"
	msgSlotTakenGeneric   = "один из слотов больше недоступен, повторите подбор дат"
)

type Handler struct {
	useCase BookProjectUseCase
	logger  Logger
}

func NewHandler(useCase BookProjectUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/projects
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req BookProjectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /projects - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /projects - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookProject.ErrInvalidInput):
			h.logger.Warn("POST /projects - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookProject.ErrServiceNotFound):
			h.logger.Warn("POST /projects - Service not found: provider_id=%d, service_id=%d",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookProject.ErrDateInPast):
			h.logger.Warn("POST /projects - Date in past: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookProject.ErrDatesNotIncreasing):
			h.logger.Warn("POST /projects - Dates not increasing: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgDatesNotIncreasing)

		case errors.Is(err, bookProject.ErrDatesOverlap):
			h.logger.Warn("POST /projects - Dates overlap: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgDatesOverlap)

		case errors.Is(err, bookProject.ErrSlotTaken):
			h.logger.Warn("POST /projects - Slot taken: provider_id=%d, error=%v", req.ProviderID, err)
			h.respondSlotTaken(w, err)

		default:
			h.logger.Error("POST /projects - Failed to book project: client_id=%d, provider_id=%d, error=%v",
				req.ClientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /projects - Project booked successfully: project_id=%d, client_id=%d, sittings=%d",
		result.ProjectID, result.ClientID, len(result.Sittings))
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondSlotTaken отдаёт 409 с номером сеанса, слот которого заняли —
// клиент перезапускает подбор дат и пробует снова
func (h *Handler) respondSlotTaken(w http.ResponseWriter, err error) {
	var taken *bookProject.SittingTakenError
	if errors.As(err, &taken) {
		handlers.RespondConflict(w, fmt.Sprintf(msgSlotTaken, taken.Sitting))
		return
	}
	handlers.RespondConflict(w, msgSlotTakenGeneric)
}
