package compute_project_availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("compute_project_availability: service not found")

	// ErrScheduleNotConfigured возвращается, когда у провайдера нет сохраненного расписания
	ErrScheduleNotConfigured = errors.New("compute_project_availability: provider has no work schedule configured")

	// ErrInvalidScheduleConfiguration возвращается, когда расписание пустое
	// или ни один день не даёт рабочего окна
	ErrInvalidScheduleConfiguration = errors.New("compute_project_availability: work schedule has no usable days")

	// ErrServiceExceedsCapacity возвращается, когда длительность сеанса
	// превышает самое длинное рабочее окно недели — поиск в этом случае бессмыслен
	ErrServiceExceedsCapacity = errors.New("compute_project_availability: service exceeds provider's longest working day")

	// ErrSlotSearchExhausted возвращается, когда в пределах годового горизонта
	// не нашлось подходящего слота
	ErrSlotSearchExhausted = errors.New("compute_project_availability: no available slot within search horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_project_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_project_availability: internal error")
)

// Rejection reasons recorded for search diagnostics
const (
	reasonOutsideHours = "outside working hours"
	reasonConflict     = "conflicts with existing appointment"
)

// RejectedCandidate отклонённый кандидат для диагностики исчерпанного поиска
type RejectedCandidate struct {
	At     time.Time
	Reason string
}

// SearchExhaustedError детализированная ошибка исчерпанного поиска:
// номер сеанса (с единицы), для которого не нашлось слота, и до
// MaxSearchFailureExamples примеров отклонённых кандидатов
type SearchExhaustedError struct {
	Sitting  int
	Examples []RejectedCandidate
}

// Error возвращает текст ошибки с примерами отклонённых кандидатов
func (e *SearchExhaustedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v: sitting %d", ErrSlotSearchExhausted, e.Sitting)
	for _, ex := range e.Examples {
		fmt.Fprintf(&sb, "; %s %s", ex.At.Format(time.RFC3339), ex.Reason)
	}
	return sb.String()
}

// Unwrap позволяет errors.Is(err, ErrSlotSearchExhausted)
func (e *SearchExhaustedError) Unwrap() error {
	return ErrSlotSearchExhausted
}

// exhausted собирает SearchExhaustedError, обрезая примеры до лимита
func exhausted(sitting int, rejected []RejectedCandidate) *SearchExhaustedError {
	if len(rejected) > domain.MaxSearchFailureExamples {
		rejected = rejected[:domain.MaxSearchFailureExamples]
	}
	return &SearchExhaustedError{Sitting: sitting, Examples: rejected}
}
