package domain

// Search parameters for the availability engine
const (
	// SlotStepMinutes шаг сетки поиска: все встречи и кандидаты выравниваются по 30 минут
	SlotStepMinutes = 30

	// SearchHorizonYears горизонт поиска свободного слота
	// Служит встроенной гарантией завершения перебора
	SearchHorizonYears = 1

	// MaxSearchFailureExamples сколько примеров отклонённых кандидатов
	// сохраняется в ошибке исчерпанного поиска для диагностики
	MaxSearchFailureExamples = 5
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 720 // 12 часов, дольше одного дня сеанс не бывает
	MinSittings               = 1
	MaxSittings               = 30

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных записей
// Неактивные записи не участвуют в проверках пересечений
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByProvider,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
