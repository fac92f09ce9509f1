package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание мастера не настроено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrProviderNotFound возвращается, когда мастер не найден в каталоге
	ErrProviderNotFound = errors.New("provider not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTimezone возвращается, когда таймзона не является валидным IANA-идентификатором
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidWorkSchedule возвращается при некорректном недельном расписании
	ErrInvalidWorkSchedule = errors.New("invalid work schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
