package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrScheduleNotConfigured возвращается, когда у провайдера нет расписания
	ErrScheduleNotConfigured = errors.New("create_appointment: provider has no work schedule configured")

	// ErrOutsideWorkingHours возвращается, когда запрошенное время
	// не попадает в рабочее окно провайдера
	ErrOutsideWorkingHours = errors.New("create_appointment: requested time is outside working hours")

	// ErrInvalidTimeSlot возвращается, когда время не выровнено по 30-минутной сетке
	ErrInvalidTimeSlot = errors.New("create_appointment: time is not aligned to the slot grid")

	// ErrDateInPast возвращается при попытке записи на прошедшее время
	ErrDateInPast = errors.New("create_appointment: requested time is in the past")

	// ErrSlotTaken возвращается, когда слот занят — либо на предварительной
	// проверке, либо на финальной проверке при записи (гонка между поиском и вставкой)
	ErrSlotTaken = errors.New("create_appointment: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
