package book_project

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("book_project: service not found")

	// ErrDateInPast возвращается, когда одна из предложенных дат уже прошла
	ErrDateInPast = errors.New("book_project: proposed date is in the past")

	// ErrDatesNotIncreasing возвращается, когда даты сеансов не строго возрастают
	ErrDatesNotIncreasing = errors.New("book_project: proposed dates must be strictly increasing")

	// ErrDatesOverlap возвращается, когда интервалы сеансов пересекаются между собой
	ErrDatesOverlap = errors.New("book_project: proposed sittings overlap each other")

	// ErrSlotTaken возвращается, когда слот одного из сеансов заняли между
	// поиском доступности и фиксацией проекта — гонка, о которой клиенту
	// сообщаем "слот больше недоступен", а не молча двойное бронирование
	ErrSlotTaken = errors.New("book_project: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_project: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_project: internal error")
)

// SittingTakenError детализирует ErrSlotTaken номером сеанса (с единицы),
// слот которого оказался занят при финальной проверке
type SittingTakenError struct {
	Sitting int
}

// Error возвращает текст ошибки
func (e *SittingTakenError) Error() string {
	return fmt.Sprintf("%v: sitting %d", ErrSlotTaken, e.Sitting)
}

// Unwrap позволяет errors.Is(err, ErrSlotTaken)
func (e *SittingTakenError) Unwrap() error {
	return ErrSlotTaken
}
