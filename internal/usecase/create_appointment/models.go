package create_appointment

import "time"

// Request модель запроса на создание разовой записи
type Request struct {
	ClientID   int64     // ID клиента
	ProviderID int64     // ID мастера
	ServiceID  int64     // ID услуги из каталога
	StartTime  time.Time // Абсолютный момент начала (UTC)

	// Переопределение длительности в минутах, 0 = длительность услуги из каталога
	DurationMinutes int

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	ProviderID      int64
	ServiceID       int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
