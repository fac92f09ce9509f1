package book_project

import "time"

// Request модель запроса на фиксацию многосеансового проекта
// ProposedDates приходят из предшествующего запроса подбора доступности
type Request struct {
	ClientID   int64
	ProviderID int64
	ServiceID  int64

	// Переопределение длительности сеанса в минутах, 0 = из каталога
	// Должно совпадать со значением, использованным при подборе дат
	DurationMinutes int

	ProposedDates []time.Time // По одной дате на сеанс, строго возрастающие
	Notes         *string
}

// Sitting созданный сеанс проекта
type Sitting struct {
	AppointmentID int64
	SittingNumber int
	StartTime     time.Time
	EndTime       time.Time
}

// Response модель ответа с созданным проектом
type Response struct {
	ProjectID       int64
	ClientID        int64
	ProviderID      int64
	ServiceID       int64
	DurationMinutes int

	ServiceName string
	Sittings    []Sitting
	TotalCost   float64 // Цена сеанса × количество сеансов
}
