package compute_project_availability

import (
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

// Request модель запроса на подбор дат многосеансового проекта
type Request struct {
	ProviderID int64            // ID мастера
	ServiceID  int64            // ID услуги из каталога
	Sittings   int              // Количество сеансов
	Frequency  domain.Frequency // Каденция между сеансами
	StartDate  time.Time        // Самый ранний момент начала поиска

	// Переопределение длительности сеанса в минутах
	// 0 = использовать длительность услуги из каталога
	DurationMinutes int
}

// Response модель ответа с предложенными датами сеансов
type Response struct {
	ProviderID      int64
	ServiceID       int64
	Sittings        int
	Frequency       domain.Frequency
	DurationMinutes int

	ProposedDates []time.Time // Строго возрастающие UTC-инстанты, по одному на сеанс
	TotalCost     float64     // Цена сеанса × количество сеансов
}
