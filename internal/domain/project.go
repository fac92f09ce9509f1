package domain

import (
	"strings"
	"time"
)

// Frequency каденция между сеансами многосеансового проекта
type Frequency string

const (
	FrequencySingle      Frequency = "single"
	FrequencyConsecutive Frequency = "consecutive"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencyMonthly     Frequency = "monthly"
)

// ParseFrequency разбирает каденцию без учета регистра
func ParseFrequency(s string) (Frequency, bool) {
	switch strings.ToLower(s) {
	case string(FrequencySingle):
		return FrequencySingle, true
	case string(FrequencyConsecutive):
		return FrequencyConsecutive, true
	case string(FrequencyWeekly):
		return FrequencyWeekly, true
	case string(FrequencyBiweekly):
		return FrequencyBiweekly, true
	case string(FrequencyMonthly):
		return FrequencyMonthly, true
	default:
		return "", false
	}
}

// ProjectAvailabilityRequest входной агрегат движка подбора дат проекта
type ProjectAvailabilityRequest struct {
	ServiceDurationMinutes int
	Sittings               int
	Frequency              Frequency

	// Самый ранний момент начала поиска; прошедшее время
	// поднимается до "сейчас" с округлением вверх до сетки
	StartDate time.Time

	WorkSchedule         []WorkDay
	ExistingAppointments []Interval

	// IANA таймзона провайдера: рабочие часы определены в его локальном
	// времени и сравниваются с кандидатами только после перевода
	TimeZone string
}

// ProjectAvailabilityResult предложенные даты сеансов и итоговая стоимость
type ProjectAvailabilityResult struct {
	// Строго возрастающие UTC-инстанты, по одному на сеанс
	ProposedDates []time.Time

	// Цена сеанса × количество сеансов
	TotalCost float64
}
