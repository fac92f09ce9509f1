package types

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay время суток без привязки к дате и таймзоне
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay разбирает время суток из строки в 24-часовом ("14:30")
// или 12-часовом ("02:30 PM") формате.
//
// Возвращает (TimeOfDay{}, false) на любой некорректной строке — вызывающий
// код обязан трактовать это как "нет данных", а не как ошибку. Расписание
// с нечитаемым временем просто не даёт доступных окон в этот день.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, false
	}

	// Срезаем суффикс AM/PM без учета регистра
	upper := strings.ToUpper(s)
	isPM := strings.HasSuffix(upper, "PM")
	isAM := strings.HasSuffix(upper, "AM")
	if isPM || isAM {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	// Оставшаяся часть должна быть H:MM или HH:MM
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, false
	}

	hour, ok := parseTwoDigit(parts[0])
	if !ok {
		return TimeOfDay{}, false
	}
	minute, ok := parseTwoDigit(parts[1])
	if !ok || len(parts[1]) != 2 {
		return TimeOfDay{}, false
	}

	// Стандартная нормализация 12-часового формата
	if isPM && hour < 12 {
		hour += 12
	}
	if isAM && hour == 12 {
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// FromTime извлекает время суток из time.Time (в его локации)
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes возвращает количество минут с полуночи
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before возвращает true, если t раньше other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// parseTwoDigit разбирает строку из 1-2 цифр без знаков и пробелов
// strconv.Atoi здесь не подходит: он принимает "+1" и " 1" после TrimSpace выше
func parseTwoDigit(s string) (int, bool) {
	if len(s) < 1 || len(s) > 2 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
