package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/inkline/INK-AvailabilityService/pkg/types"
)

// Weekday название дня недели в расписании провайдера
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// weekdayOrder канонический порядок дней в нормализованном расписании
var weekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday разбирает название дня недели без учета регистра
func ParseWeekday(s string) (Weekday, bool) {
	for _, day := range weekdayOrder {
		if strings.EqualFold(s, string(day)) {
			return day, true
		}
	}
	return "", false
}

// FromTimeWeekday конвертирует time.Weekday в доменный Weekday
func FromTimeWeekday(wd time.Weekday) Weekday {
	switch wd {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WorkDay конфигурация одного дня недели в расписании провайдера
type WorkDay struct {
	Day     Weekday
	Enabled bool
	Start   string // "09:00" или "09:00 AM"
	End     string // "17:00" или "05:00 PM"
}

// Window возвращает разобранные границы рабочего окна дня.
// ok == false, если день выключен или хотя бы одна граница не разбирается —
// такой день просто не даёт доступных слотов, это не ошибка.
func (d WorkDay) Window() (start, end types.TimeOfDay, ok bool) {
	if !d.Enabled {
		return types.TimeOfDay{}, types.TimeOfDay{}, false
	}
	start, ok = types.ParseTimeOfDay(d.Start)
	if !ok {
		return types.TimeOfDay{}, types.TimeOfDay{}, false
	}
	end, ok = types.ParseTimeOfDay(d.End)
	if !ok {
		return types.TimeOfDay{}, types.TimeOfDay{}, false
	}
	return start, end, true
}

// WindowMinutes возвращает длину рабочего окна в минутах.
// Окончание раньше начала трактуется как переход через полночь (+24 часа).
func (d WorkDay) WindowMinutes() int {
	start, end, ok := d.Window()
	if !ok {
		return 0
	}
	minutes := end.Minutes() - start.Minutes()
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return minutes
}

// MaxDailyMinutes возвращает длину самого длинного рабочего окна недели.
// 0, если ни один день не даёт рабочего окна. Результат не зависит от порядка дней.
func MaxDailyMinutes(days []WorkDay) int {
	maxMinutes := 0
	for _, day := range days {
		if m := day.WindowMinutes(); m > maxMinutes {
			maxMinutes = m
		}
	}
	return maxMinutes
}

// WorkDayFor ищет включенный день расписания для указанного дня недели
func WorkDayFor(days []WorkDay, weekday Weekday) (WorkDay, bool) {
	for _, day := range days {
		if day.Enabled && strings.EqualFold(string(day.Day), string(weekday)) {
			return day, true
		}
	}
	return WorkDay{}, false
}

// rawDayConfig слабо типизированная конфигурация дня из хранилища
// Терпит snake_case и camelCase варианты ключей начала/конца
type rawDayConfig struct {
	Day     string `json:"day"`
	Enabled bool   `json:"enabled"`

	Start      string `json:"start"`
	End        string `json:"end"`
	StartCamel string `json:"startTime"`
	EndCamel   string `json:"endTime"`
	StartSnake string `json:"start_time"`
	EndSnake   string `json:"end_time"`
}

func (c rawDayConfig) start() string {
	return firstNonEmpty(c.Start, c.StartCamel, c.StartSnake)
}

func (c rawDayConfig) end() string {
	return firstNonEmpty(c.End, c.EndCamel, c.EndSnake)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NormalizeWorkSchedule приводит сырое недельное расписание к единому виду.
//
// Принимает обе формы хранения:
//   - объект с ключами-днями в нижнем регистре: {"monday": {...}, ...}
//   - массив записей с полем day: [{"day": "Monday", ...}, ...]
//
// Нечитаемое или пустое расписание нормализуется в пустой список, а не в
// ошибку: для движка это "у провайдера нет доступности", и запрос упадёт
// дальше с понятной precondition-ошибкой.
func NormalizeWorkSchedule(raw json.RawMessage) []WorkDay {
	if len(raw) == 0 {
		return []WorkDay{}
	}

	// Сначала пробуем форму-объект {"monday": {...}}
	var byDay map[string]rawDayConfig
	if err := json.Unmarshal(raw, &byDay); err == nil {
		days := make([]WorkDay, 0, len(byDay))
		// Обходим в каноническом порядке, чтобы результат был детерминирован
		for _, day := range weekdayOrder {
			cfg, ok := byDay[strings.ToLower(string(day))]
			if !ok {
				continue
			}
			days = append(days, WorkDay{
				Day:     day,
				Enabled: cfg.Enabled,
				Start:   cfg.start(),
				End:     cfg.end(),
			})
		}
		return days
	}

	// Затем форму-массив [{"day": "Monday", ...}]
	var list []rawDayConfig
	if err := json.Unmarshal(raw, &list); err == nil {
		days := make([]WorkDay, 0, len(list))
		for _, cfg := range list {
			day, ok := ParseWeekday(cfg.Day)
			if !ok {
				// Запись с нечитаемым днем пропускаем, остальные дни работают
				continue
			}
			days = append(days, WorkDay{
				Day:     day,
				Enabled: cfg.Enabled,
				Start:   cfg.start(),
				End:     cfg.end(),
			})
		}
		return days
	}

	return []WorkDay{}
}

// ProviderSchedule недельное расписание провайдера из хранилища
type ProviderSchedule struct {
	ProviderID   int64
	Timezone     string          // IANA идентификатор, валидируется на слое настроек
	WorkSchedule json.RawMessage // слабо типизированный payload, см. NormalizeWorkSchedule
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
