package compute_project_availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

// weekdaySchedule расписание Пн-Пт 09:00-18:00
func weekdaySchedule() []domain.WorkDay {
	return []domain.WorkDay{
		{Day: domain.Monday, Enabled: true, Start: "09:00", End: "18:00"},
		{Day: domain.Tuesday, Enabled: true, Start: "09:00", End: "18:00"},
		{Day: domain.Wednesday, Enabled: true, Start: "09:00", End: "18:00"},
		{Day: domain.Thursday, Enabled: true, Start: "09:00", End: "18:00"},
		{Day: domain.Friday, Enabled: true, Start: "09:00", End: "18:00"},
	}
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestComputeProjectDatesWeekly(t *testing.T) {
	// 2026-06-01 - понедельник
	now := utc(2026, 6, 1, 0, 0)

	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 120,
		Sittings:               3,
		Frequency:              domain.FrequencyWeekly,
		StartDate:              utc(2026, 6, 1, 9, 0),
		WorkSchedule:           weekdaySchedule(),
	}

	result, err := computeProjectDates(req, 150.0, time.UTC, now)
	require.NoError(t, err)

	require.Len(t, result.ProposedDates, 3)
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 6, 1, 9, 0)))
	assert.True(t, result.ProposedDates[1].Equal(utc(2026, 6, 8, 9, 0)))
	assert.True(t, result.ProposedDates[2].Equal(utc(2026, 6, 15, 9, 0)))

	assert.Equal(t, 450.0, result.TotalCost)
}

func TestComputeProjectDatesBeforeOpening(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Запрос на 08:00 при открытии в 09:00: слот сдвигается к началу окна
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              utc(2026, 6, 1, 8, 0),
		WorkSchedule:           weekdaySchedule(),
	}

	result, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 1)
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 6, 1, 9, 0)))
}

func TestComputeProjectDatesSkipsDisabledDays(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Старт в субботу: первый слот должен уехать на понедельник 09:00
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              utc(2026, 6, 6, 10, 0),
		WorkSchedule:           weekdaySchedule(),
	}

	result, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 1)
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 6, 8, 9, 0)))
}

func TestComputeProjectDatesProviderTimezone(t *testing.T) {
	// Brisbane UTC+10 без переводов часов
	loc, err := time.LoadLocation("Australia/Brisbane")
	require.NoError(t, err)

	now := utc(2026, 2, 1, 0, 0)

	// 2026-02-14T23:00Z - суббота в UTC, но воскресенье 09:00 в Брисбене.
	// Работает только воскресенье: слот должен быть принят как есть.
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 120,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              utc(2026, 2, 14, 23, 0),
		WorkSchedule: []domain.WorkDay{
			{Day: domain.Sunday, Enabled: true, Start: "09:00", End: "17:00"},
		},
	}

	result, err := computeProjectDates(req, 200.0, loc, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 1)
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 2, 14, 23, 0)))
}

func TestComputeProjectDatesAvoidsExistingAppointments(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Понедельник занят с 09:00 до 11:00: часовой сеанс должен встать на 11:00
	// (соприкосновение границ пересечением не считается)
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              utc(2026, 6, 1, 9, 0),
		WorkSchedule:           weekdaySchedule(),
		ExistingAppointments: []domain.Interval{
			{Start: utc(2026, 6, 1, 9, 0), End: utc(2026, 6, 1, 11, 0)},
		},
	}

	result, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 1)
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 6, 1, 11, 0)))
}

func TestComputeProjectDatesConsecutiveSittingsDoNotOverlap(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 480,
		Sittings:               5,
		Frequency:              domain.FrequencyConsecutive,
		StartDate:              utc(2026, 6, 1, 9, 0),
		WorkSchedule:           weekdaySchedule(),
	}

	result, err := computeProjectDates(req, 300.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 5)

	duration := 480 * time.Minute
	for i := 1; i < len(result.ProposedDates); i++ {
		prev, curr := result.ProposedDates[i-1], result.ProposedDates[i]
		assert.True(t, curr.After(prev), "dates must be strictly increasing")
		assert.False(t, curr.Before(prev.Add(duration)), "sittings must not overlap")
	}
}

func TestComputeProjectDatesMonthlyClampsToMonthEnd(t *testing.T) {
	// 2026-01-31 - суббота
	now := utc(2026, 1, 1, 0, 0)

	allDays := append(weekdaySchedule(),
		domain.WorkDay{Day: domain.Saturday, Enabled: true, Start: "09:00", End: "18:00"},
		domain.WorkDay{Day: domain.Sunday, Enabled: true, Start: "09:00", End: "18:00"},
	)

	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               3,
		Frequency:              domain.FrequencyMonthly,
		StartDate:              utc(2026, 1, 31, 10, 0),
		WorkSchedule:           allDays,
	}

	result, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 3)

	// 31 января + месяц = 28 февраля (2026 не високосный), а не 3 марта
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 1, 31, 10, 0)))
	assert.True(t, result.ProposedDates[1].Equal(utc(2026, 2, 28, 10, 0)))
	assert.True(t, result.ProposedDates[2].Equal(utc(2026, 3, 28, 10, 0)))
}

func TestOvernightWindowSlotsStartOnWindowDay(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Смена пятницы 22:00-02:00: сеанс может начаться только в пятницу
	// до полуночи. Часы после полуночи принадлежат пятничному окну, но
	// стартом не предлагаются - при занятом вечере поиск уходит на
	// следующую пятницу, а не на субботу 00:00
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              now,
		WorkSchedule: []domain.WorkDay{
			{Day: domain.Friday, Enabled: true, Start: "22:00", End: "02:00"},
		},
		ExistingAppointments: []domain.Interval{
			// 2026-06-05 - пятница, весь вечер занят
			{Start: utc(2026, 6, 5, 22, 0), End: utc(2026, 6, 6, 0, 0)},
		},
	}

	result, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 1)
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 6, 12, 22, 0)))
}

func TestComputeProjectDatesPastStartClampedToNow(t *testing.T) {
	now := utc(2026, 6, 1, 9, 47)

	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              utc(2026, 5, 1, 9, 0), // месяц назад
		WorkSchedule:           weekdaySchedule(),
	}

	result, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.NoError(t, err)
	require.Len(t, result.ProposedDates, 1)

	// "Сейчас" 09:47 поднимается до ближайшей границы сетки - 10:00
	assert.True(t, result.ProposedDates[0].Equal(utc(2026, 6, 1, 10, 0)))
}

func TestComputeProjectDatesNoWorkingDays(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              now,
		WorkSchedule: []domain.WorkDay{
			{Day: domain.Monday, Enabled: false, Start: "09:00", End: "18:00"},
		},
	}

	_, err := computeProjectDates(req, 100.0, time.UTC, now)
	assert.ErrorIs(t, err, ErrInvalidScheduleConfiguration)
}

func TestComputeProjectDatesServiceExceedsCapacity(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Самое длинное окно недели - 9 часов, сеанс 10 часов не влезает никогда
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 600,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              now,
		WorkSchedule:           weekdaySchedule(),
	}

	_, err := computeProjectDates(req, 100.0, time.UTC, now)
	assert.ErrorIs(t, err, ErrServiceExceedsCapacity)
}

func TestComputeProjectDatesSearchExhausted(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Всё занято на два года вперед: ни один кандидат не проходит
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              utc(2026, 6, 1, 10, 0),
		WorkSchedule: []domain.WorkDay{
			{Day: domain.Monday, Enabled: true, Start: "10:00", End: "11:00"},
		},
		ExistingAppointments: []domain.Interval{
			{Start: now, End: now.AddDate(2, 0, 0)},
		},
	}

	_, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.ErrorIs(t, err, ErrSlotSearchExhausted)

	var exhausted *SearchExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 1, exhausted.Sitting)
	require.NotEmpty(t, exhausted.Examples)
	assert.LessOrEqual(t, len(exhausted.Examples), domain.MaxSearchFailureExamples)

	// Первый кандидат попадает в рабочее окно и отклоняется именно конфликтом
	assert.True(t, exhausted.Examples[0].At.Equal(utc(2026, 6, 1, 10, 0)))
	assert.Equal(t, reasonConflict, exhausted.Examples[0].Reason)
}

func TestSearchExhaustedDiagnosticsNotDrownedByPreOpeningSteps(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Поиск стартует в полночь: до открытия в 10:00 двадцать шагов сетки
	// вне рабочих часов, но примеры не должны состоять из них одних —
	// конфликт в 10:00 обязан попасть в диагностику
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               1,
		Frequency:              domain.FrequencySingle,
		StartDate:              now,
		WorkSchedule: []domain.WorkDay{
			{Day: domain.Monday, Enabled: true, Start: "10:00", End: "11:00"},
		},
		ExistingAppointments: []domain.Interval{
			{Start: now, End: now.AddDate(2, 0, 0)},
		},
	}

	_, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.ErrorIs(t, err, ErrSlotSearchExhausted)

	var exhausted *SearchExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.NotEmpty(t, exhausted.Examples)

	conflicts := 0
	outsideDays := make(map[string]int)
	for _, ex := range exhausted.Examples {
		switch ex.Reason {
		case reasonConflict:
			conflicts++
		case reasonOutsideHours:
			outsideDays[ex.At.Format("2006-01-02")]++
		}
	}

	assert.GreaterOrEqual(t, conflicts, 1)
	for day, count := range outsideDays {
		assert.Equal(t, 1, count, "more than one outside-hours example for %s", day)
	}
}

func TestComputeProjectDatesExhaustedOnLaterSitting(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Первый понедельник свободен, всё после него занято на два года:
	// первый сеанс находится, второй исчерпывает горизонт
	req := domain.ProjectAvailabilityRequest{
		ServiceDurationMinutes: 60,
		Sittings:               2,
		Frequency:              domain.FrequencyWeekly,
		StartDate:              now,
		WorkSchedule: []domain.WorkDay{
			{Day: domain.Monday, Enabled: true, Start: "10:00", End: "11:00"},
		},
		ExistingAppointments: []domain.Interval{
			{Start: utc(2026, 6, 2, 0, 0), End: utc(2028, 6, 2, 0, 0)},
		},
	}

	_, err := computeProjectDates(req, 100.0, time.UTC, now)
	require.ErrorIs(t, err, ErrSlotSearchExhausted)

	var exhausted *SearchExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Sitting)
}

func TestFindNextSlotAlignsToGrid(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Старт 09:10 поднимается до 09:30
	slot, _, found := findNextSlot(utc(2026, 6, 1, 9, 10), 60, weekdaySchedule(), time.UTC, nil, now)
	require.True(t, found)
	assert.True(t, slot.Equal(utc(2026, 6, 1, 9, 30)))

	// Точное попадание в сетку не сдвигается
	slot, _, found = findNextSlot(utc(2026, 6, 1, 9, 30), 60, weekdaySchedule(), time.UTC, nil, now)
	require.True(t, found)
	assert.True(t, slot.Equal(utc(2026, 6, 1, 9, 30)))
}

func TestFindNextSlotRespectsWindowEnd(t *testing.T) {
	now := utc(2026, 6, 1, 0, 0)

	// Окно до 18:00: двухчасовой сеанс в 17:00 не влезает, последний
	// допустимый старт - 16:00
	slot, _, found := findNextSlot(utc(2026, 6, 1, 16, 30), 120, weekdaySchedule(), time.UTC, nil, now)
	require.True(t, found)

	// 16:30 + 120 минут = 18:30 > 18:00, слот уезжает на вторник 09:00
	assert.True(t, slot.Equal(utc(2026, 6, 2, 9, 0)))
}

func TestRoundUpToStep(t *testing.T) {
	assert.True(t, roundUpToStep(utc(2026, 6, 1, 9, 0)).Equal(utc(2026, 6, 1, 9, 0)))
	assert.True(t, roundUpToStep(utc(2026, 6, 1, 9, 1)).Equal(utc(2026, 6, 1, 9, 30)))
	assert.True(t, roundUpToStep(utc(2026, 6, 1, 9, 31)).Equal(utc(2026, 6, 1, 10, 0)))

	// Секунды обнуляются округлением вверх
	withSeconds := time.Date(2026, 6, 1, 9, 30, 15, 0, time.UTC)
	assert.True(t, roundUpToStep(withSeconds).Equal(utc(2026, 6, 1, 10, 0)))
}

func TestAdvanceByFrequency(t *testing.T) {
	slot := utc(2026, 6, 1, 10, 0)

	assert.True(t, advanceByFrequency(slot, domain.FrequencyConsecutive, time.UTC).Equal(utc(2026, 6, 2, 10, 0)))
	assert.True(t, advanceByFrequency(slot, domain.FrequencyWeekly, time.UTC).Equal(utc(2026, 6, 8, 10, 0)))
	assert.True(t, advanceByFrequency(slot, domain.FrequencyBiweekly, time.UTC).Equal(utc(2026, 6, 15, 10, 0)))
	assert.True(t, advanceByFrequency(slot, domain.FrequencyMonthly, time.UTC).Equal(utc(2026, 7, 1, 10, 0)))
}

func TestSearchExhaustedErrorMessage(t *testing.T) {
	err := exhausted(3, []RejectedCandidate{
		{At: utc(2026, 6, 1, 10, 0), Reason: reasonConflict},
	})

	assert.True(t, errors.Is(err, ErrSlotSearchExhausted))
	assert.Contains(t, err.Error(), "sitting 3")
}
