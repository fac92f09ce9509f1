package compute_project_availability

import (
	"time"

	"github.com/inkline/INK-AvailabilityService/internal/domain"
)

// computeProjectDates подбирает по одному слоту на каждый сеанс проекта.
//
// Чисто вычислительная функция: не ходит в БД и не мутирует внешнее состояние,
// поэтому может вызываться конкурентно без блокировок. Найденные слоты
// добавляются во временный список занятых интервалов, чтобы сеансы одного
// запроса не пересекались между собой — без этого еженедельная каденция с
// длинными сеансами могла бы предложить накладывающиеся даты.
func computeProjectDates(
	req domain.ProjectAvailabilityRequest,
	pricePerSitting float64,
	loc *time.Location,
	now time.Time,
) (*domain.ProjectAvailabilityResult, error) {
	// Быстрые precondition-проверки до какого-либо перебора
	if domain.MaxDailyMinutes(req.WorkSchedule) == 0 {
		return nil, ErrInvalidScheduleConfiguration
	}
	if req.ServiceDurationMinutes > domain.MaxDailyMinutes(req.WorkSchedule) {
		return nil, ErrServiceExceedsCapacity
	}

	duration := time.Duration(req.ServiceDurationMinutes) * time.Minute

	tempBusy := make([]domain.Interval, 0, len(req.ExistingAppointments)+req.Sittings)
	tempBusy = append(tempBusy, req.ExistingAppointments...)

	dates := make([]time.Time, 0, req.Sittings)
	pointer := req.StartDate

	for i := 0; i < req.Sittings; i++ {
		slot, rejected, found := findNextSlot(pointer, req.ServiceDurationMinutes, req.WorkSchedule, loc, tempBusy, now)
		if !found {
			return nil, exhausted(i+1, rejected)
		}

		dates = append(dates, slot)
		tempBusy = append(tempBusy, domain.Interval{Start: slot, End: slot.Add(duration)})

		// Указатель уходит вперед на каденцию от найденного слота и НЕ
		// сбрасывается на полночь: поиск сам дойдёт до ближайшего рабочего окна
		pointer = advanceByFrequency(slot, req.Frequency, loc)
	}

	return &domain.ProjectAvailabilityResult{
		ProposedDates: dates,
		TotalCost:     pricePerSitting * float64(req.Sittings),
	}, nil
}

// findNextSlot ищет самый ранний свободный слот линейным перебором
// 30-минутной сетки в пределах годового горизонта.
//
// Ключевое требование корректности: день недели и время суток кандидата
// вычисляются в таймзоне провайдера, а не в сыром UTC-представлении
// инстанта — рабочие часы определены в локальном времени.
func findNextSlot(
	from time.Time,
	durationMinutes int,
	days []domain.WorkDay,
	loc *time.Location,
	busy []domain.Interval,
	now time.Time,
) (time.Time, []RejectedCandidate, bool) {
	pointer := from
	if pointer.Before(now) {
		pointer = now
	}
	pointer = roundUpToStep(pointer)

	horizon := pointer.AddDate(domain.SearchHorizonYears, 0, 0)
	duration := time.Duration(durationMinutes) * time.Minute
	step := domain.SlotStepMinutes * time.Minute

	var rejected []RejectedCandidate
	record := func(at time.Time, reason string) {
		if len(rejected) < domain.MaxSearchFailureExamples {
			rejected = append(rejected, RejectedCandidate{At: at, Reason: reason})
		}
	}

	// "Вне рабочих часов" пишем не чаще раза на локальные сутки, иначе
	// лимит примеров забьётся шагами сетки до открытия первого же дня
	// и до настоящих конфликтов диагностика не дойдёт
	lastOutsideDay := ""

	for !pointer.After(horizon) {
		local := pointer.In(loc)

		day, ok := domain.WorkDayFor(days, domain.FromTimeWeekday(local.Weekday()))
		if !ok {
			// Выходной или выключенный день в примеры диагностики не пишем,
			// иначе они забьются первым же воскресеньем
			pointer = pointer.Add(step)
			continue
		}

		start, end, ok := day.Window()
		if !ok {
			// Включенный день с нечитаемыми часами деградирует до
			// "нет доступности в этот день", поиск продолжается
			pointer = pointer.Add(step)
			continue
		}

		startMin := start.Minutes()
		endMin := end.Minutes()
		if endMin <= startMin {
			// Окно через полночь
			endMin += 24 * 60
		}

		localMin := local.Hour()*60 + local.Minute()
		if localMin < startMin || localMin > endMin-durationMinutes {
			if day := local.Format(domain.DateFormat); day != lastOutsideDay {
				record(pointer, reasonOutsideHours)
				lastOutsideDay = day
			}
			pointer = pointer.Add(step)
			continue
		}

		candidate := domain.Interval{Start: pointer, End: pointer.Add(duration)}
		if candidate.OverlapsAny(busy) {
			record(pointer, reasonConflict)
			pointer = pointer.Add(step)
			continue
		}

		return pointer, nil, true
	}

	return time.Time{}, rejected, false
}

// roundUpToStep поднимает инстант до ближайшей границы 30-минутной сетки,
// обнуляя секунды и доли секунды
func roundUpToStep(t time.Time) time.Time {
	step := domain.SlotStepMinutes * time.Minute
	truncated := t.Truncate(step)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(step)
}

// advanceByFrequency сдвигает указатель поиска от найденного слота
// согласно каденции проекта
func advanceByFrequency(slot time.Time, freq domain.Frequency, loc *time.Location) time.Time {
	// Календарная арифметика выполняется в таймзоне провайдера,
	// чтобы "+7 дней" переживало переводы часов как 7 локальных суток
	local := slot.In(loc)

	switch freq {
	case domain.FrequencyWeekly:
		return local.AddDate(0, 0, 7)
	case domain.FrequencyBiweekly:
		return local.AddDate(0, 0, 14)
	case domain.FrequencyMonthly:
		return addMonthClamped(local)
	default:
		// single и consecutive: следующий календарный день
		return local.AddDate(0, 0, 1)
	}
}

// addMonthClamped прибавляет один календарный месяц, прижимая число к
// последнему дню целевого месяца: 31 января + месяц = 28/29 февраля,
// а не перескок в март, который дала бы нормализация time.AddDate
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()

	// Нулевой день следующего за целевым месяца = последний день целевого
	lastDay := time.Date(year, month+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, month+1, day, t.Hour(), t.Minute(), 0, 0, t.Location())
}
