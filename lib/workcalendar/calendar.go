package workcalendar

import "time"

// Чистая арифметика рабочих дней: рабочий день — любой, кроме субботы,
// воскресенья и даты из производственного календаря. Функции детерминированы
// и не проверяют, является ли сама стартовая дата рабочей — считаются только
// дни строго после (до) нее.

// HolidaySet — множество нерабочих дат, нормализованных до календарного дня
type HolidaySet map[time.Time]struct{}

func NewHolidaySet(dates []time.Time) HolidaySet {
	result := make(HolidaySet, len(dates))
	for _, d := range dates {
		result[Normalize(d)] = struct{}{}
	}
	return result
}

// Normalize отбрасывает время и часовой пояс, оставляя календарную дату
func Normalize(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (h HolidaySet) Contains(d time.Time) bool {
	_, ok := h[Normalize(d)]
	return ok
}

func IsWorkingDay(d time.Time, holidays HolidaySet) bool {
	weekday := d.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}
	return !holidays.Contains(d)
}

// AddWorkingDays возвращает дату, на которую приходится n-й рабочий день
// после start. n = 0 возвращает start без изменений.
func AddWorkingDays(start time.Time, n int, holidays HolidaySet) time.Time {
	current := Normalize(start)
	counted := 0
	for counted < n {
		current = current.AddDate(0, 0, 1)
		if IsWorkingDay(current, holidays) {
			counted++
		}
	}
	return current
}

// SubtractWorkingDays — зеркальный обход назад; для рабочего дня d
// выполняется SubtractWorkingDays(AddWorkingDays(d, n, H), n, H) == d.
func SubtractWorkingDays(end time.Time, n int, holidays HolidaySet) time.Time {
	current := Normalize(end)
	counted := 0
	for counted < n {
		current = current.AddDate(0, 0, -1)
		if IsWorkingDay(current, holidays) {
			counted++
		}
	}
	return current
}
