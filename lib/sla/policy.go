package sla

import (
	"time"

	"jd-portal-backend/lib/workcalendar"
	"jd-portal-backend/models"
)

// Политика сроков: по типу задания (SLA в рабочих днях) и приоритету
// вычисляет окно выбора срока и обратную дату старта работ.

// EarliestDue — срок по SLA: n рабочих дней от сегодня
func EarliestDue(today time.Time, slaWorkingDays int, holidays workcalendar.HolidaySet) (time.Time, error) {
	if slaWorkingDays < 0 {
		return time.Time{}, models.NewConfigurationError("SLA типа задания отрицательный: %v", slaWorkingDays)
	}
	return workcalendar.AddWorkingDays(today, slaWorkingDays, holidays), nil
}

// MinSelectableDueDate — минимально допустимый к выбору срок.
// Normal: SLA — это нижняя граница, выбрать можно не раньше чем через
// календарный день после срока по SLA. Urgent: расчет по рабочим дням
// обходится, минимальный срок — завтра по календарю.
func MinSelectableDueDate(today time.Time, slaWorkingDays int, priority models.JobPriority, holidays workcalendar.HolidaySet) (time.Time, error) {
	if priority == models.JobPriorityUrgent {
		return workcalendar.Normalize(today).AddDate(0, 0, 1), nil
	}
	earliest, err := EarliestDue(today, slaWorkingDays, holidays)
	if err != nil {
		return time.Time{}, err
	}
	return earliest.AddDate(0, 0, 1), nil
}

// StartDate — обратный расчет даты старта от выбранного срока.
// Справочная величина, к сегодняшней дате не привязывается.
func StartDate(dueDate time.Time, slaWorkingDays int, holidays workcalendar.HolidaySet) (time.Time, error) {
	if slaWorkingDays < 0 {
		return time.Time{}, models.NewConfigurationError("SLA типа задания отрицательный: %v", slaWorkingDays)
	}
	return workcalendar.SubtractWorkingDays(dueDate, slaWorkingDays, holidays), nil
}

// ValidateDueDate проверяет выбранный пользователем срок против минимального
func ValidateDueDate(chosen, today time.Time, slaWorkingDays int, priority models.JobPriority, holidays workcalendar.HolidaySet) error {
	minDate, err := MinSelectableDueDate(today, slaWorkingDays, priority, holidays)
	if err != nil {
		return err
	}
	if workcalendar.Normalize(chosen).Before(minDate) {
		return models.NewValidationError("срок не может быть раньше %v", minDate.Format("2006-01-02"))
	}
	return nil
}
