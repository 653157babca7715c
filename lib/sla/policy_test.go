package sla

import (
	"testing"
	"time"

	"jd-portal-backend/lib/workcalendar"
	"jd-portal-backend/models"

	"github.com/stretchr/testify/require"
)

func TestMinSelectableDueDate(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run(`normal: SLA 2 дня с понедельника даёт четверг`, func(t *testing.T) {
		// пн + 2 рабочих дня = ср, +1 календарный день = чт
		got, err := MinSelectableDueDate(monday, 2, models.JobPriorityNormal, nil)
		require.Nil(t, err)
		require.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run(`urgent: всегда завтра по календарю`, func(t *testing.T) {
		holidays := workcalendar.NewHolidaySet([]time.Time{
			time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		})
		got, err := MinSelectableDueDate(monday, 10, models.JobPriorityUrgent, holidays)
		require.Nil(t, err)
		require.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run(`отрицательный SLA — ошибка конфигурации`, func(t *testing.T) {
		_, err := MinSelectableDueDate(monday, -1, models.JobPriorityNormal, nil)
		require.NotNil(t, err)
		require.True(t, models.IsConfigurationError(err))
	})
}

func TestStartDate(t *testing.T) {
	t.Run(`обратный расчет от срока`, func(t *testing.T) {
		due := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC) // четверг
		got, err := StartDate(due, 2, nil)
		require.Nil(t, err)
		require.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), got)
	})
}

func TestValidateDueDate(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run(`раньше минимального — ошибка валидации`, func(t *testing.T) {
		err := ValidateDueDate(monday.AddDate(0, 0, 2), monday, 2, models.JobPriorityNormal, nil)
		require.NotNil(t, err)
		require.True(t, models.IsValidationError(err))
	})

	t.Run(`позже минимального — допустимо`, func(t *testing.T) {
		err := ValidateDueDate(monday.AddDate(0, 0, 10), monday, 2, models.JobPriorityNormal, nil)
		require.Nil(t, err)
	})
}
