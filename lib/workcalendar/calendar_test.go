package workcalendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddWorkingDays(t *testing.T) {
	holidays := NewHolidaySet([]time.Time{
		date(2026, time.January, 1),
		date(2026, time.January, 7),
	})

	t.Run(`ноль дней возвращает стартовую дату`, func(t *testing.T) {
		start := date(2026, time.March, 2) // понедельник
		require.Equal(t, start, AddWorkingDays(start, 0, holidays))
		// стартовая дата не проверяется на рабочий день
		saturday := date(2026, time.March, 7)
		require.Equal(t, saturday, AddWorkingDays(saturday, 0, holidays))
	})

	t.Run(`перешагивает выходные`, func(t *testing.T) {
		friday := date(2026, time.March, 6)
		require.Equal(t, date(2026, time.March, 9), AddWorkingDays(friday, 1, nil))
	})

	t.Run(`перешагивает праздники`, func(t *testing.T) {
		// 1 января 2026 — четверг и праздник, 2 января — пятница
		require.Equal(t, date(2026, time.January, 2), AddWorkingDays(date(2025, time.December, 31), 1, holidays))
		// 7 января — среда и праздник
		require.Equal(t, date(2026, time.January, 8), AddWorkingDays(date(2026, time.January, 6), 1, holidays))
	})

	t.Run(`результат никогда не выходной и не праздник`, func(t *testing.T) {
		start := date(2025, time.December, 29)
		for n := 1; n <= 30; n++ {
			got := AddWorkingDays(start, n, holidays)
			require.True(t, IsWorkingDay(got, holidays), "n=%v даёт нерабочий день %v", n, got)
		}
	})

	t.Run(`нормализует время и зону`, func(t *testing.T) {
		msk := time.FixedZone("MSK", 3*60*60)
		start := time.Date(2026, time.March, 2, 23, 59, 0, 0, msk)
		require.Equal(t, date(2026, time.March, 3), AddWorkingDays(start, 1, holidays))
	})
}

func TestSubtractWorkingDays(t *testing.T) {
	holidays := NewHolidaySet([]time.Time{
		date(2026, time.January, 1),
		date(2026, time.January, 7),
	})

	t.Run(`зеркален прибавлению`, func(t *testing.T) {
		require.Equal(t, date(2026, time.March, 6), SubtractWorkingDays(date(2026, time.March, 9), 1, nil))
	})

	t.Run(`round-trip на рабочих днях`, func(t *testing.T) {
		for day := 0; day < 10; day++ {
			start := date(2025, time.December, 22).AddDate(0, 0, day)
			if !IsWorkingDay(start, holidays) {
				continue
			}
			for n := 0; n <= 25; n++ {
				due := AddWorkingDays(start, n, holidays)
				require.Equal(t, start, SubtractWorkingDays(due, n, holidays),
					"round-trip нарушен: start=%v n=%v", start, n)
			}
		}
	})
}
