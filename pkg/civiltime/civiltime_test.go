package civiltime

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

// Round-trip create -> format стабилен в DST и не-DST зонах,
// в том числе при многократном повторении (без дрейфа)
func TestDateTime_RoundTrip(t *testing.T) {
	zones := []string{
		"Australia/Brisbane", // без перехода на летнее время
		"Australia/Sydney",   // с переходом
		"UTC",
	}
	pairs := []struct{ date, tm string }{
		{"2025-11-20", "10:00"},
		{"2025-01-01", "00:00"},
		{"2025-10-05", "03:30"}, // день перехода на летнее время в Сиднее
		{"2025-04-06", "12:00"}, // день перехода на зимнее
		{"2024-02-29", "23:59"}, // високосный год
	}

	for _, zone := range zones {
		loc := loadLoc(t, zone)
		for _, p := range pairs {
			date, tm := p.date, p.tm
			for i := 0; i < 5; i++ {
				instant, err := DateTime(date, tm, loc)
				require.NoError(t, err, "%s %s in %s", date, tm, zone)
				date = FormatDate(instant, loc)
				tm = FormatTime(instant, loc)
			}
			assert.Equal(t, p.date, date, "date drifted in %s", zone)
			assert.Equal(t, p.tm, tm, "time drifted in %s", zone)
		}
	}
}

func TestDateTime_RejectsMalformedInput(t *testing.T) {
	loc := loadLoc(t, "Australia/Brisbane")

	badDates := []string{"2025-13-01", "2025-02-30", "2025-00-10", "20251120", "2025-1-5", "abcd-ef-gh", ""}
	for _, d := range badDates {
		_, err := DateTime(d, "10:00", loc)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "date %q", d)
	}

	badTimes := []string{"24:00", "10:60", "9:00", "10-00", "10:0", ""}
	for _, tm := range badTimes {
		_, err := DateTime("2025-11-20", tm, loc)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "time %q", tm)
	}
}

func TestDate_MidnightInZone(t *testing.T) {
	loc := loadLoc(t, "Australia/Brisbane")

	instant, err := Date("2025-11-20", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-20", FormatDate(instant, loc))
	assert.Equal(t, "00:00", FormatTime(instant, loc))

	// Тот же момент в UTC — предыдущий день (Брисбен = UTC+10)
	assert.Equal(t, "2025-11-19", FormatDate(instant, time.UTC))
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	hhmm := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		buffer         time.Duration
		want           bool
	}{
		{"literal overlap", hhmm(0, 0), hhmm(1, 0), hhmm(0, 30), hhmm(1, 30), 0, true},
		{"touching intervals do not overlap", hhmm(0, 0), hhmm(1, 0), hhmm(1, 0), hhmm(2, 0), 0, false},
		{"disjoint", hhmm(0, 0), hhmm(1, 0), hhmm(2, 0), hhmm(3, 0), 0, false},
		{"close enough with buffer", hhmm(0, 0), hhmm(1, 0), hhmm(1, 5), hhmm(2, 5), 15 * time.Minute, true},
		{"far enough with buffer", hhmm(0, 0), hhmm(1, 0), hhmm(1, 15), hhmm(2, 15), 15 * time.Minute, false},
		{"contained", hhmm(0, 0), hhmm(3, 0), hhmm(1, 0), hhmm(2, 0), 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2, tc.buffer))
		})
	}
}

// Пересечение симметрично относительно порядка интервалов
func TestOverlaps_Symmetric(t *testing.T) {
	base := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	buffers := []time.Duration{0, 5 * time.Minute, 15 * time.Minute, time.Hour}

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			s1 := base.Add(time.Duration(i) * 20 * time.Minute)
			e1 := s1.Add(45 * time.Minute)
			s2 := base.Add(time.Duration(j) * 35 * time.Minute)
			e2 := s2.Add(30 * time.Minute)

			for _, buf := range buffers {
				assert.Equal(t,
					Overlaps(s1, e1, s2, e2, buf),
					Overlaps(s2, e2, s1, e1, buf),
					fmt.Sprintf("i=%d j=%d buf=%s", i, j, buf))
			}
		}
	}
}

func TestStartOfWeek_MondayBased(t *testing.T) {
	loc := loadLoc(t, "Australia/Brisbane")

	// 2025-11-20 — четверг; понедельник той недели — 2025-11-17
	for _, day := range []string{"2025-11-17", "2025-11-18", "2025-11-20", "2025-11-22", "2025-11-23"} {
		instant, err := DateTime(day, "15:30", loc)
		require.NoError(t, err)

		week := StartOfWeek(instant, loc)
		assert.Equal(t, "2025-11-17", FormatDate(week, loc), "for %s", day)
		assert.Equal(t, "00:00", FormatTime(week, loc))
		assert.Equal(t, time.Monday, week.In(loc).Weekday())
	}

	// Понедельник относится к своей же неделе
	monday, err := Date("2025-11-17", loc)
	require.NoError(t, err)
	assert.Equal(t, monday, StartOfWeek(monday, loc))
}

func TestIsPastDay(t *testing.T) {
	loc := loadLoc(t, "Australia/Brisbane")
	now, err := DateTime("2025-11-20", "15:00", loc)
	require.NoError(t, err)

	yesterday, _ := DateTime("2025-11-19", "23:59", loc)
	today, _ := DateTime("2025-11-20", "00:00", loc)
	tomorrow, _ := DateTime("2025-11-21", "00:00", loc)

	assert.True(t, IsPastDay(yesterday, now, loc))
	// Сегодня прошлым не считается, даже раннее утро
	assert.False(t, IsPastDay(today, now, loc))
	assert.False(t, IsPastDay(tomorrow, now, loc))
}

func TestSameDay_UsesZone(t *testing.T) {
	brisbane := loadLoc(t, "Australia/Brisbane")

	// 13:50 и 14:10 UTC: в UTC один день, в Брисбене (+10) — 23:50 и 00:10 разных дней
	a := time.Date(2025, 11, 20, 13, 50, 0, 0, time.UTC)
	b := time.Date(2025, 11, 20, 14, 10, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(a, b, brisbane))
}
