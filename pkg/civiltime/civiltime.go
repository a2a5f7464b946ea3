// Package civiltime содержит утилиты для работы с "гражданским" временем:
// пары дата/время без смещения, интерпретируемые в явно заданной IANA зоне.
// Все преобразования wall-clock <-> абсолютный момент в сервисе проходят
// только через этот пакет, чтобы исключить влияние локали хоста.
package civiltime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// DateFormat формат гражданской даты
	DateFormat = "2006-01-02"
	// TimeFormat формат гражданского времени
	TimeFormat = "15:04"
)

var (
	// ErrInvalidDateFormat возвращается при некорректной строке даты
	ErrInvalidDateFormat = errors.New("civiltime: invalid date, expected YYYY-MM-DD")

	// ErrInvalidTimeFormat возвращается при некорректной строке времени
	ErrInvalidTimeFormat = errors.New("civiltime: invalid time, expected HH:MM")
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Date конвертирует строку "YYYY-MM-DD" в полночь гражданского времени в зоне loc.
// Ошибка, если строка не соответствует формату или дата не существует
// (например "2025-13-01" или "2025-02-30").
func Date(s string, loc *time.Location) (time.Time, error) {
	return DateTime(s, "00:00", loc)
}

// DateTime конвертирует пару "YYYY-MM-DD" + "HH:MM" в абсолютный момент в зоне loc.
func DateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	if !dateRe.MatchString(dateStr) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, dateStr)
	}
	if !timeRe.MatchString(timeStr) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeStr)
	}

	year, _ := strconv.Atoi(dateStr[:4])
	month, _ := strconv.Atoi(dateStr[5:7])
	day, _ := strconv.Atoi(dateStr[8:10])
	hour, _ := strconv.Atoi(timeStr[:2])
	minute, _ := strconv.Atoi(timeStr[3:])

	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeStr)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// time.Date нормализует несуществующие даты (2025-02-30 -> 2025-03-02),
	// поэтому проверяем, что компоненты не изменились
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a real date", ErrInvalidDateFormat, dateStr)
	}

	return t, nil
}

// FormatDate проецирует абсолютный момент на гражданскую дату в зоне loc
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateFormat)
}

// FormatTime проецирует абсолютный момент на гражданское время дня в зоне loc
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeFormat)
}

// Overlaps проверяет пересечение полуоткрытых интервалов [s1,e1) и [s2,e2),
// где второй интервал расширен на buffer с обеих сторон.
// С buffer > 0 используется для поиска бронирований "слишком близко",
// а не только буквальных пересечений.
func Overlaps(s1, e1, s2, e2 time.Time, buffer time.Duration) bool {
	s2 = s2.Add(-buffer)
	e2 = e2.Add(buffer)
	return s1.Before(e2) && s2.Before(e1)
}

// StartOfDay возвращает гражданскую полночь дня момента t в зоне loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfWeek возвращает гражданскую полночь понедельника недели момента t
// (ISO-недели: понедельник = день 0)
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// SameDay проверяет, что два момента относятся к одному гражданскому дню в зоне loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsPastDay проверяет, что гражданский день момента t уже прошел
// относительно now. Сегодняшний день прошлым не считается.
func IsPastDay(t, now time.Time, loc *time.Location) bool {
	return StartOfDay(t, loc).Before(StartOfDay(now, loc))
}
