package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

var timeStringRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// TimeString wall-clock time of day in "HH:MM" format (leading zeros required).
// Carries no date and no timezone; interpretation against a concrete day and
// IANA zone is done by pkg/civiltime.
type TimeString string

// NewTimeString создает TimeString из time.Time (берется только время)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes конвертирует минуты от полуночи (0-1439) в TimeString.
// Точная обратная операция к Minutes.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m > 23*60+59 {
		return "", fmt.Errorf("%w: %d minutes is outside 00:00-23:59", ErrInvalidTimeString, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет формат HH:MM (часы 00-23, минуты 00-59)
func (ts TimeString) Validate() error {
	if !timeStringRe.MatchString(string(ts)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	h, _ := strconv.Atoi(string(ts)[:2])
	m, _ := strconv.Atoi(string(ts)[3:])
	if h > 23 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Minutes возвращает минуты от полуночи (0-1439)
func (ts TimeString) Minutes() (int, error) {
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	h, _ := strconv.Atoi(string(ts)[:2])
	m, _ := strconv.Atoi(string(ts)[3:])
	return h*60 + m, nil
}

// AddMinutes возвращает время через m минут.
// Ошибка, если результат выходит за пределы суток.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	cur, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(cur + m)
}

// IsBefore строгое сравнение "раньше".
// Для валидных значений фиксированной ширины лексикографическое сравнение корректно.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter строгое сравнение "позже"
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

func (ts TimeString) String() string {
	return string(ts)
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres TIME колонки приходят как time.Time или строка "HH:MM:SS"
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case string:
		if len(v) > 5 {
			v = v[:5]
		}
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		return ts.Scan(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}
