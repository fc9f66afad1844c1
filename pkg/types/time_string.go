package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат сложения выходит за пределы суток
	ErrTimeOverflow = errors.New("time overflows the day")
)

// TimeString время суток в формате "HH:MM" без привязки к дате
// Хранится как количество минут от полуночи, нулевое значение означает "не задано"
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromHour создает TimeString для целого часа (0-24)
func NewTimeStringFromHour(hour int) (TimeString, error) {
	if hour < 0 || hour > 24 {
		return TimeString{}, fmt.Errorf("%w: hour %d out of range", ErrInvalidTimeString, hour)
	}
	return TimeString{minutes: hour * 60, valid: true}, nil
}

// NewTimeStringFromString парсит строку "HH:MM" (допускается "24:00" как конец суток)
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" {
		return TimeString{minutes: 24 * 60, valid: true}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// MustTimeString парсит строку и паникует при ошибке. Только для тестов и констант.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время находится в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes > 24*60 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidTimeString, t.minutes)
	}
	return nil
}

// Hour возвращает час
func (t TimeString) Hour() int {
	return t.minutes / 60
}

// Minute возвращает минуты внутри часа
func (t TimeString) Minute() int {
	return t.minutes % 60
}

// IsWholeHour возвращает true, если время выровнено по началу часа
func (t TimeString) IsWholeHour() bool {
	return t.valid && t.minutes%60 == 0
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes прибавляет минуты; результат не может выходить за пределы 00:00-24:00
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total := t.minutes + m
	if total < 0 || total > 24*60 {
		return TimeString{}, fmt.Errorf("%w: %s + %d min", ErrTimeOverflow, t, m)
	}
	return TimeString{minutes: total, valid: true}, nil
}

// AddHours прибавляет целые часы
func (t TimeString) AddHours(h int) (TimeString, error) {
	return t.AddMinutes(h * 60)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true, если значения совпадают
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// String возвращает время в формате "HH:MM"
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalText реализует encoding.TextMarshaler
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeString) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = TimeString{}
		return nil
	}
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer (колонка TIME)
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	if t.minutes == 24*60 {
		return "24:00:00", nil
	}
	return t.String() + ":00", nil
}

// Scan реализует sql.Scanner
// lib/pq отдает TIME как time.Time (дата 0000-01-01), текстовые драйверы - как строку
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		// "24:00:00" приходит из lib/pq как 0000-01-02 00:00:00
		if v.Year() == 0 && v.Day() == 2 {
			*t = TimeString{minutes: 24 * 60, valid: true}
			return nil
		}
		*t = NewTimeString(v)
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
