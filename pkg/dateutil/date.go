package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOLayout - формат даты, в котором даты хранятся и сравниваются
const ISOLayout = "2006-01-02"

// Date - календарная дата без времени и часового пояса
type Date struct {
	year  int
	month time.Month
	day   int
}

// ValidationError - ошибка разбора даты
type ValidationError struct {
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.Reason)
}

// New создает дату, нормализуя переполнение (32 января -> 1 февраля)
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime берет календарную дату из времени в его собственном часовом поясе
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today возвращает сегодняшнюю дату для момента now в поясе loc
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(now.In(loc))
}

// Parse разбирает строку формата YYYY-MM-DD
func Parse(value string) (Date, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, &ValidationError{Value: value, Reason: "expected YYYY-MM-DD"}
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if !isDigits(p) {
			return Date{}, &ValidationError{Value: value, Reason: "non-numeric component"}
		}
		nums[i], _ = strconv.Atoi(p)
	}

	return fromParts(value, nums[0], nums[1], nums[2])
}

// MustParse - Parse, паникующий на ошибке. Только для констант и тестов
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseUser разбирает дату, введенную пользователем:
// dd.mm.yyyy, dd-mm-yyyy, dd.mm (год берется из ref) или YYYY-MM-DD
func ParseUser(value string, ref Date) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, &ValidationError{Value: value, Reason: "empty date"}
	}

	if len(value) == 10 && value[4] == '-' {
		return Parse(value)
	}

	sep := "."
	if strings.Contains(value, "-") {
		sep = "-"
	}
	parts := strings.Split(value, sep)

	var day, month, year int
	var err error
	switch len(parts) {
	case 2:
		year = ref.year
	case 3:
		if !isDigits(parts[2]) {
			return Date{}, &ValidationError{Value: value, Reason: "bad year"}
		}
		if year, err = strconv.Atoi(parts[2]); err != nil {
			return Date{}, &ValidationError{Value: value, Reason: "bad year"}
		}
	default:
		return Date{}, &ValidationError{Value: value, Reason: "expected dd.mm.yyyy"}
	}

	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return Date{}, &ValidationError{Value: value, Reason: "non-numeric component"}
	}
	if day, err = strconv.Atoi(parts[0]); err != nil {
		return Date{}, &ValidationError{Value: value, Reason: "bad day"}
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return Date{}, &ValidationError{Value: value, Reason: "bad month"}
	}

	return fromParts(value, year, month, day)
}

func fromParts(value string, year, month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, &ValidationError{Value: value, Reason: "year out of range"}
	}
	if month < 1 || month > 12 {
		return Date{}, &ValidationError{Value: value, Reason: "month out of range"}
	}
	if day < 1 || day > 31 {
		return Date{}, &ValidationError{Value: value, Reason: "day out of range"}
	}

	// 2025-02-31 нормализуется в март, такое отклоняем
	d := New(year, time.Month(month), day)
	if d.year != year || int(d.month) != month || d.day != day {
		return Date{}, &ValidationError{Value: value, Reason: "day does not exist in month"}
	}
	return d, nil
}

func (d Date) Year() int { return d.year }

func (d Date) Month() time.Month { return d.month }

func (d Date) Day() int { return d.day }

// Weekday - день недели (0 = воскресенье)
func (d Date) Weekday() time.Weekday { return d.midnight().Weekday() }

// String возвращает YYYY-MM-DD с ведущими нулями
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Display - формат для сообщений пользователю
func (d Date) Display() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.day, int(d.month), d.year)
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) Date {
	return New(d.year, d.month, d.day+n)
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// Range вызывает fn для каждой даты из [from, to). Итерация прекращается, если fn вернет false
func Range(from, to Date, fn func(Date) bool) {
	for d := from; d.Before(to); d = d.AddDays(1) {
		if !fn(d) {
			return
		}
	}
}

// DaysInMonth - количество дней в месяце
func DaysInMonth(year int, month time.Month) int {
	return New(year, month+1, 0).day
}

var dayNames = [...]string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// DayName возвращает название дня недели
func DayName(w time.Weekday) string {
	if w < time.Sunday || w > time.Saturday {
		return "Неизвестно"
	}
	return dayNames[w]
}

// полночь UTC: арифметика не зависит от переходов на летнее время
func (d Date) midnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// isDigits: только ASCII-цифры, strconv.Atoi пропускает знак
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
