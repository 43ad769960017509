package attendance

import (
	"time"

	"class-attendance-bot/pkg/dateutil"
)

// DayState - состояние дня в календаре
type DayState string

const (
	DayHoliday  DayState = "holiday"
	DayDisabled DayState = "disabled" // до начала семестра
	DayWeekend  DayState = "weekend"  // воскресенье или нет пар
	DayFuture   DayState = "future"
	DayEmpty    DayState = "empty" // ни одной отметки
	DayFull     DayState = "full"
	DayAbsent   DayState = "absent"
	DayPartial  DayState = "partial"
)

// Day - день календаря с числом пар и отметок
type Day struct {
	Date      dateutil.Date
	State     DayState
	Scheduled int
	Present   int
	Absent    int
}

type calendarIndex struct {
	off   map[dateutil.Date]struct{}
	byDay map[dateutil.Date][]Record
}

func newCalendarIndex(records []Record, holidays []Holiday) calendarIndex {
	idx := calendarIndex{
		off:   holidaySet(holidays),
		byDay: make(map[dateutil.Date][]Record),
	}
	for _, r := range Latest(records) {
		idx.byDay[r.Date] = append(idx.byDay[r.Date], r)
	}
	return idx
}

// DayStatus классифицирует один день
func (e *Engine) DayStatus(date dateutil.Date, records []Record, holidays []Holiday, today dateutil.Date) Day {
	return e.classify(date, newCalendarIndex(records, holidays), today)
}

// Month возвращает классификацию всех дней месяца
func (e *Engine) Month(year int, month time.Month, records []Record, holidays []Holiday, today dateutil.Date) []Day {
	idx := newCalendarIndex(records, holidays)
	n := dateutil.DaysInMonth(year, month)
	days := make([]Day, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, e.classify(dateutil.New(year, month, i), idx, today))
	}
	return days
}

func (e *Engine) classify(date dateutil.Date, idx calendarIndex, today dateutil.Date) Day {
	day := Day{Date: date, Scheduled: len(e.scheduled(date.Weekday()))}

	for _, r := range idx.byDay[date] {
		switch r.Status {
		case StatusPresent:
			day.Present++
		case StatusAbsent:
			day.Absent++
		}
	}

	switch _, holiday := idx.off[date]; {
	case holiday:
		day.State = DayHoliday
	case date.Before(e.termStart):
		day.State = DayDisabled
	case date.Weekday() == time.Sunday || day.Scheduled == 0:
		day.State = DayWeekend
	case date.After(today):
		day.State = DayFuture
	case day.Present == 0 && day.Absent == 0:
		day.State = DayEmpty
	case day.Present == day.Scheduled && day.Absent == 0:
		day.State = DayFull
	case day.Present == 0:
		day.State = DayAbsent
	default:
		day.State = DayPartial
	}

	return day
}
