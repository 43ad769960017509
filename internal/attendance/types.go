// Package attendance считает посещаемость по недельному расписанию:
// взвешенные итоги по предметам, запас пропусков и дни без отметок.
//
// Все функции чистые: "сегодня" передает вызывающий, к часам, хранилищу
// и общему состоянию пакет не обращается.
package attendance

import (
	"time"

	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/dateutil"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
)

// Valid проверяет, что статус допустим
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record - отметка о посещении одной пары в конкретный день
type Record struct {
	ID      string
	OwnerID uint
	SlotID  string
	Date    dateutil.Date
	Status  Status
}

// Holiday - день, в который занятия не учитываются
type Holiday struct {
	ID      string
	OwnerID uint
	Date    dateutil.Date
}

// Totals - взвешенные итоги: занятий всего и посещено
type Totals struct {
	Total    int
	Attended int
}

// Aggregation - результат Aggregate
type Aggregation struct {
	PerSubject    map[string]Totals
	GrandTotal    int
	GrandAttended int
}

// Engine связывает расписание и дату начала семестра
type Engine struct {
	catalog   *timetable.Catalog
	termStart dateutil.Date
}

func NewEngine(catalog *timetable.Catalog, termStart dateutil.Date) *Engine {
	return &Engine{catalog: catalog, termStart: termStart}
}

func (e *Engine) Catalog() *timetable.Catalog { return e.catalog }

func (e *Engine) TermStart() dateutil.Date { return e.termStart }

// MarkKey - ключ действующей отметки
type MarkKey struct {
	Date   dateutil.Date
	SlotID string
}

// Marks - действующие отметки, по одной на пару (дата, слот)
type Marks map[MarkKey]Record

// Latest сводит отметки к одной на пару (дата, слот).
// Проход идет в порядке входного среза, побеждает последняя запись
func Latest(records []Record) Marks {
	marks := make(Marks, len(records))
	for _, r := range records {
		marks[MarkKey{Date: r.Date, SlotID: r.SlotID}] = r
	}
	return marks
}

// Get возвращает действующую отметку для слота в день date
func (m Marks) Get(date dateutil.Date, slotID string) (Record, bool) {
	r, ok := m[MarkKey{Date: date, SlotID: slotID}]
	return r, ok
}

// scheduled - пары дня недели с известным предметом
func (e *Engine) scheduled(w time.Weekday) []timetable.Slot {
	all := e.catalog.SlotsFor(w)
	out := make([]timetable.Slot, 0, len(all))
	for _, slot := range all {
		if _, ok := e.catalog.Subject(slot.SubjectID); ok {
			out = append(out, slot)
		}
	}
	return out
}

func holidaySet(holidays []Holiday) map[dateutil.Date]struct{} {
	set := make(map[dateutil.Date]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Date] = struct{}{}
	}
	return set
}
