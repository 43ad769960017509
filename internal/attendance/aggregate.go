package attendance

import (
	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/dateutil"
)

// Aggregate считает взвешенные итоги с начала семестра.
//
// Прошедшие дни (до today) учитываются по расписанию: каждая пара вне
// выходных прибавляет вес предмета к total, посещенная - и к attended.
// Для today и позже учитываются только пары, по которым есть отметка.
// Неизвестные слоты и предметы пропускаются.
func (e *Engine) Aggregate(records []Record, holidays []Holiday, today dateutil.Date) Aggregation {
	marks := Latest(records)
	off := holidaySet(holidays)

	agg := Aggregation{PerSubject: make(map[string]Totals)}
	for _, s := range e.catalog.Subjects() {
		agg.PerSubject[s.ID] = Totals{}
	}

	dateutil.Range(e.termStart, today, func(d dateutil.Date) bool {
		if _, skip := off[d]; skip {
			return true
		}
		for _, slot := range e.catalog.SlotsFor(d.Weekday()) {
			subject, ok := e.catalog.Subject(slot.SubjectID)
			if !ok {
				continue
			}
			r, marked := marks.Get(d, slot.ID)
			agg.add(subject, marked && r.Status == StatusPresent)
		}
		return true
	})

	// Сегодня и будущее: только отмеченные пары, ABSENT тоже идет в total
	for _, r := range marks {
		if r.Date.Before(today) || r.Date.Before(e.termStart) {
			continue
		}
		if _, skip := off[r.Date]; skip {
			continue
		}
		slot, ok := e.catalog.Slot(r.SlotID)
		if !ok {
			continue
		}
		subject, ok := e.catalog.Subject(slot.SubjectID)
		if !ok {
			continue
		}
		agg.add(subject, r.Status == StatusPresent)
	}

	return agg
}

func (a *Aggregation) add(subject timetable.Subject, attended bool) {
	t := a.PerSubject[subject.ID]
	t.Total += subject.Weight
	a.GrandTotal += subject.Weight
	if attended {
		t.Attended += subject.Weight
		a.GrandAttended += subject.Weight
	}
	a.PerSubject[subject.ID] = t
}
