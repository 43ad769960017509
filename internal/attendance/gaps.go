package attendance

import (
	"sort"
	"time"

	"class-attendance-bot/pkg/dateutil"
)

// FindMissingDates возвращает прошедшие учебные дни без единой отметки,
// от самых свежих к старым (YYYY-MM-DD).
//
// День считается заполненным, если есть хотя бы одна запись на эту дату,
// независимо от слота и статуса. Частично отмеченный день сюда не попадает,
// хотя Aggregate считает неотмеченные пары такого дня пропусками.
func (e *Engine) FindMissingDates(records []Record, holidays []Holiday, today dateutil.Date) []string {
	off := holidaySet(holidays)

	recorded := make(map[dateutil.Date]struct{}, len(records))
	for _, r := range records {
		recorded[r.Date] = struct{}{}
	}

	missing := []string{}
	dateutil.Range(e.termStart, today, func(d dateutil.Date) bool {
		if _, skip := off[d]; skip {
			return true
		}
		if d.Weekday() == time.Sunday || len(e.scheduled(d.Weekday())) == 0 {
			return true
		}
		if _, ok := recorded[d]; !ok {
			missing = append(missing, d.String())
		}
		return true
	})

	sort.Sort(sort.Reverse(sort.StringSlice(missing)))
	return missing
}
