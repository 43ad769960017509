package attendance

import (
	"testing"
	"time"

	"class-attendance-bot/pkg/dateutil"
)

func TestDayStatus(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-24")
	records := []Record{
		rec("2025-12-10", "wed_1", StatusPresent),
		rec("2025-12-10", "wed_2", StatusPresent),
		rec("2025-12-10", "wed_3", StatusPresent),
		rec("2025-12-17", "wed_1", StatusAbsent),
		rec("2025-12-17", "wed_2", StatusAbsent),
		rec("2025-12-24", "wed_1", StatusPresent),
		rec("2025-12-24", "wed_2", StatusAbsent),
	}
	holidays := []Holiday{hol("2025-12-31")}

	cases := map[string]DayState{
		"2025-12-03": DayDisabled,
		"2025-12-10": DayFull,
		"2025-12-11": DayWeekend, // в четверг только пара без предмета
		"2025-12-14": DayWeekend,
		"2025-12-17": DayAbsent,
		"2025-12-24": DayPartial,
		"2025-12-31": DayHoliday,
		"2026-01-07": DayFuture,
	}
	for date, want := range cases {
		got := e.DayStatus(dateutil.MustParse(date), records, holidays, today)
		if got.State != want {
			t.Errorf("%s: expected %s, got %s", date, want, got.State)
		}
	}

	empty := e.DayStatus(dateutil.MustParse("2025-12-24"), nil, nil, today)
	if empty.State != DayEmpty || empty.Scheduled != 3 {
		t.Fatalf("expected empty day with 3 slots, got %+v", empty)
	}
}

func TestMonth(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	days := e.Month(2025, time.December, nil, []Holiday{hol("2025-12-03")}, dateutil.MustParse("2025-12-20"))
	if len(days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(days))
	}
	// праздник важнее даты до начала семестра
	if days[2].State != DayHoliday {
		t.Fatalf("expected holiday on 3rd, got %s", days[2].State)
	}
	if days[9].State != DayEmpty || days[16].State != DayEmpty {
		t.Fatalf("expected empty wednesdays, got %s and %s", days[9].State, days[16].State)
	}
	if days[23].State != DayFuture {
		t.Fatalf("expected future on 24th, got %s", days[23].State)
	}
}
