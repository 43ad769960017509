package attendance

import (
	"reflect"
	"testing"
	"time"

	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/dateutil"
)

var termStart = dateutil.MustParse("2025-12-10") // среда

// twoTheoryCatalog - по две теоретические пары с понедельника по субботу
func twoTheoryCatalog(t *testing.T) *timetable.Catalog {
	t.Helper()
	var slots []timetable.Slot
	for w := time.Monday; w <= time.Saturday; w++ {
		slots = append(slots,
			timetable.Slot{ID: w.String()[:3] + "_1", Weekday: w, SubjectID: "MATH", Start: "09:00", End: "10:00"},
			timetable.Slot{ID: w.String()[:3] + "_2", Weekday: w, SubjectID: "PHYS", Start: "10:00", End: "11:00"},
		)
	}
	c, err := timetable.NewCatalog([]timetable.Subject{
		{ID: "MATH", Name: "Math", Weight: 1},
		{ID: "PHYS", Name: "Physics", Weight: 1},
		{ID: "IDLE", Name: "Never scheduled", Weight: 1},
	}, slots)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func labCatalog(t *testing.T) *timetable.Catalog {
	t.Helper()
	c, err := timetable.NewCatalog([]timetable.Subject{
		{ID: "TH", Name: "Theory", Weight: 1},
		{ID: "LAB", Name: "Lab", Type: timetable.SubjectLab, Weight: 3},
	}, []timetable.Slot{
		{ID: "wed_1", Weekday: time.Wednesday, SubjectID: "TH", Start: "09:00", End: "10:00"},
		{ID: "wed_2", Weekday: time.Wednesday, SubjectID: "LAB", Start: "10:00", End: "13:00"},
		{ID: "wed_3", Weekday: time.Wednesday, SubjectID: "TH", Start: "14:00", End: "15:00"},
		{ID: "thu_1", Weekday: time.Thursday, SubjectID: "GHOST", Start: "09:00", End: "10:00"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func rec(date, slot string, status Status) Record {
	return Record{SlotID: slot, Date: dateutil.MustParse(date), Status: status}
}

func hol(date string) Holiday {
	return Holiday{Date: dateutil.MustParse(date)}
}

// все пары с 10.12 по 15.12 (без воскресенья)
func fullWeekRecords(status func(i int) Status) []Record {
	var out []Record
	i := 0
	for _, d := range []string{"2025-12-10", "2025-12-11", "2025-12-12", "2025-12-13", "2025-12-15"} {
		w := dateutil.MustParse(d).Weekday().String()[:3]
		for _, n := range []string{"_1", "_2"} {
			out = append(out, rec(d, w+n, status(i)))
			i++
		}
	}
	return out
}

func checkConservation(t *testing.T, agg Aggregation) {
	t.Helper()
	var total, attended int
	for _, s := range agg.PerSubject {
		total += s.Total
		attended += s.Attended
	}
	if total != agg.GrandTotal || attended != agg.GrandAttended {
		t.Fatalf("weights not conserved: subjects %d/%d, grand %d/%d", attended, total, agg.GrandAttended, agg.GrandTotal)
	}
}

func TestBunkMarginAllAttended(t *testing.T) {
	e := NewEngine(twoTheoryCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-16")

	records := fullWeekRecords(func(int) Status { return StatusPresent })
	agg := e.Aggregate(records, nil, today)
	checkConservation(t, agg)
	if agg.GrandTotal != 10 || agg.GrandAttended != 10 {
		t.Fatalf("expected 10/10, got %d/%d", agg.GrandAttended, agg.GrandTotal)
	}

	report := e.Format(agg)
	if report.Overall.Percentage != 100 {
		t.Fatalf("expected 100%%, got %.1f", report.Overall.Percentage)
	}
	if report.Overall.Status != SafetySafe {
		t.Fatalf("expected SAFE, got %s", report.Overall.Status)
	}
	if report.Overall.BunksAvailable != 3 {
		t.Fatalf("expected 3 bunks, got %d", report.Overall.BunksAvailable)
	}
}

func TestBunkMarginWarning(t *testing.T) {
	e := NewEngine(twoTheoryCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-16")

	records := fullWeekRecords(func(i int) Status {
		if i < 7 {
			return StatusPresent
		}
		return StatusAbsent
	})
	report := e.Stats(records, nil, today)
	if report.Overall.TotalClasses != 10 || report.Overall.AttendedClasses != 7 {
		t.Fatalf("expected 7/10, got %d/%d", report.Overall.AttendedClasses, report.Overall.TotalClasses)
	}
	if report.Overall.Percentage != 70.0 {
		t.Fatalf("expected 70.0, got %.1f", report.Overall.Percentage)
	}
	if report.Overall.Status != SafetyWarning {
		t.Fatalf("expected WARNING, got %s", report.Overall.Status)
	}
	if report.Overall.BunksAvailable != 0 {
		t.Fatalf("expected 0 bunks below 75%%, got %d", report.Overall.BunksAvailable)
	}
	if report.Overall.ClassesToRecover != 2 {
		t.Fatalf("expected 2 classes to recover, got %d", report.Overall.ClassesToRecover)
	}
}

func TestMissingDatesExample(t *testing.T) {
	e := NewEngine(twoTheoryCatalog(t), termStart)
	got := e.FindMissingDates(nil, nil, dateutil.MustParse("2025-12-13"))
	want := []string{"2025-12-12", "2025-12-11", "2025-12-10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMissingDatesSkipsSundayHolidayAndRecordedDays(t *testing.T) {
	e := NewEngine(twoTheoryCatalog(t), termStart)
	records := []Record{rec("2025-12-11", "Thu_2", StatusAbsent)}
	holidays := []Holiday{hol("2025-12-12")}
	got := e.FindMissingDates(records, holidays, dateutil.MustParse("2025-12-16"))
	want := []string{"2025-12-15", "2025-12-13", "2025-12-10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEmptyInputsDefaults(t *testing.T) {
	e := NewEngine(twoTheoryCatalog(t), termStart)
	report := e.Stats(nil, nil, termStart)
	if report.Overall.TotalClasses != 0 || report.Overall.Percentage != 100 || report.Overall.BunksAvailable != 0 {
		t.Fatalf("unexpected defaults: %+v", report.Overall)
	}
	if missing := e.FindMissingDates(nil, nil, termStart); len(missing) != 0 {
		t.Fatalf("expected no missing dates, got %v", missing)
	}
	for _, s := range report.BySubject {
		if s.Percentage != 100 {
			t.Fatalf("subject %s: expected 100 fallback, got %.1f", s.SubjectID, s.Percentage)
		}
	}
}

func TestIdempotence(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-25")
	records := []Record{
		rec("2025-12-10", "wed_1", StatusPresent),
		rec("2025-12-17", "wed_2", StatusAbsent),
		rec("2025-12-25", "thu_1", StatusPresent),
	}
	holidays := []Holiday{hol("2025-12-24")}

	if a, b := e.Aggregate(records, holidays, today), e.Aggregate(records, holidays, today); !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregate not idempotent: %+v vs %+v", a, b)
	}
	if a, b := e.FindMissingDates(records, holidays, today), e.FindMissingDates(records, holidays, today); !reflect.DeepEqual(a, b) {
		t.Fatalf("missing dates not idempotent: %v vs %v", a, b)
	}
}

func TestHolidayExclusion(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-18")

	before := e.Aggregate(nil, nil, today)
	if before.GrandTotal != 10 {
		t.Fatalf("expected two wednesdays of weight 5, got %d", before.GrandTotal)
	}

	holidays := []Holiday{hol("2025-12-17")}
	records := []Record{rec("2025-12-17", "wed_1", StatusPresent)}
	after := e.Aggregate(records, holidays, today)
	checkConservation(t, after)
	if after.GrandTotal != 5 || after.GrandAttended != 0 {
		t.Fatalf("holiday should remove its slots entirely, got %d/%d", after.GrandAttended, after.GrandTotal)
	}

	missing := e.FindMissingDates(nil, holidays, today)
	if !reflect.DeepEqual(missing, []string{"2025-12-10"}) {
		t.Fatalf("holiday must not be reported missing, got %v", missing)
	}
}

func TestHolidayWithoutSlotsIsNoop(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-18")
	base := e.Aggregate(nil, nil, today)
	withSunday := e.Aggregate(nil, []Holiday{hol("2025-12-14"), hol("2025-12-15")}, today)
	if !reflect.DeepEqual(base, withSunday) {
		t.Fatalf("holiday on empty day changed totals: %+v vs %+v", base, withSunday)
	}
}

func TestTermBoundary(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)

	// termStart включается
	agg := e.Aggregate(nil, nil, termStart.AddDays(1))
	if agg.GrandTotal != 5 {
		t.Fatalf("term start should count, got total %d", agg.GrandTotal)
	}

	// день до начала не считается и не попадает в пропуски
	records := []Record{rec("2025-12-03", "wed_1", StatusPresent)}
	agg = e.Aggregate(records, nil, termStart)
	if agg.GrandTotal != 0 || agg.GrandAttended != 0 {
		t.Fatalf("date before term start must not count, got %d/%d", agg.GrandAttended, agg.GrandTotal)
	}
	if missing := e.FindMissingDates(nil, nil, termStart); len(missing) != 0 {
		t.Fatalf("nothing before term start can be missing, got %v", missing)
	}
}

func TestTodayExclusionAsymmetry(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	wednesday := dateutil.MustParse("2025-12-17")

	// среда - сегодня и не отмечена: ничего не добавляет
	today := e.Aggregate([]Record{rec("2025-12-10", "wed_1", StatusPresent), rec("2025-12-10", "wed_2", StatusPresent), rec("2025-12-10", "wed_3", StatusPresent)}, nil, wednesday)
	if today.GrandTotal != 5 || today.GrandAttended != 5 {
		t.Fatalf("unmarked today must contribute nothing, got %d/%d", today.GrandAttended, today.GrandTotal)
	}

	// та же среда уже прошла: добавляет полный вес без посещения
	yesterday := e.Aggregate([]Record{rec("2025-12-10", "wed_1", StatusPresent), rec("2025-12-10", "wed_2", StatusPresent), rec("2025-12-10", "wed_3", StatusPresent)}, nil, wednesday.AddDays(1))
	if yesterday.GrandTotal != 10 || yesterday.GrandAttended != 5 {
		t.Fatalf("unmarked past day must count as absent, got %d/%d", yesterday.GrandAttended, yesterday.GrandTotal)
	}
	if Percentage(yesterday.GrandAttended, yesterday.GrandTotal) >= Percentage(today.GrandAttended, today.GrandTotal) {
		t.Fatalf("percentage should drop once the day is over")
	}
}

func TestTodayRecordsCountIncludingAbsent(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-10")
	records := []Record{
		rec("2025-12-10", "wed_1", StatusPresent),
		rec("2025-12-10", "wed_2", StatusAbsent),
		rec("2025-12-11", "thu_1", StatusPresent), // предмет неизвестен
		rec("2025-12-11", "no_such_slot", StatusPresent),
	}
	agg := e.Aggregate(records, nil, today)
	checkConservation(t, agg)
	if agg.GrandTotal != 4 || agg.GrandAttended != 1 {
		t.Fatalf("expected 1/4, got %d/%d", agg.GrandAttended, agg.GrandTotal)
	}
	if lab := agg.PerSubject["LAB"]; lab.Total != 3 || lab.Attended != 0 {
		t.Fatalf("expected lab 0/3, got %+v", lab)
	}
}

func TestPartialDayAsymmetry(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-11")
	records := []Record{rec("2025-12-10", "wed_1", StatusPresent)}

	if missing := e.FindMissingDates(records, nil, today); len(missing) != 0 {
		t.Fatalf("partially marked day must not be missing, got %v", missing)
	}
	agg := e.Aggregate(records, nil, today)
	if agg.GrandTotal != 5 || agg.GrandAttended != 1 {
		t.Fatalf("unmarked slots still count as absent, got %d/%d", agg.GrandAttended, agg.GrandTotal)
	}
}

func TestDuplicateRecordsLastWins(t *testing.T) {
	e := NewEngine(labCatalog(t), termStart)
	today := dateutil.MustParse("2025-12-11")

	presentLast := []Record{rec("2025-12-10", "wed_2", StatusAbsent), rec("2025-12-10", "wed_2", StatusPresent)}
	if agg := e.Aggregate(presentLast, nil, today); agg.GrandAttended != 3 {
		t.Fatalf("expected last PRESENT to win, attended %d", agg.GrandAttended)
	}

	absentLast := []Record{rec("2025-12-10", "wed_2", StatusPresent), rec("2025-12-10", "wed_2", StatusAbsent)}
	if agg := e.Aggregate(absentLast, nil, today); agg.GrandAttended != 0 {
		t.Fatalf("expected last ABSENT to win, attended %d", agg.GrandAttended)
	}

	// дубликаты за сегодня не удваивают вес
	dupToday := []Record{rec("2025-12-11", "thu_1", StatusPresent), rec("2025-12-10", "wed_1", StatusPresent), rec("2025-12-10", "wed_1", StatusPresent)}
	if agg := e.Aggregate(dupToday, nil, dateutil.MustParse("2025-12-10")); agg.GrandTotal != 1 {
		t.Fatalf("duplicates for today must count once, total %d", agg.GrandTotal)
	}
}

func TestSubjectWithoutClasses(t *testing.T) {
	e := NewEngine(twoTheoryCatalog(t), termStart)
	report := e.Stats(nil, nil, dateutil.MustParse("2025-12-12"))
	var idle SubjectStats
	for _, s := range report.BySubject {
		if s.SubjectID == "IDLE" {
			idle = s
		}
	}
	if idle.TotalClasses != 0 || idle.Percentage != 100 {
		t.Fatalf("unscheduled subject should report 100%%, got %+v", idle)
	}
	if report.Overall.TotalClasses != 4 || report.Overall.Percentage != 0 {
		t.Fatalf("unscheduled subject must not affect overall, got %+v", report.Overall)
	}
	if report.Overall.Status != SafetyDanger {
		t.Fatalf("expected DANGER, got %s", report.Overall.Status)
	}
	if got := report.BySubject[0].SubjectID; got != "MATH" {
		t.Fatalf("subjects should follow catalog order, first is %s", got)
	}
}

func TestPercentageRoundingAndThresholds(t *testing.T) {
	cases := []struct {
		attended, total int
		pct             float64
		status          Safety
		bunks           int
	}{
		{2, 3, 66.7, SafetyWarning, 0},
		{1, 3, 33.3, SafetyDanger, 0},
		{13, 20, 65.0, SafetyWarning, 0},
		{3, 4, 75.0, SafetySafe, 0},
		{9, 10, 90.0, SafetySafe, 2},
		{30, 31, 96.8, SafetySafe, 9},
		{0, 0, 100, SafetySafe, 0},
	}
	for _, tc := range cases {
		pct := Percentage(tc.attended, tc.total)
		if pct != tc.pct {
			t.Errorf("%d/%d: expected %.1f, got %.1f", tc.attended, tc.total, tc.pct, pct)
		}
		if got := Classify(pct); got != tc.status {
			t.Errorf("%d/%d: expected %s, got %s", tc.attended, tc.total, tc.status, got)
		}
		if got := BunksAvailable(tc.attended, tc.total); got != tc.bunks {
			t.Errorf("%d/%d: expected %d bunks, got %d", tc.attended, tc.total, tc.bunks, got)
		}
	}
}

func TestWeightConservationDefaultCatalog(t *testing.T) {
	e := NewEngine(timetable.Default(), termStart)
	today := dateutil.MustParse("2026-01-20")
	records := []Record{
		rec("2025-12-16", "tue_2", StatusPresent),
		rec("2025-12-19", "fri_2", StatusAbsent),
		rec("2026-01-20", "tue_2", StatusPresent),
		rec("2026-01-21", "wed_1", StatusAbsent),
	}
	holidays := []Holiday{hol("2025-12-25"), hol("2026-01-01")}
	checkConservation(t, e.Aggregate(records, holidays, today))
}
