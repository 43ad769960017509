package attendance

import (
	"math"

	"class-attendance-bot/pkg/dateutil"
)

type Safety string

const (
	SafetySafe    Safety = "SAFE"
	SafetyWarning Safety = "WARNING"
	SafetyDanger  Safety = "DANGER"
)

// Пороги посещаемости, %
const (
	RequiredPercentage = 75.0
	DangerPercentage   = 65.0
)

// Overall - сводка по всем предметам
type Overall struct {
	TotalClasses    int     `json:"total_classes"`
	AttendedClasses int     `json:"attended_classes"`
	Percentage      float64 `json:"percentage"`
	Status          Safety  `json:"status"`
	BunksAvailable  int     `json:"bunks_available"`
	// ClassesToRecover - сколько пар подряд нужно посетить, чтобы вернуться к 75%
	ClassesToRecover int `json:"classes_to_recover"`
}

type SubjectStats struct {
	SubjectID       string  `json:"subject_id"`
	SubjectName     string  `json:"subject_name"`
	TotalClasses    int     `json:"total_classes"`
	AttendedClasses int     `json:"attended_classes"`
	Percentage      float64 `json:"percentage"`
	Status          Safety  `json:"status"`
}

type Report struct {
	Overall   Overall        `json:"overall"`
	BySubject []SubjectStats `json:"by_subject"`
}

// Format переводит взвешенные итоги в проценты и статус.
// Предметы идут в порядке каталога
func (e *Engine) Format(agg Aggregation) Report {
	pct := Percentage(agg.GrandAttended, agg.GrandTotal)
	report := Report{
		Overall: Overall{
			TotalClasses:     agg.GrandTotal,
			AttendedClasses:  agg.GrandAttended,
			Percentage:       pct,
			Status:           Classify(pct),
			BunksAvailable:   BunksAvailable(agg.GrandAttended, agg.GrandTotal),
			ClassesToRecover: ClassesToRecover(agg.GrandAttended, agg.GrandTotal),
		},
		BySubject: make([]SubjectStats, 0, len(agg.PerSubject)),
	}

	for _, s := range e.catalog.Subjects() {
		t := agg.PerSubject[s.ID]
		sp := Percentage(t.Attended, t.Total)
		report.BySubject = append(report.BySubject, SubjectStats{
			SubjectID:       s.ID,
			SubjectName:     s.Name,
			TotalClasses:    t.Total,
			AttendedClasses: t.Attended,
			Percentage:      sp,
			Status:          Classify(sp),
		})
	}

	return report
}

// Stats - Aggregate и Format за один вызов
func (e *Engine) Stats(records []Record, holidays []Holiday, today dateutil.Date) Report {
	return e.Format(e.Aggregate(records, holidays, today))
}

// Percentage - процент с одним знаком после запятой; 100, если занятий не было
func Percentage(attended, total int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(attended)*1000/float64(total)) / 10
}

func Classify(pct float64) Safety {
	switch {
	case pct < DangerPercentage:
		return SafetyDanger
	case pct < RequiredPercentage:
		return SafetyWarning
	default:
		return SafetySafe
	}
}

// BunksAvailable - сколько взвешенных пар можно пропустить, оставаясь
// на уровне 75%: floor(attended/0.75 - total). Ниже 75% всегда 0
func BunksAvailable(attended, total int) int {
	if Percentage(attended, total) < RequiredPercentage {
		return 0
	}
	// attended/0.75 - total == (4*attended - 3*total) / 3
	margin := 4*attended - 3*total
	if margin <= 0 {
		return 0
	}
	return margin / 3
}

// ClassesToRecover - минимальное x, при котором (attended+x)/(total+x) >= 0.75
func ClassesToRecover(attended, total int) int {
	need := 3*total - 4*attended
	if need < 0 {
		return 0
	}
	return need
}
