package handler

import (
	"fmt"
	"strings"
	"time"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/internal/service"
	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/dateutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var monthNames = [...]string{
	"", "Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var safetyEmoji = map[attendance.Safety]string{
	attendance.SafetySafe:    "🟢",
	attendance.SafetyWarning: "🟡",
	attendance.SafetyDanger:  "🔴",
}

var dayEmoji = map[attendance.DayState]string{
	attendance.DayHoliday:  "🎉",
	attendance.DayDisabled: "▫️",
	attendance.DayWeekend:  "💤",
	attendance.DayFuture:   "⏳",
	attendance.DayEmpty:    "⬜",
	attendance.DayFull:     "✅",
	attendance.DayAbsent:   "❌",
	attendance.DayPartial:  "🟨",
}

func markEmoji(status attendance.Status) string {
	switch status {
	case attendance.StatusPresent:
		return "✅"
	case attendance.StatusAbsent:
		return "❌"
	}
	return "⬜"
}

func formatReport(report attendance.Report) string {
	o := report.Overall
	var lines []string

	lines = append(lines, "📊 Посещаемость:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s Всего: %.1f%% (%d из %d)", safetyEmoji[o.Status], o.Percentage, o.AttendedClasses, o.TotalClasses))
	if o.BunksAvailable > 0 {
		lines = append(lines, fmt.Sprintf("😎 Можно пропустить: %d", o.BunksAvailable))
	} else if o.ClassesToRecover > 0 {
		lines = append(lines, fmt.Sprintf("📚 Нужно посетить подряд: %d", o.ClassesToRecover))
	} else {
		lines = append(lines, "⚖️ Запаса пропусков нет")
	}

	if len(report.BySubject) > 0 {
		lines = append(lines, "")
		lines = append(lines, "📚 По предметам:")
		for _, s := range report.BySubject {
			if s.TotalClasses == 0 {
				lines = append(lines, fmt.Sprintf("▫️ %s: занятий не было", s.SubjectName))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s: %.1f%% (%d/%d)", safetyEmoji[s.Status], s.SubjectName, s.Percentage, s.AttendedClasses, s.TotalClasses))
		}
	}

	return strings.Join(lines, "\n")
}

func formatDayView(view service.DayView) string {
	day := view.Day
	header := fmt.Sprintf("📅 %s, %s", dateutil.DayName(day.Date.Weekday()), day.Date.Display())

	switch day.State {
	case attendance.DayHoliday:
		return header + "\n\n🎉 Выходной день"
	case attendance.DayDisabled:
		return header + "\n\n▫️ Семестр еще не начался"
	case attendance.DayWeekend:
		return header + "\n\n💤 Пар нет"
	}

	var lines []string
	lines = append(lines, header, "")
	for _, m := range view.Slots {
		lines = append(lines, fmt.Sprintf("%s %s-%s %s", markEmoji(m.Status), m.Slot.Start, m.Slot.End, m.Label))
	}
	if day.State == attendance.DayFuture {
		lines = append(lines, "", "⏳ Отметить можно только прошедшие и сегодняшние пары")
	}
	return strings.Join(lines, "\n")
}

// dayKeyboard - по строке кнопок на пару и строка для всего дня
func dayKeyboard(view service.DayView) tgbotapi.InlineKeyboardMarkup {
	switch view.Day.State {
	case attendance.DayHoliday, attendance.DayDisabled, attendance.DayWeekend, attendance.DayFuture:
		return tgbotapi.NewInlineKeyboardMarkup()
	}

	date := view.Day.Date
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range view.Slots {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+m.Label, markCallback(date, m.Slot.ID, attendance.StatusPresent)),
			tgbotapi.NewInlineKeyboardButtonData("❌", markCallback(date, m.Slot.ID, attendance.StatusAbsent)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Был на всех", dayCallback(date, attendance.StatusPresent)),
		tgbotapi.NewInlineKeyboardButtonData("❌ Пропустил день", dayCallback(date, attendance.StatusAbsent)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatMissing(missing []string) string {
	if len(missing) == 0 {
		return "✅ Все прошедшие учебные дни отмечены!"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("⚠️ Дней без отметок: %d", len(missing)), "")
	for _, iso := range missing {
		d, err := dateutil.Parse(iso)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s, %s", d.Display(), dateutil.DayName(d.Weekday())))
	}
	lines = append(lines, "", "Отметить: /today дата")
	return strings.Join(lines, "\n")
}

// formatMonth рисует календарь месяца неделями с понедельника
func formatMonth(year int, month time.Month, days []attendance.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓 %s %d\n\n", monthNames[month], year)
	b.WriteString("Пн Вт Ср Чт Пт Сб Вс\n")

	if len(days) > 0 {
		// сдвиг первого дня: понедельник = 0
		offset := (int(days[0].Date.Weekday()) + 6) % 7
		b.WriteString(strings.Repeat("   ", offset))
		for i, day := range days {
			b.WriteString(dayEmoji[day.State])
			if (offset+i)%7 == 6 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
	}

	b.WriteString("\n\n✅ все пары  🟨 частично  ❌ пропуск  ⬜ нет отметок\n🎉 выходной  💤 нет пар  ⏳ впереди  ▫️ до семестра")
	return b.String()
}

func formatTimetable(catalog *timetable.Catalog, weekdays []time.Weekday) string {
	var lines []string
	for _, w := range weekdays {
		slots := catalog.SlotsFor(w)
		if len(slots) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "📅 "+dateutil.DayName(w)+":")
		for _, slot := range slots {
			kind := ""
			if s, ok := catalog.Subject(slot.SubjectID); ok && s.Type == timetable.SubjectLab {
				kind = fmt.Sprintf(" (лаб., x%d)", s.Weight)
			}
			lines = append(lines, fmt.Sprintf("• %s-%s %s%s [%s]", slot.Start, slot.End, catalog.Label(slot), kind, slot.ID))
		}
	}
	if len(lines) == 0 {
		return "💤 Пар нет"
	}
	return strings.Join(lines, "\n")
}

var weekdayAliases = map[string]time.Weekday{
	"1": time.Monday, "пн": time.Monday, "mon": time.Monday,
	"2": time.Tuesday, "вт": time.Tuesday, "tue": time.Tuesday,
	"3": time.Wednesday, "ср": time.Wednesday, "wed": time.Wednesday,
	"4": time.Thursday, "чт": time.Thursday, "thu": time.Thursday,
	"5": time.Friday, "пт": time.Friday, "fri": time.Friday,
	"6": time.Saturday, "сб": time.Saturday, "sat": time.Saturday,
	"7": time.Sunday, "вс": time.Sunday, "sun": time.Sunday,
}

func parseWeekday(value string) (time.Weekday, bool) {
	w, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(value))]
	return w, ok
}
