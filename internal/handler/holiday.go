package handler

import (
	"fmt"
	"strings"

	"class-attendance-bot/pkg/dateutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// списки выходных длиннее этого обрезаются
const holidayListLimit = 40

// toggleHoliday: /holiday дата или /holiday дата_начала дата_окончания
func (h *Handler) toggleHoliday(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) == 0 || len(parts) > 2 {
		h.reply(chatID, `🏖️ Выходные дни

/holiday дата - отметить день выходным, повторно - снять отметку
    Пример: /holiday 31.12.2025
/holiday дата_начала дата_окончания - каникулы
    Пример: /holiday 29.12.2025 11.01.2026

⚠️ Отметки о посещении за выходные дни удаляются.`)
		return
	}

	today := h.config.Today()
	from, err := dateutil.ParseUser(parts[0], today)
	if err != nil {
		h.reply(chatID, "❌ Ошибка парсинга даты: "+userError(err))
		return
	}

	if len(parts) == 2 {
		to, err := dateutil.ParseUser(parts[1], today)
		if err != nil {
			h.reply(chatID, "❌ Ошибка парсинга даты окончания: "+userError(err))
			return
		}
		added, err := h.holidayService.AddRange(user.ID, from, to)
		if err != nil {
			h.reply(chatID, "❌ Ошибка добавления выходных: "+err.Error())
			return
		}
		h.reply(chatID, fmt.Sprintf("✅ Период %s - %s отмечен выходными.\nНовых дней: %d", from.Display(), to.Display(), added))
		return
	}

	added, err := h.holidayService.Toggle(user.ID, from)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to toggle holiday")
		h.reply(chatID, "❌ Ошибка: "+err.Error())
		return
	}
	if added {
		h.reply(chatID, fmt.Sprintf("🎉 %s отмечен выходным.", from.Display()))
	} else {
		h.reply(chatID, fmt.Sprintf("📅 %s снова учебный день.", from.Display()))
	}
}

// listHolidays показывает выходные пользователя
func (h *Handler) listHolidays(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	holidays, err := h.holidayService.List(user.ID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to list holidays")
		h.reply(chatID, "❌ Ошибка получения выходных: "+err.Error())
		return
	}
	if len(holidays) == 0 {
		h.reply(chatID, "📭 Выходные не отмечены.\nИспользуйте /holiday дата")
		return
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("🏖️ Выходные дни (%d):", len(holidays)), "")
	for i, holiday := range holidays {
		if i == holidayListLimit {
			lines = append(lines, fmt.Sprintf("... и еще %d", len(holidays)-holidayListLimit))
			break
		}
		d, err := dateutil.Parse(holiday.Date)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s, %s", d.Display(), dateutil.DayName(d.Weekday())))
	}
	h.reply(chatID, strings.Join(lines, "\n"))
}

// importHolidays загружает производственный календарь администратору
func (h *Handler) importHolidays(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !h.requireAdmin(chatID) {
		return
	}
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	if h.config.HolidayCalendarPath == "" {
		h.reply(chatID, "❌ Путь к календарю не задан (HOLIDAY_CALENDAR_PATH)")
		return
	}

	added, err := h.holidayService.ImportCalendar(user.ID, h.config.HolidayCalendarPath)
	if err != nil {
		logrus.WithError(err).Error("Failed to import holiday calendar")
		h.reply(chatID, "❌ Ошибка загрузки календаря: "+err.Error())
		return
	}
	h.reply(chatID, fmt.Sprintf("✅ Календарь загружен. Новых выходных: %d", added))
}
