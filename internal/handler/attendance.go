package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"class-attendance-bot/pkg/dateutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// showDay показывает пары дня с кнопками отметки
func (h *Handler) showDay(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	today := h.config.Today()
	date := today
	if strings.TrimSpace(args) != "" {
		parsed, err := dateutil.ParseUser(args, today)
		if err != nil {
			h.reply(chatID, "❌ Ошибка парсинга даты: "+userError(err))
			return
		}
		date = parsed
	}

	view, err := h.attendanceService.Day(user.ID, date, today)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to load day")
		h.reply(chatID, "❌ Ошибка загрузки отметок: "+err.Error())
		return
	}

	msg := tgbotapi.NewMessage(chatID, formatDayView(view))
	if keyboard := dayKeyboard(view); len(keyboard.InlineKeyboard) > 0 {
		msg.ReplyMarkup = keyboard
	}
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).Warn("Failed to send day view")
	}
}

// mark: /mark дата пара|all present|absent
func (h *Handler) mark(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 3 {
		h.reply(chatID, "❌ Неверный формат. Используйте: /mark дата пара present|absent\nПример: /mark 17.12.2025 wed_1 present")
		return
	}

	today := h.config.Today()
	date, err := dateutil.ParseUser(parts[0], today)
	if err != nil {
		h.reply(chatID, "❌ Ошибка парсинга даты: "+userError(err))
		return
	}
	status, ok := parseStatus(parts[2])
	if !ok {
		h.reply(chatID, "❌ Статус должен быть present или absent")
		return
	}

	if strings.EqualFold(parts[1], "all") {
		n, err := h.attendanceService.MarkDay(user.ID, date, status, today)
		if err != nil {
			h.reply(chatID, "❌ Ошибка: "+userError(err))
			return
		}
		if n == 0 {
			h.reply(chatID, "💤 В этот день пар нет")
			return
		}
		h.reply(chatID, fmt.Sprintf("%s Отмечено пар: %d за %s", markEmoji(status), n, date.Display()))
		return
	}

	if err := h.attendanceService.Mark(user.ID, date, parts[1], status, today); err != nil {
		h.reply(chatID, "❌ Ошибка: "+userError(err))
		return
	}

	label := parts[1]
	catalog := h.attendanceService.Engine().Catalog()
	if slot, ok := catalog.Slot(parts[1]); ok {
		label = catalog.Label(slot)
	}
	h.reply(chatID, fmt.Sprintf("%s %s, %s", markEmoji(status), label, date.Display()))
}

// showStats показывает проценты посещаемости
func (h *Handler) showStats(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	report, err := h.attendanceService.Overview(user.ID, h.config.Today())
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to build stats")
		h.reply(chatID, "❌ Ошибка расчета статистики: "+err.Error())
		return
	}
	h.reply(chatID, formatReport(report))
}

// showMissing перечисляет учебные дни без отметок
func (h *Handler) showMissing(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	missing, err := h.attendanceService.Missing(user.ID, h.config.Today())
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to find missing dates")
		h.reply(chatID, "❌ Ошибка поиска пропущенных дней: "+err.Error())
		return
	}
	h.reply(chatID, formatMissing(missing))
}

// showCalendar: /calendar [год месяц]
func (h *Handler) showCalendar(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	user, ok := h.requireUser(chatID)
	if !ok {
		return
	}

	today := h.config.Today()
	year, month, err := parseYearMonth(args, today)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nПример: /calendar 2025 12")
		return
	}

	days, err := h.attendanceService.Month(user.ID, year, month, today)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to build calendar")
		h.reply(chatID, "❌ Ошибка построения календаря: "+err.Error())
		return
	}
	h.reply(chatID, formatMonth(year, month, days))
}

// showTimetable: /timetable [день]
func (h *Handler) showTimetable(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	catalog := h.attendanceService.Engine().Catalog()

	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	if strings.TrimSpace(args) != "" {
		w, ok := parseWeekday(args)
		if !ok {
			h.reply(chatID, "❌ Неизвестный день недели. Используйте 1-6 или пн..сб")
			return
		}
		weekdays = []time.Weekday{w}
	}
	h.reply(chatID, formatTimetable(catalog, weekdays))
}

// parseYearMonth разбирает "[год] месяц"; без аргументов - текущий месяц
func parseYearMonth(args string, today dateutil.Date) (int, time.Month, error) {
	parts := strings.Fields(args)
	year, month := today.Year(), today.Month()

	switch len(parts) {
	case 0:
		return year, month, nil
	case 1:
		m, err := strconv.Atoi(parts[0])
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("месяц должен быть числом от 1 до 12")
		}
		return year, time.Month(m), nil
	case 2:
		y, err := strconv.Atoi(parts[0])
		if err != nil || y < 2000 || y > 2100 {
			return 0, 0, fmt.Errorf("некорректный год")
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("месяц должен быть числом от 1 до 12")
		}
		return y, time.Month(m), nil
	}
	return 0, 0, fmt.Errorf("неверный формат")
}
