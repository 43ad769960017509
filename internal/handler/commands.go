package handler

import (
	"fmt"

	"class-attendance-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `📋 Доступные команды:

👤 Профиль:
/register - Начать учет посещаемости
/myprofile - Показать мой профиль
/reminders on|off - Включить или выключить напоминания

📝 Отметки:
/today [дата] - Пары дня с кнопками отметки
    Пример: /today или /today 17.12
/mark дата пара present|absent - Отметить пару
    Пример: /mark 17.12.2025 wed_1 present
/mark дата all present|absent - Отметить весь день
/missing - Учебные дни без отметок

📊 Статистика:
/stats - Процент посещаемости и запас пропусков
/calendar [год месяц] - Календарь месяца
/timetable [день] - Расписание (день: 1-6 или пн..сб)

🏖️ Выходные:
/holiday дата - Отметить день выходным (повторно - снять)
/holiday дата_начала дата_окончания - Выходные на период
/holidays - Мои выходные

🛠 Утилиты:
/start - Начать работу с ботом
/help - Показать это сообщение

💡 Формат даты: dd.mm.yyyy, dd-mm-yyyy, dd.mm или yyyy-mm-dd`

const adminHelpText = `

👑 Администрирование:
/importholidays - Загрузить праздники из производственного календаря
/allusers - Все пользователи и их посещаемость
/promote [ID] - Назначить администратора
/demote [ID] - Снять администратора`

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)

	// Профиль
	case "register":
		h.register(message)
	case "myprofile":
		h.showProfile(message)
	case "reminders":
		h.setReminders(message, args)

	// Отметки и статистика
	case "today":
		h.showDay(message, args)
	case "mark":
		h.mark(message, args)
	case "stats":
		h.showStats(message)
	case "missing":
		h.showMissing(message)
	case "calendar":
		h.showCalendar(message, args)
	case "timetable":
		h.showTimetable(message, args)

	// Выходные
	case "holiday":
		h.toggleHoliday(message, args)
	case "holidays":
		h.listHolidays(message)
	case "importholidays":
		h.importHolidays(message)

	// Администрирование
	case "allusers":
		h.showAllUsers(message)
	case "promote":
		h.changeRole(message, args, models.RoleAdmin)
	case "demote":
		h.changeRole(message, args, models.RoleClient)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	text := helpText
	if isAdmin, err := h.userService.IsAdmin(chatID); err == nil && isAdmin {
		text += adminHelpText
	}
	text += fmt.Sprintf("\n\n📅 Семестр начался %s", h.config.TermStart.Display())

	h.reply(chatID, text)
}
