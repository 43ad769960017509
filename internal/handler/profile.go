package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// register создает профиль по данным Telegram
func (h *Handler) register(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	var username, firstName, lastName string
	if message.From != nil {
		username = message.From.UserName
		firstName = message.From.FirstName
		lastName = message.From.LastName
	}

	user, created, err := h.userService.Register(chatID, username, firstName, lastName)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to register user")
		h.reply(chatID, "❌ Ошибка создания профиля: "+err.Error())
		return
	}

	if !created {
		h.reply(chatID, "ℹ️ Вы уже зарегистрированы.\n\n"+h.userService.FormatUserInfo(user))
		return
	}

	h.reply(chatID, fmt.Sprintf(`🎉 Профиль создан!

%s

Отмечайте пары командой /today, а статистику смотрите в /stats.`,
		h.userService.FormatUserInfo(user)))
}

// showProfile показывает профиль пользователя
func (h *Handler) showProfile(message *tgbotapi.Message) {
	user, ok := h.requireUser(message.Chat.ID)
	if !ok {
		return
	}
	h.reply(message.Chat.ID, h.userService.FormatUserInfo(user))
}

// setReminders включает или выключает ежедневные напоминания
func (h *Handler) setReminders(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	if _, ok := h.requireUser(chatID); !ok {
		return
	}

	var enabled bool
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "on", "вкл":
		enabled = true
	case "off", "выкл":
		enabled = false
	default:
		h.reply(chatID, "❌ Используйте: /reminders on или /reminders off")
		return
	}

	if err := h.userService.SetReminders(chatID, enabled); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to update reminders")
		h.reply(chatID, "❌ Ошибка сохранения настройки: "+err.Error())
		return
	}

	if !enabled {
		h.reply(chatID, "🔕 Напоминания выключены.")
		return
	}
	text := "🔔 Напоминания включены."
	if h.config.ReminderTime == "" {
		text += "\nНапоминания на сервере не настроены."
	} else {
		text += " Время: " + h.config.ReminderTime
	}
	h.reply(chatID, text)
}
