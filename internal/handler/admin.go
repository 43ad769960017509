package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"class-attendance-bot/internal/models"
	"class-attendance-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// showAllUsers показывает всех пользователей со сводкой посещаемости
func (h *Handler) showAllUsers(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !h.requireAdmin(chatID) {
		return
	}

	users, err := h.userService.ListUsers()
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения списка пользователей: "+err.Error())
		return
	}
	if len(users) == 0 {
		h.reply(chatID, "👥 Пользователей нет.")
		return
	}

	today := h.config.Today()
	var lines []string
	lines = append(lines, fmt.Sprintf("👥 Пользователи (%d):", len(users)), "")
	for i, user := range users {
		info := fmt.Sprintf("%d. %s", i+1, user.FullName())
		if user.Username != "" {
			info += fmt.Sprintf(" (@%s)", user.Username)
		}
		if user.IsAdmin() {
			info += " 👑"
		}
		info += fmt.Sprintf(" - ID: %d", user.ChatID)

		report, err := h.attendanceService.Overview(user.ID, today)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to build user overview")
		} else {
			info += fmt.Sprintf(" %s %.1f%%", safetyEmoji[report.Overall.Status], report.Overall.Percentage)
		}
		lines = append(lines, info)
	}

	h.reply(chatID, strings.Join(lines, "\n"))
}

// changeRole: /promote ID и /demote ID
func (h *Handler) changeRole(message *tgbotapi.Message, args string, role models.Role) {
	chatID := message.Chat.ID
	if !h.requireAdmin(chatID) {
		return
	}

	targetID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Укажите ID чата пользователя. Пример: /"+message.Command()+" 123456789")
		return
	}
	if role == models.RoleClient && targetID == h.config.BaseAdminChatID {
		h.reply(chatID, "❌ Нельзя снять права с главного администратора.")
		return
	}

	if err := h.userService.SetRole(targetID, role); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.reply(chatID, "❌ Пользователь не найден.")
			return
		}
		h.reply(chatID, "❌ Ошибка изменения роли: "+err.Error())
		return
	}

	if role == models.RoleAdmin {
		h.reply(chatID, fmt.Sprintf("✅ Пользователь %d назначен администратором.", targetID))
	} else {
		h.reply(chatID, fmt.Sprintf("✅ Пользователь %d больше не администратор.", targetID))
	}
}
