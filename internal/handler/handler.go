package handler

import (
	"errors"
	"fmt"
	"strings"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/internal/config"
	"class-attendance-bot/internal/models"
	"class-attendance-bot/internal/service"
	"class-attendance-bot/pkg/dateutil"
	"class-attendance-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client            *telegram.Client
	userService       *service.UserService
	attendanceService *service.AttendanceService
	holidayService    *service.HolidayService
	config            *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	attendanceService *service.AttendanceService,
	holidayService *service.HolidayService,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:            client,
		userService:       userService,
		attendanceService: attendanceService,
		holidayService:    holidayService,
		config:            cfg,
	}
}

// HandleUpdates обрабатывает обновления, пока канал не закрыт
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		// Обработка callback query (для inline кнопок)
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

// handleCallbackQuery обрабатывает inline кнопки отметок
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	answer := ""

	// Отвечаем на callback (убираем "часики" у кнопки)
	defer func() {
		answerCallback(h.client.Bot, chatID, callback.ID, answer)
	}()

	action, err := parseCallback(callback.Data)
	if err != nil {
		logrus.WithField("data", callback.Data).Warn("Unknown callback")
		return
	}

	user, err := h.userService.GetUser(chatID)
	if err != nil {
		answer = "Сначала зарегистрируйтесь: /register"
		return
	}

	today := h.config.Today()
	if action.slotID == "" {
		_, err = h.attendanceService.MarkDay(user.ID, action.date, action.status, today)
	} else {
		err = h.attendanceService.Mark(user.ID, action.date, action.slotID, action.status, today)
	}
	if err != nil {
		answer = "❌ " + userError(err)
		return
	}
	answer = "✅ Сохранено"

	// Перерисовываем сообщение с новыми отметками
	view, err := h.attendanceService.Day(user.ID, action.date, today)
	if err != nil {
		logrus.WithError(err).Error("Failed to reload day view")
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID, formatDayView(view), dayKeyboard(view))
	if _, err := h.client.Bot.Send(edit); err != nil {
		logrus.WithError(err).Warn("Failed to update day message")
	}
}

type callbackRequester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// answerCallback отвечает на нажатие кнопки. Ошибку только логируем:
// отметка уже сохранена, а ответ - лишь подсказка в клиенте
func answerCallback(bot callbackRequester, chatID int64, callbackID, text string) {
	if _, err := bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"chat_id":     chatID,
			"callback_id": callbackID,
		}).Warn("Failed to answer callback")
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From != nil {
		logrus.Infof("[%s] %s", message.From.UserName, message.Text)
	}

	// Обработка команд
	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(message.Chat.ID, "Я понимаю только команды. Используйте /help для списка команд.")
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to send message")
	}
}

// requireUser возвращает профиль или отправляет подсказку о регистрации
func (h *Handler) requireUser(chatID int64) (*models.User, bool) {
	user, err := h.userService.GetUser(chatID)
	if err == nil {
		return user, true
	}
	if errors.Is(err, service.ErrUserNotFound) {
		h.reply(chatID, "❌ Профиль не найден.\nИспользуйте /register чтобы начать учет посещаемости.")
	} else {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to load user")
		h.reply(chatID, "❌ Ошибка получения профиля: "+err.Error())
	}
	return nil, false
}

// requireAdmin проверяет права администратора
func (h *Handler) requireAdmin(chatID int64) bool {
	isAdmin, err := h.userService.IsAdmin(chatID)
	if err != nil {
		logrus.WithError(err).Error("Error checking admin status")
		h.reply(chatID, "❌ Ошибка проверки прав доступа: "+err.Error())
		return false
	}
	if !isAdmin {
		logrus.WithField("chat_id", chatID).Warn("Unauthorized access to admin command")
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return false
	}
	return true
}

type callbackAction struct {
	date   dateutil.Date
	slotID string // пусто - весь день
	status attendance.Status
}

// parseCallback разбирает "mark|<дата>|<пара>|P|A" и "day|<дата>|P|A"
func parseCallback(data string) (callbackAction, error) {
	parts := strings.Split(data, "|")
	var action callbackAction
	var dateStr, statusStr string

	switch {
	case len(parts) == 4 && parts[0] == "mark":
		dateStr, action.slotID, statusStr = parts[1], parts[2], parts[3]
	case len(parts) == 3 && parts[0] == "day":
		dateStr, statusStr = parts[1], parts[2]
	default:
		return action, fmt.Errorf("unknown callback %q", data)
	}

	date, err := dateutil.Parse(dateStr)
	if err != nil {
		return action, err
	}
	action.date = date

	switch statusStr {
	case "P":
		action.status = attendance.StatusPresent
	case "A":
		action.status = attendance.StatusAbsent
	default:
		return action, fmt.Errorf("unknown status %q", statusStr)
	}
	return action, nil
}

func markCallback(date dateutil.Date, slotID string, status attendance.Status) string {
	return fmt.Sprintf("mark|%s|%s|%s", date, slotID, string(status)[:1])
}

func dayCallback(date dateutil.Date, status attendance.Status) string {
	return fmt.Sprintf("day|%s|%s", date, string(status)[:1])
}

// parseStatus понимает present/absent и короткие формы
func parseStatus(value string) (attendance.Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "present", "p", "+", "был", "была", "да":
		return attendance.StatusPresent, true
	case "absent", "a", "-", "нет", "пропуск":
		return attendance.StatusAbsent, true
	}
	return "", false
}

// userError переводит ошибку сервиса в текст для пользователя
func userError(err error) string {
	var validation *dateutil.ValidationError
	if errors.As(err, &validation) {
		return "некорректная дата " + validation.Value
	}
	return err.Error()
}
