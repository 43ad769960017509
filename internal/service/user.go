package service

import (
	"errors"
	"fmt"
	"strings"

	"class-attendance-bot/internal/models"
	"class-attendance-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, logger: newLogger()}
}

// Register создает профиль или возвращает существующий. created = false, если профиль уже был
func (s *UserService) Register(chatID int64, username, firstName, lastName string) (*models.User, bool, error) {
	existing, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	if strings.TrimSpace(firstName) == "" {
		firstName = username
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, false, fmt.Errorf("имя не может быть пустым")
	}

	user := &models.User{
		ChatID:        chatID,
		Username:      username,
		FirstName:     firstName,
		LastName:      lastName,
		Role:          string(models.RoleClient),
		RemindEnabled: true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, false, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"user_id": user.ID,
	}).Info("User registered")
	return user, true, nil
}

// GetUser возвращает пользователя по chatID
func (s *UserService) GetUser(chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// IsAdmin проверяет, является ли пользователь администратором
func (s *UserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin(), nil
}

// SetReminders включает или выключает ежедневные напоминания
func (s *UserService) SetReminders(chatID int64, enabled bool) error {
	user, err := s.GetUser(chatID)
	if err != nil {
		return err
	}
	user.RemindEnabled = enabled
	return s.repo.Update(user)
}

// InitializeAdmin назначает администратора из конфига
func (s *UserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil // Админ не задан в конфиге
	}

	existing, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.repo.UpdateRole(adminChatID, models.RoleAdmin)
	}

	admin := &models.User{
		ChatID:        adminChatID,
		Username:      "admin",
		FirstName:     "Администратор",
		Role:          string(models.RoleAdmin),
		RemindEnabled: true,
	}
	err = s.repo.Create(admin)
	if errors.Is(err, repository.ErrUserExists) {
		return s.repo.UpdateRole(adminChatID, models.RoleAdmin)
	}
	return err
}

// FormatUserInfo форматирует профиль для вывода
func (s *UserService) FormatUserInfo(user *models.User) string {
	var lines []string

	lines = append(lines, "👤 Профиль пользователя:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID чата: %d", user.ChatID))
	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Никнейм: @%s", user.Username))
	}
	lines = append(lines, fmt.Sprintf("👨‍🎓 Имя: %s", user.FullName()))

	roleEmoji := "👤"
	if user.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Роль: %s", roleEmoji, user.Role))

	reminders := "выключены"
	if user.RemindEnabled {
		reminders = "включены"
	}
	lines = append(lines, fmt.Sprintf("🔔 Напоминания: %s", reminders))

	return strings.Join(lines, "\n")
}

// ListUsers возвращает всех пользователей
func (s *UserService) ListUsers() ([]*models.User, error) {
	return s.repo.GetAll()
}

// SetRole меняет роль пользователя по chatID
func (s *UserService) SetRole(chatID int64, role models.Role) error {
	if role != models.RoleAdmin && role != models.RoleClient {
		return fmt.Errorf("неизвестная роль %q", role)
	}
	err := s.repo.UpdateRole(chatID, role)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"role":    role,
	}).Info("User role changed")
	return nil
}
