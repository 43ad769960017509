package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/internal/models"
	"class-attendance-bot/internal/repository"
	"class-attendance-bot/pkg/dateutil"

	"github.com/sirupsen/logrus"
)

// Notifier отправляет сообщение в чат
type Notifier interface {
	Notify(chatID int64, text string) error
}

// максимум дат в тексте напоминания
const reminderDateLimit = 5

// ReminderService раз в день напоминает отметить посещение
type ReminderService struct {
	userRepo          repository.UserRepository
	attendanceService *AttendanceService
	notifier          Notifier
	hour, minute      int
	location          *time.Location
	logger            *logrus.Logger
}

// NewReminderService: at - время в формате HH:MM
func NewReminderService(
	userRepo repository.UserRepository,
	attendanceService *AttendanceService,
	notifier Notifier,
	at string,
	location *time.Location,
) (*ReminderService, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("некорректное время напоминания %q: %w", at, err)
	}
	if location == nil {
		location = time.Local
	}
	return &ReminderService{
		userRepo:          userRepo,
		attendanceService: attendanceService,
		notifier:          notifier,
		hour:              t.Hour(),
		minute:            t.Minute(),
		location:          location,
		logger:            newLogger(),
	}, nil
}

// Run проверяет расписание напоминаний раз в минуту до отмены ctx
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	s.logger.WithField("at", fmt.Sprintf("%02d:%02d", s.hour, s.minute)).Info("Reminder loop started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder loop stopped")
			return
		case now := <-ticker.C:
			s.Tick(now)
		}
	}
}

// Tick рассылает напоминания, если наступило время и сегодня их еще не было.
// Возвращает число отправленных сообщений
func (s *ReminderService) Tick(now time.Time) int {
	local := now.In(s.location)
	if local.Hour()*60+local.Minute() < s.hour*60+s.minute {
		return 0
	}
	today := dateutil.FromTime(local)

	users, err := s.userRepo.GetReminderRecipients()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load reminder recipients")
		return 0
	}

	sent := 0
	for _, user := range users {
		if user.RemindLastSent == today.String() {
			continue
		}
		if s.remind(user, today) {
			sent++
		}
	}
	return sent
}

func (s *ReminderService) remind(user *models.User, today dateutil.Date) bool {
	log := s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"date":    today.String(),
	})

	view, err := s.attendanceService.Day(user.ID, today, today)
	if err != nil {
		log.WithError(err).Error("Failed to load today for reminder")
		return false
	}
	missing, err := s.attendanceService.Missing(user.ID, today)
	if err != nil {
		log.WithError(err).Error("Failed to load missing dates for reminder")
		return false
	}

	text := BuildReminder(view.Day, missing)
	sent := false
	if text != "" {
		if err := s.notifier.Notify(user.ChatID, text); err != nil {
			log.WithError(err).Warn("Failed to send reminder")
			return false
		}
		sent = true
	}

	if err := s.userRepo.MarkReminded(user.ID, today.String()); err != nil {
		log.WithError(err).Error("Failed to store reminder date")
	}
	return sent
}

// BuildReminder формирует текст напоминания; пустая строка - напоминать не о чем
func BuildReminder(today attendance.Day, missing []string) string {
	var parts []string
	if today.State == attendance.DayEmpty {
		parts = append(parts, fmt.Sprintf("📝 Сегодня %d пар(ы) без отметок. Отметьте посещение: /today", today.Scheduled))
	}
	if len(missing) > 0 {
		shown := missing
		if len(shown) > reminderDateLimit {
			shown = shown[:reminderDateLimit]
		}
		dates := make([]string, 0, len(shown))
		for _, iso := range shown {
			if d, err := dateutil.Parse(iso); err == nil {
				dates = append(dates, d.Display())
			}
		}
		line := fmt.Sprintf("⚠️ Дней без отметок: %d (%s", len(missing), strings.Join(dates, ", "))
		if len(missing) > len(shown) {
			line += ", ..."
		}
		parts = append(parts, line+"). Подробнее: /missing")
	}
	return strings.Join(parts, "\n\n")
}
