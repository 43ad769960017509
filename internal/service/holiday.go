package service

import (
	"fmt"

	"class-attendance-bot/internal/models"
	"class-attendance-bot/internal/repository"
	"class-attendance-bot/pkg/dateutil"
	"class-attendance-bot/pkg/weekends"

	"github.com/sirupsen/logrus"
)

const maxHolidayRange = 366

type HolidayService struct {
	holidayRepo repository.HolidayRepository
	termStart   dateutil.Date
	logger      *logrus.Logger
}

func NewHolidayService(holidayRepo repository.HolidayRepository, termStart dateutil.Date) *HolidayService {
	return &HolidayService{
		holidayRepo: holidayRepo,
		termStart:   termStart,
		logger:      newLogger(),
	}
}

// Toggle отмечает день выходным или снимает отметку.
// При добавлении выходного отметки за этот день удаляются
func (s *HolidayService) Toggle(userID uint, date dateutil.Date) (bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    date.String(),
	})

	existing, err := s.holidayRepo.GetByUserAndDate(userID, date.String())
	if err != nil {
		return false, fmt.Errorf("ошибка проверки выходного: %w", err)
	}

	if existing != nil {
		if err := s.holidayRepo.Delete(userID, date.String()); err != nil {
			log.WithError(err).Error("Failed to remove holiday")
			return true, err
		}
		log.Info("Holiday removed")
		return false, nil
	}

	_, cleared, err := s.holidayRepo.AddClearingAttendance([]*models.Holiday{{UserID: userID, Date: date.String()}})
	if err != nil {
		log.WithError(err).Error("Failed to add holiday")
		return false, fmt.Errorf("ошибка сохранения выходного: %w", err)
	}

	log.WithField("cleared", cleared).Info("Holiday added")
	return true, nil
}

// AddRange отмечает выходными все дни из [from, to] и возвращает число новых
func (s *HolidayService) AddRange(userID uint, from, to dateutil.Date) (int64, error) {
	if to.Before(from) {
		return 0, fmt.Errorf("дата окончания не может быть раньше даты начала")
	}
	if from.AddDays(maxHolidayRange).Before(to) {
		return 0, fmt.Errorf("период не может быть длиннее %d дней", maxHolidayRange)
	}

	var dates []dateutil.Date
	dateutil.Range(from, to.AddDays(1), func(d dateutil.Date) bool {
		dates = append(dates, d)
		return true
	})
	return s.addDates(userID, dates)
}

// ImportCalendar загружает праздники из производственного календаря.
// Дни до начала семестра и уже отмеченные выходные пропускаются
func (s *HolidayService) ImportCalendar(userID uint, path string) (int64, error) {
	days, err := weekends.ParseFile(path)
	if err != nil {
		return 0, err
	}

	rows, err := s.holidayRepo.ListByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("ошибка загрузки выходных: %w", err)
	}
	existing := make([]dateutil.Date, 0, len(rows))
	for _, row := range rows {
		if d, err := dateutil.Parse(row.Date); err == nil {
			existing = append(existing, d)
		}
	}

	var dates []dateutil.Date
	for _, d := range days {
		if d.Before(s.termStart) || weekends.Contains(existing, d) {
			continue
		}
		dates = append(dates, d)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"path":     path,
		"in_file":  len(days),
		"eligible": len(dates),
	}).Info("Importing holiday calendar")

	return s.addDates(userID, dates)
}

// List возвращает выходные пользователя по возрастанию даты
func (s *HolidayService) List(userID uint) ([]*models.Holiday, error) {
	return s.holidayRepo.ListByUser(userID)
}

func (s *HolidayService) addDates(userID uint, dates []dateutil.Date) (int64, error) {
	rows := make([]*models.Holiday, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, &models.Holiday{UserID: userID, Date: d.String()})
	}

	inserted, cleared, err := s.holidayRepo.AddClearingAttendance(rows)
	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения выходных: %w", err)
	}
	if cleared > 0 {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"cleared": cleared,
		}).Info("Attendance cleared for holidays")
	}
	return inserted, nil
}
