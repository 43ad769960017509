package repository

import (
	"errors"

	"class-attendance-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HolidayRepository interface {
	AddClearingAttendance(holidays []*models.Holiday) (inserted int64, cleared int64, err error)
	GetByUserAndDate(userID uint, date string) (*models.Holiday, error)
	ListByUser(userID uint) ([]*models.Holiday, error)
	Delete(userID uint, date string) error
}

type GormHolidayRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormHolidayRepository(db *gorm.DB) (*GormHolidayRepository, error) {
	logger := newLogger()

	// Автомиграция для таблицы holidays
	if err := db.AutoMigrate(&models.Holiday{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate holidays table")
		return nil, err
	}

	return &GormHolidayRepository{db: db, logger: logger}, nil
}

// AddClearingAttendance добавляет выходные и удаляет отметки за эти дни
// в одной транзакции. Существующие даты пропускаются, отметки за них
// все равно удаляются
func (r *GormHolidayRepository) AddClearingAttendance(holidays []*models.Holiday) (int64, int64, error) {
	if len(holidays) == 0 {
		return 0, 0, nil
	}

	var inserted, cleared int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&holidays)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected

		for _, h := range holidays {
			result := tx.Where("user_id = ? AND date = ?", h.UserID, h.Date).Delete(&models.AttendanceRecord{})
			if result.Error != nil {
				return result.Error
			}
			cleared += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("requested", len(holidays)).Error("Failed to add holidays")
		return 0, 0, err
	}

	r.logger.WithFields(logrus.Fields{
		"requested": len(holidays),
		"inserted":  inserted,
		"cleared":   cleared,
	}).Info("Holidays added")
	return inserted, cleared, nil
}

func (r *GormHolidayRepository) GetByUserAndDate(userID uint, date string) (*models.Holiday, error) {
	var holiday models.Holiday
	result := r.db.Where("user_id = ? AND date = ?", userID, date).First(&holiday)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &holiday, nil
}

func (r *GormHolidayRepository) ListByUser(userID uint) ([]*models.Holiday, error) {
	var holidays []*models.Holiday
	err := r.db.Where("user_id = ?", userID).Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *GormHolidayRepository) Delete(userID uint, date string) error {
	return r.db.Where("user_id = ? AND date = ?", userID, date).Delete(&models.Holiday{}).Error
}
