package repository

import (
	"errors"
	"time"

	"class-attendance-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	Upsert(record *models.AttendanceRecord) error
	UpsertMany(records []*models.AttendanceRecord) error
	ListByUser(userID uint) ([]*models.AttendanceRecord, error)
	ListByUserAndDate(userID uint, date string) ([]*models.AttendanceRecord, error)
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.AttendanceRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_records table")
		return nil, err
	}

	logger.Info("Attendance repository initialized")
	return &GormAttendanceRepository{db: db, logger: logger}, nil
}

// Upsert создает отметку или меняет статус существующей
func (r *GormAttendanceRepository) Upsert(record *models.AttendanceRecord) error {
	return r.upsert(r.db, record)
}

// UpsertMany сохраняет отметки в одной транзакции: либо все, либо ни одной
func (r *GormAttendanceRepository) UpsertMany(records []*models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := r.upsert(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("count", len(records)).Error("Attendance batch rolled back")
	}
	return err
}

func (r *GormAttendanceRepository) upsert(tx *gorm.DB, record *models.AttendanceRecord) error {
	if !record.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"user_id": record.UserID,
			"slot_id": record.SlotID,
			"date":    record.Date,
		}).Warn("Invalid attendance record")
		return errors.New("некорректные данные отметки")
	}

	record.UpdatedAt = time.Now()
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "slot_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert attendance record")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": record.UserID,
		"slot_id": record.SlotID,
		"date":    record.Date,
		"status":  record.Status,
	}).Debug("Attendance record saved")
	return nil
}

// ListByUser - все отметки пользователя в порядке изменения (последняя - актуальная)
func (r *GormAttendanceRepository) ListByUser(userID uint) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to list attendance records")
		return nil, err
	}
	return records, nil
}

func (r *GormAttendanceRepository) ListByUserAndDate(userID uint, date string) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	err := r.db.Where("user_id = ? AND date = ?", userID, date).
		Order("updated_at ASC, id ASC").
		Find(&records).Error
	return records, err
}
