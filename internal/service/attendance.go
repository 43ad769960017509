package service

import (
	"fmt"
	"time"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/internal/models"
	"class-attendance-bot/internal/repository"
	"class-attendance-bot/internal/timetable"
	"class-attendance-bot/pkg/dateutil"

	"github.com/sirupsen/logrus"
)

type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	holidayRepo    repository.HolidayRepository
	engine         *attendance.Engine
	logger         *logrus.Logger
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	holidayRepo repository.HolidayRepository,
	engine *attendance.Engine,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		engine:         engine,
		logger:         newLogger(),
	}
}

// SlotMark - пара дня и ее текущая отметка (пустой Status - не отмечена)
type SlotMark struct {
	Slot   timetable.Slot
	Label  string
	Status attendance.Status
}

// DayView - расписание дня с отметками пользователя
type DayView struct {
	Day   attendance.Day
	Slots []SlotMark
}

func (s *AttendanceService) Engine() *attendance.Engine {
	return s.engine
}

// Mark сохраняет отметку о посещении пары. Повторная отметка меняет статус
func (s *AttendanceService) Mark(userID uint, date dateutil.Date, slotID string, status attendance.Status, today dateutil.Date) error {
	log := s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    date.String(),
		"slot_id": slotID,
		"status":  status,
	})

	if err := s.checkDay(userID, date, status, today); err != nil {
		return err
	}
	slot, ok := s.engine.Catalog().Slot(slotID)
	if !ok {
		log.Warn("Attempt to mark unknown slot")
		return ErrUnknownSlot
	}
	if slot.Weekday != date.Weekday() {
		return ErrSlotNotOnDay
	}

	if err := s.attendanceRepo.Upsert(newRecord(userID, date, slotID, status)); err != nil {
		log.WithError(err).Error("Failed to save attendance")
		return fmt.Errorf("ошибка сохранения отметки: %w", err)
	}

	log.Info("Attendance marked")
	return nil
}

// MarkDay отмечает все пары дня одним статусом и возвращает число отмеченных.
// При ошибке не сохраняется ни одна отметка
func (s *AttendanceService) MarkDay(userID uint, date dateutil.Date, status attendance.Status, today dateutil.Date) (int, error) {
	if err := s.checkDay(userID, date, status, today); err != nil {
		return 0, err
	}

	slots := s.engine.Catalog().SlotsFor(date.Weekday())
	records := make([]*models.AttendanceRecord, 0, len(slots))
	for _, slot := range slots {
		records = append(records, newRecord(userID, date, slot.ID, status))
	}
	if err := s.attendanceRepo.UpsertMany(records); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"date":    date.String(),
		}).Error("Failed to save day attendance")
		return 0, fmt.Errorf("ошибка сохранения отметок: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    date.String(),
		"status":  status,
		"slots":   len(records),
	}).Info("Day attendance marked")
	return len(records), nil
}

// checkDay - проверки, общие для отметки пары и всего дня
func (s *AttendanceService) checkDay(userID uint, date dateutil.Date, status attendance.Status, today dateutil.Date) error {
	if !status.Valid() {
		return ErrBadStatus
	}
	if date.Before(s.engine.TermStart()) {
		return ErrBeforeTerm
	}
	if date.After(today) {
		return ErrFutureDate
	}

	holiday, err := s.holidayRepo.GetByUserAndDate(userID, date.String())
	if err != nil {
		return fmt.Errorf("ошибка проверки выходного: %w", err)
	}
	if holiday != nil {
		return ErrHolidayDate
	}
	return nil
}

func newRecord(userID uint, date dateutil.Date, slotID string, status attendance.Status) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		UserID: userID,
		SlotID: slotID,
		Date:   date.String(),
		Status: string(status),
	}
}

// Overview - процент посещаемости и запас пропусков на сегодня
func (s *AttendanceService) Overview(userID uint, today dateutil.Date) (attendance.Report, error) {
	records, holidays, err := s.snapshot(userID)
	if err != nil {
		return attendance.Report{}, err
	}
	return s.engine.Stats(records, holidays, today), nil
}

// Missing - прошедшие учебные дни без отметок, свежие первыми
func (s *AttendanceService) Missing(userID uint, today dateutil.Date) ([]string, error) {
	records, holidays, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return s.engine.FindMissingDates(records, holidays, today), nil
}

// Day возвращает пары дня с отметками
func (s *AttendanceService) Day(userID uint, date, today dateutil.Date) (DayView, error) {
	rows, err := s.attendanceRepo.ListByUserAndDate(userID, date.String())
	if err != nil {
		return DayView{}, fmt.Errorf("ошибка загрузки отметок: %w", err)
	}
	records, err := models.RecordsToDomain(rows)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Corrupt attendance date")
		return DayView{}, err
	}

	var holidays []attendance.Holiday
	holiday, err := s.holidayRepo.GetByUserAndDate(userID, date.String())
	if err != nil {
		return DayView{}, fmt.Errorf("ошибка загрузки выходных: %w", err)
	}
	if holiday != nil {
		h, err := holiday.ToDomain()
		if err != nil {
			return DayView{}, err
		}
		holidays = append(holidays, h)
	}

	view := DayView{Day: s.engine.DayStatus(date, records, holidays, today)}
	marks := attendance.Latest(records)
	catalog := s.engine.Catalog()
	for _, slot := range catalog.SlotsFor(date.Weekday()) {
		mark := SlotMark{Slot: slot, Label: catalog.Label(slot)}
		if r, ok := marks.Get(date, slot.ID); ok {
			mark.Status = r.Status
		}
		view.Slots = append(view.Slots, mark)
	}
	return view, nil
}

// Month - состояние каждого дня месяца
func (s *AttendanceService) Month(userID uint, year int, month time.Month, today dateutil.Date) ([]attendance.Day, error) {
	records, holidays, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	return s.engine.Month(year, month, records, holidays, today), nil
}

// snapshot загружает отметки и выходные пользователя одним срезом
func (s *AttendanceService) snapshot(userID uint) ([]attendance.Record, []attendance.Holiday, error) {
	rows, err := s.attendanceRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки отметок: %w", err)
	}
	records, err := models.RecordsToDomain(rows)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Corrupt attendance date")
		return nil, nil, err
	}

	holidayRows, err := s.holidayRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки выходных: %w", err)
	}
	holidays, err := models.HolidaysToDomain(holidayRows)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Corrupt holiday date")
		return nil, nil, err
	}

	return records, holidays, nil
}
