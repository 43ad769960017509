package service

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound = errors.New("пользователь не найден")
	ErrUnknownSlot  = errors.New("такой пары нет в расписании")
	ErrSlotNotOnDay = errors.New("в этот день недели такой пары нет")
	ErrBeforeTerm   = errors.New("дата раньше начала семестра")
	ErrFutureDate   = errors.New("нельзя отметить посещение в будущем")
	ErrHolidayDate  = errors.New("этот день отмечен как выходной")
	ErrBadStatus    = errors.New("статус должен быть PRESENT или ABSENT")
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}
