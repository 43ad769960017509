package models

import (
	"time"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/pkg/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord - отметка о посещении пары. Одна на (пользователь, слот, дата)
type AttendanceRecord struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendance_user_slot_date,priority:1;index" json:"user_id"`
	SlotID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_attendance_user_slot_date,priority:2" json:"slot_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_user_slot_date,priority:3;index" json:"date"`
	Status    string    `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate хук: выдает UUID, если id не задан
func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// IsValid проверяет обязательные поля
func (r *AttendanceRecord) IsValid() bool {
	if r.UserID == 0 || r.SlotID == "" {
		return false
	}
	if _, err := dateutil.Parse(r.Date); err != nil {
		return false
	}
	return attendance.Status(r.Status).Valid()
}

// ToDomain переводит строку в тип ядра. Некорректная дата - ValidationError
func (r *AttendanceRecord) ToDomain() (attendance.Record, error) {
	d, err := dateutil.Parse(r.Date)
	if err != nil {
		return attendance.Record{}, err
	}
	return attendance.Record{
		ID:      r.ID,
		OwnerID: r.UserID,
		SlotID:  r.SlotID,
		Date:    d,
		Status:  attendance.Status(r.Status),
	}, nil
}

// RecordsToDomain сохраняет порядок входа: от него зависит, какой дубликат победит
func RecordsToDomain(rows []*AttendanceRecord) ([]attendance.Record, error) {
	out := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		r, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
