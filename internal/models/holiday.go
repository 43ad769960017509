package models

import (
	"time"

	"class-attendance-bot/internal/attendance"
	"class-attendance-bot/pkg/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday - день без занятий, отмеченный пользователем
type Holiday struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_holiday_user_date,priority:1" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_holiday_user_date,priority:2" json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate хук: выдает UUID, если id не задан
func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

func (Holiday) TableName() string {
	return "holidays"
}

func (h *Holiday) ToDomain() (attendance.Holiday, error) {
	d, err := dateutil.Parse(h.Date)
	if err != nil {
		return attendance.Holiday{}, err
	}
	return attendance.Holiday{ID: h.ID, OwnerID: h.UserID, Date: d}, nil
}

func HolidaysToDomain(rows []*Holiday) ([]attendance.Holiday, error) {
	out := make([]attendance.Holiday, 0, len(rows))
	for _, row := range rows {
		h, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
