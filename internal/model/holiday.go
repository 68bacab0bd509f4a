package model

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a public/statutory holiday applicable to a Service's calendar.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	HolidayDate time.Time `gorm:"type:date;not null" json:"holiday_date"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Holiday) TableName() string {
	return "schedule_holidays"
}

// HolidaySet is a date-set membership test built once per generation run (the
// generator and evaluator both consult it many times per attempt).
type HolidaySet struct {
	dates map[time.Time]struct{}
}

// NewHolidaySet builds a HolidaySet from a slice of Holiday rows.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	dates := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		dates[truncateDay(h.HolidayDate)] = struct{}{}
	}
	return HolidaySet{dates: dates}
}

// Contains reports whether date (compared by calendar day) is a holiday.
func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s.dates[truncateDay(date)]
	return ok
}
