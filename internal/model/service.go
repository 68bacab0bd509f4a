package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StaffingTarget is the minimum headcount required per shift type per day
// type (spec.md §3: "6 integers: {morning, afternoon, night} x
// {weekday, weekend-or-holiday}").
type StaffingTarget struct {
	Weekday        int `json:"weekday"`
	WeekendHoliday int `json:"weekend_holiday"`
}

// For returns the applicable target for a day, given whether it is a weekend
// or holiday.
func (t StaffingTarget) For(weekendOrHoliday bool) int {
	if weekendOrHoliday {
		return t.WeekendHoliday
	}
	return t.Weekday
}

// StaffingTargets bundles the per-shift-type targets for a Service.
type StaffingTargets struct {
	Morning   StaffingTarget `json:"morning"`
	Afternoon StaffingTarget `json:"afternoon"`
	Night     StaffingTarget `json:"night"`
}

// RulesOverride carries the subset of internal/scheduling.RulesConfig a
// Service wants to override; zero-value fields mean "use the default". A
// *int/*float64 would work too, but scheduling.RulesConfig.WithOverride treats 0 as
// "unset" for every one of these (none of them is legitimately 0).
type RulesOverride struct {
	MaxConsecutiveWorkDays                  int     `json:"max_consecutive_work_days,omitempty"`
	PreferredConsecutiveWorkDays            int     `json:"preferred_consecutive_work_days,omitempty"`
	MaxConsecutiveDaysOff                   int     `json:"max_consecutive_days_off,omitempty"`
	PreferredConsecutiveDaysOff             int     `json:"preferred_consecutive_days_off,omitempty"`
	MinConsecutiveDaysOffRequiredBeforeWork int     `json:"min_consecutive_days_off_required_before_work,omitempty"`
	MinimumRestHoursBetweenShifts           float64 `json:"minimum_rest_hours_between_shifts,omitempty"`
	DefaultTargetCompleteWeekendsOff        int     `json:"default_target_complete_weekends_off,omitempty"`
}

// Service is the organizational unit a schedule is generated for (a ward, ICU,
// or department in a hospital-like organization).
type Service struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID         uuid.UUID                             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name             string                                `gorm:"type:varchar(255);not null" json:"name"`
	EnableNightShift bool                                  `gorm:"default:false" json:"enable_night_shift"`
	Staffing         datatypes.JSONType[StaffingTargets]   `gorm:"column:staffing" json:"staffing"`

	// TargetCompleteWeekendsOff, when > 0, is a per-month, per-employee soft
	// target (spec.md §3); 0 means "use RulesConfig.DefaultTargetCompleteWeekendsOff".
	TargetCompleteWeekendsOff int `gorm:"default:0" json:"target_complete_weekends_off"`

	// RulesOverride, when its fields are non-zero, overrides individual
	// RulesConfig fields for this service; see internal/scheduling.RulesConfig.
	RulesOverride datatypes.JSONType[RulesOverride] `gorm:"column:rules_override" json:"rules_override"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Service) TableName() string {
	return "schedule_services"
}
