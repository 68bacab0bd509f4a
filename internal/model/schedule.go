package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AIShift is a single (employee, date) output atom (spec.md §3). For
// rest/leave/holiday days StartTime/EndTime are empty and the code lives in
// the first token of Notes; for work shifts StartTime/EndTime are "HH:MM" and
// Notes is explanatory free text (never parsed - see model.RecoverCode for
// the one place the note-prefix fallback is used).
type AIShift struct {
	Date         time.Time `json:"date"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	ServiceName  string    `json:"service_name"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Notes        string    `json:"notes"`
}

// Code recovers this shift's ShiftCode via the §6 recovery algorithm.
func (s AIShift) Code() ShiftCode {
	return RecoverCode(s.Notes, s.StartTime)
}

// Severity of a ScheduleViolation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category of a ScheduleViolation.
type Category string

const (
	CategoryServiceRule       Category = "serviceRule"
	CategoryEmployeeWellbeing Category = "employeeWellbeing"
)

// ScheduleViolation is one rule-evaluator finding.
type ScheduleViolation struct {
	EmployeeName string    `json:"employee_name,omitempty"`
	Date         *string   `json:"date,omitempty"` // YYYY-MM-DD
	ShiftCode    ShiftCode `json:"shift_code,omitempty"`
	Rule         string    `json:"rule"`
	Details      string    `json:"details"`
	Severity     Severity  `json:"severity"`
	Category     Category  `json:"category"`
}

// ScoreBreakdown is a view of the overall score restricted to a rule
// category; each subscore clamps independently to [0,100].
type ScoreBreakdown struct {
	ServiceRules      float64 `json:"service_rules"`
	EmployeeWellbeing float64 `json:"employee_wellbeing"`
}

// ScheduleStatus is the persistence lifecycle state of a MonthlySchedule
// (spec.md §6): at most one published row per (tenant, service, year, month).
// Publishing atomically archives the previous published row and promotes the
// draft row itself to published, with version one past the archived row's; no
// separate archived copy of the draft is kept.
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusPublished ScheduleStatus = "published"
	StatusArchived  ScheduleStatus = "archived"
)

// MonthlySchedule is the generation output, persisted.
type MonthlySchedule struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ServiceID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	ServiceName string         `gorm:"type:varchar(255);not null" json:"service_name"`
	Year        int            `gorm:"not null;index:idx_schedule_period" json:"year"`
	Month       int            `gorm:"not null;index:idx_schedule_period" json:"month"`

	Shifts     datatypes.JSONSlice[AIShift]           `gorm:"column:shifts" json:"shifts"`
	Score      float64                                `json:"score"`
	Breakdown  datatypes.JSONType[ScoreBreakdown]      `gorm:"column:breakdown" json:"breakdown"`
	Violations datatypes.JSONSlice[ScheduleViolation]  `gorm:"column:violations" json:"violations"`
	SummaryText string                                `gorm:"type:text" json:"summary_text"`

	Status  ScheduleStatus `gorm:"type:varchar(20);not null;default:'draft';index:idx_schedule_period" json:"status"`
	Version int            `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

func (MonthlySchedule) TableName() string {
	return "monthly_schedules"
}
