package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WorkPattern classifies an employee's scheduling style.
type WorkPattern string

const (
	// PatternStandardRotation employees are fully scheduled by the generator.
	PatternStandardRotation WorkPattern = "standardRotation"
	// PatternMonFriMorning employees work M-F mornings only (Phase A).
	PatternMonFriMorning WorkPattern = "mondayToFridayMorning"
	// PatternMonFriAfternoon employees work M-F afternoons only (Phase A).
	PatternMonFriAfternoon WorkPattern = "mondayToFridayAfternoon"
)

// Weekday is a normalized day-of-week enum independent of time.Weekday's
// int encoding, so FixedWeekly JSON keys are stable across Go versions.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayFromTime converts a time.Time to the normalized Weekday enum.
func WeekdayFromTime(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// IsWeekend reports whether the weekday is Saturday or Sunday.
func (d Weekday) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// FixedWeeklyEntry is one day-of-week -> preferred-shift mapping consulted in
// generation Phase C. ShiftCode is one of {M, T, N, D}; D means "prefers rest".
type FixedWeeklyEntry struct {
	Day       Weekday   `json:"day"`
	ShiftCode ShiftCode `json:"shiftCode"`
}

// FixedWeekly is the ordered list of an employee's fixed weekly preferences.
type FixedWeekly []FixedWeeklyEntry

// ForDay returns the entry for the given weekday, if any.
func (f FixedWeekly) ForDay(d Weekday) (FixedWeeklyEntry, bool) {
	for _, e := range f {
		if e.Day == d {
			return e, true
		}
	}
	return FixedWeeklyEntry{}, false
}

// FixedAssignment is a date-ranged leave that hard-overrides any other
// assignment within its range. Kind is one of {LAO, LM, D}.
type FixedAssignment struct {
	Kind        ShiftCode `json:"kind"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
}

// Covers reports whether date (compared by calendar day) falls within the
// assignment's [Start, End] range, inclusive.
func (a FixedAssignment) Covers(date time.Time) bool {
	d := truncateDay(date)
	s := truncateDay(a.Start)
	e := truncateDay(a.End)
	return !d.Before(s) && !d.After(e)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FixedAssignments is the JSON-stored list of an employee's date-ranged leaves.
type FixedAssignments []FixedAssignment

// LeaveForDate returns the first fixed assignment of kind LAO or LM covering
// date, if any (Phase B only consults leave kinds, never D).
func (fa FixedAssignments) LeaveForDate(date time.Time) (FixedAssignment, bool) {
	for _, a := range fa {
		if a.Kind != ShiftLeaveLAO && a.Kind != ShiftLeaveLM {
			continue
		}
		if a.Covers(date) {
			return a, true
		}
	}
	return FixedAssignment{}, false
}

// Employee is a member of a Service's roster.
type Employee struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ServiceID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"service_id"`
	DisplayName        string      `gorm:"type:varchar(255);not null" json:"display_name"`
	WorkPattern        WorkPattern `gorm:"type:varchar(30);not null;default:'standardRotation'" json:"work_pattern"`
	PrefersWeekendWork bool        `gorm:"default:false" json:"prefers_weekend_work"`

	// FixedWeeklyJSON and FixedAssignmentsRaw are small, bounded per-employee
	// documents read in full on every generation run - no join tables.
	FixedWeeklyJSON     datatypes.JSON `gorm:"column:fixed_weekly;type:jsonb" json:"-"`
	FixedAssignmentsRaw datatypes.JSON `gorm:"column:fixed_assignments;type:jsonb" json:"-"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Employee) TableName() string {
	return "schedule_employees"
}

// FixedWeeklyPrefs unmarshals the stored JSON into typed entries. Returns nil
// if unset.
func (e *Employee) FixedWeeklyPrefs() (FixedWeekly, error) {
	return unmarshalJSONSlice[FixedWeeklyEntry](e.FixedWeeklyJSON)
}

// FixedAssignmentsList unmarshals the stored JSON into typed assignments.
func (e *Employee) FixedAssignmentsList() (FixedAssignments, error) {
	return unmarshalJSONSlice[FixedAssignment](e.FixedAssignmentsRaw)
}
