package scheduling

import (
	"time"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// isWeekend reports whether date is a Saturday or Sunday.
func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// isHoliday reports whether date is present in the holiday set.
func isHoliday(date time.Time, holidays model.HolidaySet) bool {
	return holidays.Contains(date)
}

// isWeekendOrHoliday is the day classification the staffing targets and
// weekend-preference ranking keys are defined against.
func isWeekendOrHoliday(date time.Time, holidays model.HolidaySet) bool {
	return isWeekend(date) || isHoliday(date, holidays)
}

// shiftInstant builds the absolute instant at which a shift's time-of-day
// boundary falls, given the calendar day it is anchored to. For the morning
// and afternoon codes this is the same day; for night shifts the end instant
// falls on the following day (the shift crosses midnight).
func shiftInstant(date time.Time, offset time.Duration, crossesMidnightEnd bool) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	instant := day.Add(offset)
	if crossesMidnightEnd {
		instant = instant.AddDate(0, 0, 1)
	}
	return instant
}

// shiftStartInstant returns the instant a work shift starts on the given day.
func shiftStartInstant(date time.Time, code model.ShiftCode) (time.Time, bool) {
	start, _, _, ok := code.Times()
	if !ok {
		return time.Time{}, false
	}
	return shiftInstant(date, start, false), true
}

// shiftEndInstant returns the instant a work shift ends, accounting for the
// night shift crossing midnight (spec.md §4.1, §9 "Cross-midnight N").
func shiftEndInstant(date time.Time, code model.ShiftCode) (time.Time, bool) {
	_, end, crosses, ok := code.Times()
	if !ok {
		return time.Time{}, false
	}
	return shiftInstant(date, end, crosses), true
}

// canAssignShiftDueToRest reports whether starting code on date respects
// RulesConfig.MinimumRestHoursBetweenShifts against the employee's last
// worked shift's end instant. A nil lastWorkEnd means no prior shift on
// record - always eligible.
func canAssignShiftDueToRest(date time.Time, code model.ShiftCode, lastWorkEnd *time.Time, minRestHours float64) bool {
	if lastWorkEnd == nil {
		return true
	}
	start, ok := shiftStartInstant(date, code)
	if !ok {
		return true
	}
	gap := start.Sub(*lastWorkEnd)
	return gap >= time.Duration(minRestHours*float64(time.Hour))
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}
