package scheduling

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// openNeed tracks the day's remaining staffing requirement per work code.
type openNeed map[model.ShiftCode]int

func dayOpenNeed(service model.Service, weekendOrHoliday bool) openNeed {
	staffing := service.Staffing.Data
	need := openNeed{
		model.ShiftMorning:   staffing.Morning.For(weekendOrHoliday),
		model.ShiftAfternoon: staffing.Afternoon.For(weekendOrHoliday),
	}
	if service.EnableNightShift {
		need[model.ShiftNight] = staffing.Night.For(weekendOrHoliday)
	}
	return need
}

// construct runs a single forward sweep over the target month (spec.md
// §4.4), mutating states in place, and returns the full month's AIShifts.
func construct(input GenerateInput, states map[uuid.UUID]*EmployeeState, rng *rand.Rand) []model.AIShift {
	daysInMonth := time.Date(input.Year, time.Month(input.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	shifts := make([]model.AIShift, 0, len(input.Employees)*daysInMonth)

	// byEmployeeDate lets Phase E's weekend-target annotation consult an
	// already-recorded Saturday shift when processing the following Sunday.
	byEmployeeDate := make(map[uuid.UUID]map[string]model.AIShift, len(input.Employees))
	for _, e := range input.Employees {
		byEmployeeDate[e.ID] = make(map[string]model.AIShift)
	}

	record := func(emp model.Employee, date time.Time, start, end string, notes string) model.AIShift {
		s := model.AIShift{
			Date:         date,
			EmployeeID:   emp.ID,
			EmployeeName: emp.DisplayName,
			ServiceName:  input.Service.Name,
			StartTime:    start,
			EndTime:      end,
			Notes:        notes,
		}
		shifts = append(shifts, s)
		byEmployeeDate[emp.ID][dateKey(date)] = s
		return s
	}

	targetWeekendsOff := input.Service.TargetCompleteWeekendsOff
	if targetWeekendsOff == 0 {
		targetWeekendsOff = input.Rules.DefaultTargetCompleteWeekendsOff
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(input.Year, time.Month(input.Month), day, 0, 0, 0, 0, time.UTC)
		weekend := isWeekend(date)
		holiday := isHoliday(date, input.Holidays)
		weekendOrHoliday := weekend || holiday
		weekday := model.WeekdayFromTime(date)

		processed := make(map[uuid.UUID]bool, len(input.Employees))
		need := dayOpenNeed(input.Service, weekendOrHoliday)

		// Phase A - fixed weekday patterns.
		for _, emp := range input.Employees {
			if emp.WorkPattern != model.PatternMonFriMorning && emp.WorkPattern != model.PatternMonFriAfternoon {
				continue
			}
			st := states[emp.ID]

			switch {
			case !weekend && !holiday:
				code := model.ShiftMorning
				if emp.WorkPattern == model.PatternMonFriAfternoon {
					code = model.ShiftAfternoon
				}
				if !canAssignShiftDueToRest(date, code, st.LastWorkShiftEnd, input.Rules.MinimumRestHoursBetweenShifts) {
					// Falls through to a later phase or ends as D (spec.md §4.4).
					continue
				}
				start, end, crosses, _ := code.Times()
				endInstant := shiftInstant(date, end, crosses)
				record(emp, date, model.ClockString(start), model.ClockString(end), string(code)+" (Fixed Pattern)")
				st.applyWork(code, endInstant)
				processed[emp.ID] = true
			case !weekend && holiday:
				record(emp, date, "", "", "F (Holiday — Fixed Pattern)")
				st.applyRest(model.ShiftHoliday)
				processed[emp.ID] = true
			default: // weekend
				record(emp, date, "", "", "D (Rest — Fixed Pattern)")
				st.applyRest(model.ShiftRestDay)
				processed[emp.ID] = true
			}
		}

		// Phase B - date-ranged fixed assignments (leaves).
		for _, emp := range input.Employees {
			if processed[emp.ID] {
				continue
			}
			assignments, err := emp.FixedAssignmentsList()
			if err != nil || len(assignments) == 0 {
				continue
			}
			leave, ok := assignments.LeaveForDate(date)
			if !ok {
				continue
			}
			st := states[emp.ID]
			notes := string(leave.Kind)
			if leave.Description != "" {
				notes += " (" + leave.Description + ")"
			}
			record(emp, date, "", "", notes)
			st.applyRest(leave.Kind)
			processed[emp.ID] = true
		}

		// Phase C - fixed weekly preferences (standard-rotation only).
		for _, emp := range input.Employees {
			if processed[emp.ID] {
				continue
			}
			if emp.WorkPattern != model.PatternStandardRotation {
				continue
			}
			prefs, err := emp.FixedWeeklyPrefs()
			if err != nil || len(prefs) == 0 {
				continue
			}
			entry, ok := prefs.ForDay(weekday)
			if !ok {
				continue
			}
			st := states[emp.ID]

			if entry.ShiftCode == model.ShiftRestDay {
				if holiday {
					record(emp, date, "", "", "F (Holiday — Fixed Rest)")
					st.applyRest(model.ShiftHoliday)
				} else {
					record(emp, date, "", "", "D (Fixed Weekly)")
					st.applyRest(model.ShiftRestDay)
				}
				processed[emp.ID] = true
				continue
			}

			code := entry.ShiftCode
			if !code.IsWork() {
				continue
			}
			if code == model.ShiftNight && !input.Service.EnableNightShift {
				continue
			}
			if !canAssignShiftDueToRest(date, code, st.LastWorkShiftEnd, input.Rules.MinimumRestHoursBetweenShifts) {
				continue
			}

			if !weekend && holiday {
				record(emp, date, "", "", "F (Holiday — Would Cover "+string(code)+")")
				st.applyRest(model.ShiftHoliday)
				processed[emp.ID] = true
				continue
			}

			start, end, crosses, _ := code.Times()
			endInstant := shiftInstant(date, end, crosses)
			record(emp, date, model.ClockString(start), model.ClockString(end), string(code)+" (Fixed Weekly)")
			st.applyWork(code, endInstant)
			if n := need[code]; n > 0 {
				need[code] = n - 1
			}
			processed[emp.ID] = true
		}

		// Phase D - greedy fill of open staffing.
		fillOrder := []model.ShiftCode{model.ShiftMorning, model.ShiftAfternoon}
		if input.Service.EnableNightShift {
			fillOrder = append(fillOrder, model.ShiftNight)
		}
		for _, code := range fillOrder {
			for need[code] > 0 {
				pool := buildCandidatePool(input.Employees, processed, states, date, code, input.Rules)
				if len(pool) == 0 {
					break
				}
				ranked := rankCandidates(pool, weekendOrHoliday, targetWeekendsOff, input.Rules, rng)
				pick := ranked[0]

				var emp model.Employee
				for _, e := range input.Employees {
					if e.ID == pick.employeeID {
						emp = e
						break
					}
				}

				start, end, crosses, _ := code.Times()
				endInstant := shiftInstant(date, end, crosses)
				record(emp, date, model.ClockString(start), model.ClockString(end), string(code)+" (Greedy Fill)")
				pick.state.applyWork(code, endInstant)
				need[code]--
				processed[emp.ID] = true
			}
		}

		// Phase E - default rest for every employee still unprocessed.
		for _, emp := range input.Employees {
			if processed[emp.ID] {
				continue
			}
			st := states[emp.ID]
			code := model.ShiftRestDay
			notes := "D (Rest)"
			if holiday {
				code = model.ShiftHoliday
				notes = "F (Holiday)"
			}

			if weekend && date.Weekday() == time.Sunday {
				saturday := date.AddDate(0, 0, -1)
				if satShift, ok := byEmployeeDate[emp.ID][dateKey(saturday)]; ok && satShift.Code().IsRest() {
					if holiday {
						notes = "F (Weekend Target — Holiday)"
					} else {
						notes = "D (Weekend Target)"
					}
				}
			}

			record(emp, date, "", "", notes)
			st.applyRest(code)
			processed[emp.ID] = true
		}
	}

	return shifts
}

// buildCandidatePool applies Phase D step 1's hard filters (spec.md §4.4).
func buildCandidatePool(employees []model.Employee, processed map[uuid.UUID]bool, states map[uuid.UUID]*EmployeeState, date time.Time, code model.ShiftCode, rules RulesConfig) []candidate {
	pool := make([]candidate, 0, len(employees))
	for _, emp := range employees {
		if emp.WorkPattern != model.PatternStandardRotation {
			continue
		}
		if processed[emp.ID] {
			continue
		}
		st := states[emp.ID]

		if !canAssignShiftDueToRest(date, code, st.LastWorkShiftEnd, rules.MinimumRestHoursBetweenShifts) {
			continue
		}
		if st.ConsecutiveRestDays > 0 && st.ConsecutiveRestDays < rules.MinConsecutiveDaysOffRequiredBeforeWork {
			continue
		}
		if st.ConsecutiveWorkDays >= rules.MaxConsecutiveWorkDays {
			continue
		}

		pool = append(pool, candidate{
			employeeID:         emp.ID,
			prefersWeekendWork: emp.PrefersWeekendWork,
			state:              st,
		})
	}
	return pool
}
