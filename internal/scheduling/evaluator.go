package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// evaluate replays a month's shifts day by day, scoring staffing and
// wellbeing rules independently (spec.md §4.5). It never mutates the
// generator's state map; it builds and walks its own.
func evaluate(input GenerateInput, shifts []model.AIShift, rules RulesConfig) (float64, model.ScoreBreakdown, []model.ScheduleViolation) {
	if len(input.Employees) == 0 {
		return 0, model.ScoreBreakdown{}, []model.ScheduleViolation{
			{Rule: RuleNoEmployees, Details: "no employees assigned to this service", Severity: model.SeverityError, Category: model.CategoryServiceRule},
		}
	}

	targetMonthStart := time.Date(input.Year, time.Month(input.Month), 1, 0, 0, 0, 0, time.UTC)
	states := newStateMap(input.Employees, input.PrevShifts, targetMonthStart, rules)

	byDate := indexByDate(shifts)
	daysInMonth := time.Date(input.Year, time.Month(input.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	penalties := rules.ScorePenalties
	serviceScore := 100.0
	wellbeingScore := 100.0
	overall := 100.0
	var violations []model.ScheduleViolation

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(input.Year, time.Month(input.Month), day, 0, 0, 0, 0, time.UTC)
		weekend := isWeekend(date)
		holiday := isHoliday(date, input.Holidays)
		weekendOrHoliday := weekend || holiday
		dateStr := date.Format("2006-01-02")

		dayShifts := byDate[dateKey(date)]
		staffed := openNeed{}
		for _, s := range dayShifts {
			code := s.Code()
			if code.IsWork() {
				staffed[code]++
			}
		}

		need := dayOpenNeed(input.Service, weekendOrHoliday)
		for code, required := range need {
			have := staffed[code]
			if have < required {
				shortfall := required - have
				deduction := float64(shortfall) * penalties.StaffingShortagePerEmployee
				serviceScore -= deduction
				overall -= deduction
				v := dateStr
				violations = append(violations, model.ScheduleViolation{
					Date:     &v,
					ShiftCode: code,
					Rule:     RuleStaffingShortage,
					Details:  fmt.Sprintf("needed %d %s shift(s), staffed %d", required, code, have),
					Severity: model.SeverityError,
					Category: model.CategoryServiceRule,
				})
			}
		}

		for _, emp := range input.Employees {
			st := states[emp.ID]
			s, ok := byDate[dateKey(date)][emp.ID]
			code := model.ShiftRestDay
			if ok {
				code = s.Code()
			}

			if code.IsWork() {
				if st.LastWorkShiftEnd != nil {
					start, _, _, timeOK := code.Times()
					if timeOK {
						startInstant := shiftInstant(date, start, false)
						gap := startInstant.Sub(*st.LastWorkShiftEnd)
						minGap := time.Duration(rules.MinimumRestHoursBetweenShifts * float64(time.Hour))
						if gap < minGap {
							wellbeingScore -= penalties.MinRestBetweenShifts
							overall -= penalties.MinRestBetweenShifts
							v := dateStr
							violations = append(violations, model.ScheduleViolation{
								EmployeeName: emp.DisplayName,
								Date:         &v,
								ShiftCode:    code,
								Rule:         RuleMinRestBetweenShifts,
								Details:      fmt.Sprintf("only %.1fh rest before this shift", gap.Hours()),
								Severity:     model.SeverityError,
								Category:     model.CategoryEmployeeWellbeing,
							})
						}
					}
				}
				if st.ConsecutiveRestDays > 0 && st.ConsecutiveRestDays < rules.MinConsecutiveDaysOffRequiredBeforeWork {
					serviceScore -= penalties.MinRestBeforeWork
					overall -= penalties.MinRestBeforeWork
					v := dateStr
					violations = append(violations, model.ScheduleViolation{
						EmployeeName: emp.DisplayName,
						Date:         &v,
						ShiftCode:    code,
						Rule:         RuleMinRestBeforeWork,
						Details:      fmt.Sprintf("only %d day(s) off before returning to work", st.ConsecutiveRestDays),
						Severity:     model.SeverityError,
						Category:     model.CategoryServiceRule,
					})
				}

				willBeConsecutive := st.ConsecutiveWorkDays + 1
				if st.LastShiftCode.IsWork() && willBeConsecutive > rules.MaxConsecutiveWorkDays {
					serviceScore -= penalties.MaxConsecutiveWorkDays
					overall -= penalties.MaxConsecutiveWorkDays
					v := dateStr
					violations = append(violations, model.ScheduleViolation{
						EmployeeName: emp.DisplayName,
						Date:         &v,
						ShiftCode:    code,
						Rule:         RuleMaxConsecutiveWorkDays,
						Details:      fmt.Sprintf("%d consecutive work days exceeds the %d-day limit", willBeConsecutive, rules.MaxConsecutiveWorkDays),
						Severity:     model.SeverityError,
						Category:     model.CategoryServiceRule,
					})
				}

				end, endOK := shiftEndInstant(date, code)
				if !endOK {
					end = date
				}
				st.applyWork(code, end)
			} else {
				willBeConsecutive := st.ConsecutiveRestDays + 1
				if st.LastShiftCode.IsRest() && willBeConsecutive > rules.MaxConsecutiveDaysOff {
					wellbeingScore -= penalties.MaxConsecutiveDaysOff
					overall -= penalties.MaxConsecutiveDaysOff
					v := dateStr
					violations = append(violations, model.ScheduleViolation{
						EmployeeName: emp.DisplayName,
						Date:         &v,
						ShiftCode:    code,
						Rule:         RuleMaxConsecutiveDaysOff,
						Details:      fmt.Sprintf("%d consecutive days off exceeds the %d-day limit", willBeConsecutive, rules.MaxConsecutiveDaysOff),
						Severity:     model.SeverityWarning,
						Category:     model.CategoryEmployeeWellbeing,
					})
				}
				st.applyRest(code)

				if weekend && date.Weekday() == time.Sunday {
					saturdayCode := model.ShiftRestDay
					if satShift, ok := byDate[dateKey(date.AddDate(0, 0, -1))][emp.ID]; ok {
						saturdayCode = satShift.Code()
					}
					if code.IsRest() && saturdayCode.IsRest() {
						st.CompleteWeekendsOff++
					}
				}
			}
		}
	}

	targetWeekendsOff := input.Service.TargetCompleteWeekendsOff
	if targetWeekendsOff == 0 {
		targetWeekendsOff = rules.DefaultTargetCompleteWeekendsOff
	}
	for _, emp := range input.Employees {
		st := states[emp.ID]
		if st.CompleteWeekendsOff < targetWeekendsOff {
			shortfall := targetWeekendsOff - st.CompleteWeekendsOff
			deduction := float64(shortfall) * penalties.WeekendTargetNotMetPerWeek
			if deduction > penalties.MaxWeekendTargetPenalty {
				deduction = penalties.MaxWeekendTargetPenalty
			}
			wellbeingScore -= deduction
			overall -= deduction
			violations = append(violations, model.ScheduleViolation{
				EmployeeName: emp.DisplayName,
				Rule:         RuleWeekendTargetNotMet,
				Details:      fmt.Sprintf("%d complete weekend(s) off, target %d", st.CompleteWeekendsOff, targetWeekendsOff),
				Severity:     model.SeverityWarning,
				Category:     model.CategoryEmployeeWellbeing,
			})
		}
	}

	if serviceScore < 0 {
		serviceScore = 0
	}
	if wellbeingScore < 0 {
		wellbeingScore = 0
	}
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	breakdown := model.ScoreBreakdown{
		ServiceRules:      serviceScore,
		EmployeeWellbeing: wellbeingScore,
	}
	return overall, breakdown, violations
}

func indexByDate(shifts []model.AIShift) map[string]map[uuid.UUID]model.AIShift {
	out := make(map[string]map[uuid.UUID]model.AIShift)
	for _, s := range shifts {
		key := dateKey(s.Date)
		m, ok := out[key]
		if !ok {
			m = make(map[uuid.UUID]model.AIShift)
			out[key] = m
		}
		m[s.EmployeeID] = s
	}
	return out
}
