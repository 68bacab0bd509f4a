package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// EmployeeState is the rolling per-employee counters mutated forward
// day-by-day during one generation or evaluation attempt (spec.md §3).
// It is an owned value inside a map keyed by employee ID; the generator and
// the evaluator each hold their own map, independently re-seedable, with no
// aliasing between them.
type EmployeeState struct {
	ConsecutiveWorkDays  int
	ConsecutiveRestDays  int
	ShiftsThisMonth      int
	CompleteWeekendsOff  int
	LastShiftCode        model.ShiftCode
	LastWorkShiftEnd     *time.Time
}

// applyWork advances the state for a work-code day ending at shiftEnd.
func (s *EmployeeState) applyWork(code model.ShiftCode, shiftEnd time.Time) {
	if s.LastShiftCode.IsWork() {
		s.ConsecutiveWorkDays++
	} else {
		s.ConsecutiveWorkDays = 1
	}
	s.ConsecutiveRestDays = 0
	s.ShiftsThisMonth++
	s.LastShiftCode = code
	end := shiftEnd
	s.LastWorkShiftEnd = &end
}

// applyRest advances the state for a rest-code day.
func (s *EmployeeState) applyRest(code model.ShiftCode) {
	s.ConsecutiveWorkDays = 0
	s.ConsecutiveRestDays++
	s.LastShiftCode = code
}

// newStateMap builds one fresh EmployeeState per employee, each seeded from
// the lookback window of prevShifts (spec.md §4.3 "History seeding").
func newStateMap(employees []model.Employee, prevShifts []model.AIShift, targetMonthStart time.Time, rules RulesConfig) map[uuid.UUID]*EmployeeState {
	states := make(map[uuid.UUID]*EmployeeState, len(employees))
	lookback := rules.lookbackDays()

	byEmployeeByDate := indexPrevShifts(prevShifts)

	for _, emp := range employees {
		state := &EmployeeState{}
		seedFromHistory(state, byEmployeeByDate[emp.ID], targetMonthStart, lookback)
		states[emp.ID] = state
	}
	return states
}

// indexPrevShifts buckets the previous month's tail by employee then by
// calendar-day key for O(1) history lookups.
func indexPrevShifts(prevShifts []model.AIShift) map[uuid.UUID]map[string]model.AIShift {
	out := make(map[uuid.UUID]map[string]model.AIShift)
	for _, s := range prevShifts {
		m, ok := out[s.EmployeeID]
		if !ok {
			m = make(map[string]model.AIShift)
			out[s.EmployeeID] = m
		}
		m[dateKey(s.Date)] = s
	}
	return out
}

// seedFromHistory replays the `lookback` days immediately preceding
// targetMonthStart, oldest to newest, to reconstruct consecutive-day
// counters and the last worked shift's end instant. A day with no record is
// treated as D (spec.md §4.3).
func seedFromHistory(state *EmployeeState, history map[string]model.AIShift, targetMonthStart time.Time, lookback int) {
	firstDay := targetMonthStart.AddDate(0, 0, -lookback)

	for i := 0; i < lookback; i++ {
		day := firstDay.AddDate(0, 0, i)
		code := model.ShiftRestDay
		if shift, ok := history[dateKey(day)]; ok {
			code = shift.Code()
		}

		if code.IsWork() {
			end, ok := shiftEndInstant(day, code)
			if !ok {
				end = day
			}
			state.applyWork(code, end)
		} else {
			state.applyRest(code)
		}
	}

	// shiftsThisMonth and completeWeekendsOffThisMonth always start at 0 for
	// the target month regardless of history (spec.md §4.3).
	state.ShiftsThisMonth = 0
	state.CompleteWeekendsOff = 0
}
