package scheduling

import "github.com/nightshift-health/shiftplan/internal/model"

// ScorePenalties are the per-violation point deductions the evaluator applies
// (spec.md §4.2). Each is applied twice: once to the overall score and once
// to the relevant subscore (spec.md §9 "Penalty accounting") - deliberately,
// not a bug; the subscore is a view, not an independent budget.
type ScorePenalties struct {
	StaffingShortagePerEmployee float64
	MinRestBetweenShifts        float64
	MinRestBeforeWork           float64
	MaxConsecutiveWorkDays      float64
	MaxConsecutiveDaysOff       float64
	WeekendTargetNotMetPerWeek  float64
	MaxWeekendTargetPenalty     float64
}

// RulesConfig is the configurable parameter set of spec.md §4.2.
type RulesConfig struct {
	MaxConsecutiveWorkDays                  int
	PreferredConsecutiveWorkDays            int
	MaxConsecutiveDaysOff                   int
	PreferredConsecutiveDaysOff             int
	MinConsecutiveDaysOffRequiredBeforeWork int
	MinimumRestHoursBetweenShifts           float64
	DefaultTargetCompleteWeekendsOff        int
	ScorePenalties                          ScorePenalties

	// RestartBudget (K) and TargetScore govern the orchestrator's best-of-K
	// loop (spec.md §4.2, §4.4).
	RestartBudget int
	TargetScore   float64
}

// DefaultRulesConfig returns the spec.md §4.2 default parameter table.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		MaxConsecutiveWorkDays:                  6,
		PreferredConsecutiveWorkDays:             5,
		MaxConsecutiveDaysOff:                    3,
		PreferredConsecutiveDaysOff:              2,
		MinConsecutiveDaysOffRequiredBeforeWork:  1,
		MinimumRestHoursBetweenShifts:             12,
		DefaultTargetCompleteWeekendsOff:          1,
		ScorePenalties: ScorePenalties{
			StaffingShortagePerEmployee: 5,
			MinRestBetweenShifts:        10,
			MinRestBeforeWork:           5,
			MaxConsecutiveWorkDays:      10,
			MaxConsecutiveDaysOff:       2,
			WeekendTargetNotMetPerWeek:  3,
			MaxWeekendTargetPenalty:     15,
		},
		RestartBudget: 15,
		TargetScore:   80,
	}
}

// WithOverride applies a model.RulesOverride on top of the defaults. A
// zero-valued override field means "keep the default" - none of these
// parameters is legitimately zero.
func (r RulesConfig) WithOverride(o model.RulesOverride) RulesConfig {
	if o.MaxConsecutiveWorkDays != 0 {
		r.MaxConsecutiveWorkDays = o.MaxConsecutiveWorkDays
	}
	if o.PreferredConsecutiveWorkDays != 0 {
		r.PreferredConsecutiveWorkDays = o.PreferredConsecutiveWorkDays
	}
	if o.MaxConsecutiveDaysOff != 0 {
		r.MaxConsecutiveDaysOff = o.MaxConsecutiveDaysOff
	}
	if o.PreferredConsecutiveDaysOff != 0 {
		r.PreferredConsecutiveDaysOff = o.PreferredConsecutiveDaysOff
	}
	if o.MinConsecutiveDaysOffRequiredBeforeWork != 0 {
		r.MinConsecutiveDaysOffRequiredBeforeWork = o.MinConsecutiveDaysOffRequiredBeforeWork
	}
	if o.MinimumRestHoursBetweenShifts != 0 {
		r.MinimumRestHoursBetweenShifts = o.MinimumRestHoursBetweenShifts
	}
	if o.DefaultTargetCompleteWeekendsOff != 0 {
		r.DefaultTargetCompleteWeekendsOff = o.DefaultTargetCompleteWeekendsOff
	}
	return r
}

// lookbackDays is the history-seeding window of spec.md §4.3: "max of the
// consecutive limits, >= 7".
func (r RulesConfig) lookbackDays() int {
	n := r.MaxConsecutiveWorkDays
	if r.MaxConsecutiveDaysOff > n {
		n = r.MaxConsecutiveDaysOff
	}
	if n < 7 {
		n = 7
	}
	return n
}
