package scheduling

import (
	"math/rand"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// Rule names used in ScheduleViolation.Rule, one per penalty in
// ScorePenalties (spec.md §4.2, §4.5).
const (
	RuleNoEmployees            = "No Employees"
	RuleStaffingShortage       = "Staffing Shortage"
	RuleMinRestBetweenShifts   = "Minimum Rest Between Shifts"
	RuleMinRestBeforeWork      = "Minimum Rest Before Work"
	RuleMaxConsecutiveWorkDays = "Max Consecutive Work Days"
	RuleMaxConsecutiveDaysOff  = "Max Consecutive Days Off"
	RuleWeekendTargetNotMet    = "Weekend Target Not Met"
)

// GenerateInput bundles everything the orchestrator needs for one Generate
// call (spec.md §6 core entry point).
type GenerateInput struct {
	Service    model.Service
	Employees  []model.Employee
	Holidays   model.HolidaySet
	Year       int
	Month      int // 1-12
	PrevShifts []model.AIShift
	Rules      RulesConfig // already has any per-service override applied

	// RandSource seeds the restart loop's tie-breaking randomness
	// (spec.md §9 "Deterministic randomness"). If nil, a source derived from
	// Year and Month is used so runs are reproducible by default.
	RandSource rand.Source
}

// GenerateResult is the orchestrator's output (spec.md §6).
type GenerateResult struct {
	Shifts      []model.AIShift
	Score       float64
	Breakdown   model.ScoreBreakdown
	Violations  []model.ScheduleViolation
	SummaryText string

	// AttemptsUsed and AttemptScores support §4.8's Observer and the
	// restart-monotonicity test property (spec.md §8, property 9).
	AttemptsUsed  int
	AttemptScores []float64
}

// Observer receives per-run telemetry from the orchestrator; a nil Observer
// is a legal no-op so this package never imports a metrics library itself
// (spec.md SPEC_FULL.md §4.8).
type Observer interface {
	ObserveAttempt(attempt int, score float64)
	ObserveResult(result GenerateResult)
}
