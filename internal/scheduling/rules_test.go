package scheduling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/scheduling"
)

func TestDefaultRulesConfig_MatchesPublishedDefaults(t *testing.T) {
	r := scheduling.DefaultRulesConfig()

	assert.Equal(t, 6, r.MaxConsecutiveWorkDays)
	assert.Equal(t, 5, r.PreferredConsecutiveWorkDays)
	assert.Equal(t, 3, r.MaxConsecutiveDaysOff)
	assert.Equal(t, 2, r.PreferredConsecutiveDaysOff)
	assert.Equal(t, 1, r.MinConsecutiveDaysOffRequiredBeforeWork)
	assert.Equal(t, 12.0, r.MinimumRestHoursBetweenShifts)
	assert.Equal(t, 1, r.DefaultTargetCompleteWeekendsOff)
	assert.Equal(t, 15, r.RestartBudget)
	assert.Equal(t, 80.0, r.TargetScore)
}

func TestWithOverride_OnlyAppliesNonZeroFields(t *testing.T) {
	base := scheduling.DefaultRulesConfig()
	override := model.RulesOverride{
		MaxConsecutiveWorkDays: 8,
	}

	result := base.WithOverride(override)

	assert.Equal(t, 8, result.MaxConsecutiveWorkDays)
	assert.Equal(t, base.PreferredConsecutiveWorkDays, result.PreferredConsecutiveWorkDays)
	assert.Equal(t, base.MaxConsecutiveDaysOff, result.MaxConsecutiveDaysOff)
	assert.Equal(t, base.MinimumRestHoursBetweenShifts, result.MinimumRestHoursBetweenShifts)
}

func TestWithOverride_EmptyOverrideIsNoop(t *testing.T) {
	base := scheduling.DefaultRulesConfig()
	result := base.WithOverride(model.RulesOverride{})
	assert.Equal(t, base, result)
}
