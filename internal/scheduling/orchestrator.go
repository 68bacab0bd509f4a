package scheduling

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/nightshift-health/shiftplan/internal/model"
)

// Generate runs the best-of-K restart loop of spec.md §4.4/§6: construct a
// full candidate month, evaluate it, and keep the best-scoring attempt across
// up to input.Rules.RestartBudget attempts, stopping early once an attempt
// reaches input.Rules.TargetScore.
//
// ctx cancellation is only checked between attempts (spec.md §5); an attempt
// already in progress always runs to completion.
func Generate(ctx context.Context, input GenerateInput, observer Observer) (GenerateResult, error) {
	if len(input.Employees) == 0 {
		_, breakdown, violations := evaluate(input, nil, input.Rules)
		result := GenerateResult{
			Shifts:        nil,
			Score:         0,
			Breakdown:     breakdown,
			Violations:    violations,
			SummaryText:   "No employees assigned to this service; no schedule was generated.",
			AttemptsUsed:  0,
			AttemptScores: nil,
		}
		if observer != nil {
			observer.ObserveResult(result)
		}
		return result, nil
	}

	budget := input.Rules.RestartBudget
	if budget <= 0 {
		budget = 1
	}

	src := input.RandSource
	if src == nil {
		src = rand.NewSource(int64(input.Year)*100 + int64(input.Month))
	}
	rng := rand.New(src)

	var best GenerateResult
	bestSet := false
	scores := make([]float64, 0, budget)

	for attempt := 1; attempt <= budget; attempt++ {
		if err := ctx.Err(); err != nil {
			return GenerateResult{}, fmt.Errorf("schedule generation cancelled after %d attempt(s): %w", attempt-1, err)
		}

		states := newStateMap(input.Employees, input.PrevShifts, time.Date(input.Year, time.Month(input.Month), 1, 0, 0, 0, 0, time.UTC), input.Rules)
		shifts := construct(input, states, rng)
		score, breakdown, violations := evaluate(input, shifts, input.Rules)

		scores = append(scores, score)
		if observer != nil {
			observer.ObserveAttempt(attempt, score)
		}

		if !bestSet || score > best.Score {
			best = GenerateResult{
				Shifts:     shifts,
				Score:      score,
				Breakdown:  breakdown,
				Violations: violations,
			}
			bestSet = true
		}

		if score >= input.Rules.TargetScore {
			break
		}
	}

	best.AttemptsUsed = len(scores)
	best.AttemptScores = scores
	best.SummaryText = summarize(input, best)

	if observer != nil {
		observer.ObserveResult(best)
	}
	return best, nil
}

func summarize(input GenerateInput, result GenerateResult) string {
	errorCount, warningCount := 0, 0
	for _, v := range result.Violations {
		switch v.Severity {
		case model.SeverityError:
			errorCount++
		case model.SeverityWarning:
			warningCount++
		}
	}
	return fmt.Sprintf(
		"Generated schedule for %s, %d-%02d: score %.1f after %d attempt(s) (%d error(s), %d warning(s)).",
		input.Service.Name, input.Year, input.Month, result.Score, result.AttemptsUsed, errorCount, warningCount,
	)
}
