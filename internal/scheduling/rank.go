package scheduling

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// candidate is one Phase D fill candidate: a standard-rotation employee
// eligible (by the hard filters) to take a shift, paired with their current
// state.
type candidate struct {
	employeeID uuid.UUID
	prefersWeekendWork bool
	state      *EmployeeState
}

// rankKey is the tuple of sort keys spec.md §4.4 Phase D step 2 defines,
// encoded as a pure comparator so the ranking rule is independently
// inspectable and testable (spec.md §9 "Ranking as a pure function").
// Lower is better in every field, matching the spec's "lower = better"
// convention.
type rankKey struct {
	a float64 // (a) rest streak short of preferred ranks worse
	b float64 // (b) work block at/above preferred ranks worse
	c float64 // (c) weekend-work preference, gated on service target
	d float64 // (d) fairness: fewer shiftsThisMonth ranks better
	e float64 // (e) weekend-work preference, ungated secondary tiebreaker
	f float64 // (f) rest->work: longer rest streak ranks better
	g float64 // (g) work->work: shorter work streak ranks better
}

func computeRankKey(c candidate, weekendOrHoliday bool, targetWeekendsOff int, rules RulesConfig) rankKey {
	st := c.state
	k := rankKey{}

	if st.ConsecutiveRestDays >= rules.PreferredConsecutiveDaysOff {
		k.a = 0
	} else {
		k.a = 1
	}

	if st.ConsecutiveWorkDays < rules.PreferredConsecutiveWorkDays {
		k.b = 0
	} else {
		k.b = 1
	}

	if weekendOrHoliday && targetWeekendsOff > 0 {
		if c.prefersWeekendWork {
			k.c = 0
		} else {
			k.c = 1
		}
	} else {
		k.c = 0
	}

	k.d = float64(st.ShiftsThisMonth)

	if weekendOrHoliday && c.prefersWeekendWork {
		k.e = 0
	} else {
		k.e = 1
	}

	if st.ConsecutiveRestDays > 0 {
		k.f = -float64(st.ConsecutiveRestDays)
	} else {
		k.f = 0
	}

	if st.ConsecutiveWorkDays > 0 {
		k.g = float64(st.ConsecutiveWorkDays)
	} else {
		k.g = 0
	}

	return k
}

func (k rankKey) less(other rankKey) bool {
	if k.a != other.a {
		return k.a < other.a
	}
	if k.b != other.b {
		return k.b < other.b
	}
	if k.c != other.c {
		return k.c < other.c
	}
	if k.d != other.d {
		return k.d < other.d
	}
	if k.e != other.e {
		return k.e < other.e
	}
	if k.f != other.f {
		return k.f < other.f
	}
	return k.g < other.g
}

// rankCandidates orders candidates best-first. Ties (identical rankKey) are
// broken by a random shuffle applied before the stable sort, implementing
// ranking-key (h) "random shuffle" (spec.md §4.4 Phase D step 2h).
func rankCandidates(candidates []candidate, weekendOrHoliday bool, targetWeekendsOff int, rules RulesConfig, rng *rand.Rand) []candidate {
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	type keyedCandidate struct {
		cand candidate
		key  rankKey
	}
	keyed := make([]keyedCandidate, len(candidates))
	for i, c := range candidates {
		keyed[i] = keyedCandidate{cand: c, key: computeRankKey(c, weekendOrHoliday, targetWeekendsOff, rules)}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].key.less(keyed[j].key)
	})

	for i, kc := range keyed {
		candidates[i] = kc.cand
	}
	return candidates
}
