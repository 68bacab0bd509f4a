// Package scheduling generates and evaluates monthly shift schedules for a
// Service and its employee roster.
//
// This package has no database or HTTP dependencies - it operates purely on
// input structs (model.Service, model.Employee, model.Holiday, prior
// AIShifts) and produces output structs (the generated shifts, a score, a
// breakdown, and a violation list). All randomness is caller-seeded
// (math/rand.Rand passed in, never the package-level global) so a run is
// reproducible.
//
// # Data Flow
//
// Generate runs up to RulesConfig.RestartBudget attempts of a single forward
// sweep (construct) over the target month, each seeded independently from
// history, and keeps the highest-scoring attempt as judged by evaluate.
//
// # Time representation
//
// Dates are local calendar days (no timezone conversion, per spec.md §6).
// Rest-gap math ("is there enough time between this shift's end and the next
// shift's start") uses naive local-time instants; the only cross-midnight
// case is the N (night) shift, whose end instant falls on the following
// calendar day at 07:00.
package scheduling
