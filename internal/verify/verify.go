// Package verify provides independent structural checks over a timetable.
// Each check is read-only and reports its own first violation; the suite
// runs every check and accumulates all failures, so one broken invariant
// never hides another.
package verify

import (
	"ttab/internal/timetable"
)

// Check is a single named structural check.
type Check struct {
	Name string
	Fn   func(t *timetable.Timetable) error
}

// Result contains the outcome of a suite run.
type Result struct {
	Passed bool          // true if every check passed
	Checks []CheckResult // individual check outcomes, in suite order
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name    string // "dimensions", "labels", "conflicts", "count", "unique"
	Passed  bool
	Message string // violation description on failure
}

// Failures returns the failing check outcomes.
func (r *Result) Failures() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Suite runs checks in sequence. Unlike a short-circuiting chain, every
// check runs regardless of earlier failures.
type Suite struct {
	Checks []Check
}

// Run executes each check against the table and accumulates the outcomes.
func (s *Suite) Run(t *timetable.Timetable) *Result {
	result := &Result{Passed: true}

	for _, check := range s.Checks {
		cr := CheckResult{Name: check.Name, Passed: true}
		if err := check.Fn(t); err != nil {
			cr.Passed = false
			cr.Message = err.Error()
			result.Passed = false
		}
		result.Checks = append(result.Checks, cr)
	}
	return result
}

// DefaultSuite returns the full structural suite minus the count check,
// which needs a label selection from the caller.
func DefaultSuite() *Suite {
	return &Suite{Checks: []Check{
		Dimensions(),
		Labels(),
		Conflicts(),
		Unique(),
	}}
}
