package validation

import "fmt"

// ConstraintResult is one named check's outcome: hard constraints are
// pass/fail (Score is 1.0 or 0.0); soft constraints carry a continuous
// 0.0-1.0 score and never fail the report.
type ConstraintResult struct {
	Name      string
	Hard      bool
	Satisfied bool
	Score     float64
	Details   string
}

func hardResult(name string, satisfied bool, details string) ConstraintResult {
	score := 0.0
	if satisfied {
		score = 1.0
	}
	return ConstraintResult{Name: name, Hard: true, Satisfied: satisfied, Score: score, Details: details}
}

func softResult(name string, score float64, details string) ConstraintResult {
	return ConstraintResult{Name: name, Hard: false, Satisfied: score > 0.5, Score: score, Details: details}
}

// Section groups one category's constraint results.
type Section struct {
	Name    string
	Results []ConstraintResult
}

func (s Section) passed() bool {
	for _, r := range s.Results {
		if r.Hard && !r.Satisfied {
			return false
		}
	}
	return true
}

// Report is the InvariantValidator's full output: one Section per
// category plus the overall Valid flag and calculated Metrics.
type Report struct {
	Rooms         Section
	Connections   Section
	Grid          Section
	Reachability  Section
	Metrics       *Metrics
	Valid         bool
	Warnings      []string
}

func (r *Report) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// FailedConstraints returns every hard constraint that failed, across
// all sections.
func (r *Report) FailedConstraints() []ConstraintResult {
	var out []ConstraintResult
	for _, sec := range []Section{r.Rooms, r.Connections, r.Grid, r.Reachability} {
		for _, res := range sec.Results {
			if res.Hard && !res.Satisfied {
				out = append(out, res)
			}
		}
	}
	return out
}

// Summary renders a short human-readable report.
func (r *Report) Summary() string {
	status := "FAILED"
	if r.Valid {
		status = "PASSED"
	}
	out := fmt.Sprintf("=== Validation: %s ===\n", status)
	for _, sec := range []Section{r.Rooms, r.Connections, r.Grid, r.Reachability} {
		if len(sec.Results) == 0 {
			continue
		}
		out += fmt.Sprintf("-- %s (%v) --\n", sec.Name, sec.passed())
		for _, res := range sec.Results {
			mark := "ok"
			if res.Hard && !res.Satisfied {
				mark = "FAIL"
			}
			out += fmt.Sprintf("  [%s] %s: %s\n", mark, res.Name, res.Details)
		}
	}
	for _, w := range r.Warnings {
		out += "warning: " + w + "\n"
	}
	return out
}
