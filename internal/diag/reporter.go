package diag

// Reporter: минимальный контракт получения проблем от валидатора.
type Reporter interface {
	Report(p Problem)
}

// ProblemReporter is the ordered, append-only sink for one validation run.
// The zero value is ready to use.
type ProblemReporter struct {
	problems []Problem
}

// NewProblemReporter returns an empty reporter with room for capHint problems.
func NewProblemReporter(capHint int) *ProblemReporter {
	return &ProblemReporter{problems: make([]Problem, 0, capHint)}
}

// Report appends p.
func (r *ProblemReporter) Report(p Problem) {
	r.problems = append(r.problems, p)
}

// Problems returns a copy of the accumulated problems in report order.
func (r *ProblemReporter) Problems() []Problem {
	if r == nil || len(r.problems) == 0 {
		return nil
	}
	out := make([]Problem, len(r.problems))
	copy(out, r.problems)
	return out
}

// Len returns the number of reported problems.
func (r *ProblemReporter) Len() int {
	if r == nil {
		return 0
	}
	return len(r.problems)
}

// Empty reports whether the validated tree conforms.
func (r *ProblemReporter) Empty() bool {
	return r.Len() == 0
}
