package gate

// Status is the pass/fail verdict of a single check.
type Status string

const (
	// StatusPass indicates the check found no problem.
	StatusPass Status = "pass"
	// StatusFail indicates the check found a problem or could not be evaluated.
	StatusFail Status = "fail"
)

// FailureKind distinguishes why a check failed. Status collapses all of
// these to StatusFail; Kind keeps the distinction for reporting.
type FailureKind string

const (
	// KindNone is the kind of a passing outcome.
	KindNone FailureKind = ""
	// KindCheck means the predicate legitimately found a problem.
	KindCheck FailureKind = "check"
	// KindFault means the check could not be evaluated, e.g. the tool is missing.
	KindFault FailureKind = "fault"
	// KindTimeout means the check exceeded its deadline.
	KindTimeout FailureKind = "timeout"
	// KindCanceled means the run was canceled while the check was executing.
	KindCanceled FailureKind = "canceled"
)

// defaultFailDetail is used when a failing outcome carries no detail.
const defaultFailDetail = "failed"

// Outcome is the result of evaluating one check.
// Detail is non-empty if and only if Status is StatusFail.
type Outcome struct {
	Status Status
	Detail string
	Kind   FailureKind
}

// Pass returns a passing outcome.
func Pass() Outcome {
	return Outcome{Status: StatusPass}
}

// Fail returns a failing outcome for a problem the check detected.
func Fail(detail string) Outcome {
	return Outcome{Status: StatusFail, Detail: detail, Kind: KindCheck}
}

// Passed reports whether the outcome is a pass.
func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}

// normalize enforces the detail/status invariant on outcomes returned by
// arbitrary actions.
func (o Outcome) normalize() Outcome {
	switch o.Status {
	case StatusPass:
		return Pass()
	case StatusFail:
		if o.Detail == "" {
			o.Detail = defaultFailDetail
		}
		if o.Kind == KindNone {
			o.Kind = KindCheck
		}
		return o
	default:
		return Outcome{Status: StatusFail, Detail: "fault: unknown status " + string(o.Status), Kind: KindFault}
	}
}
