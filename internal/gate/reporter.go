package gate

//go:generate go tool mockgen -source=reporter.go -destination=reporter_mock_test.go -package=gate

// Reporter receives progress notifications from the Runner as each check
// starts and resolves. Implementations render output only; they make no
// decisions about the run.
type Reporter interface {
	OnCheckStart(name string)
	OnCheckResult(name string, outcome Outcome)
}

// NopReporter discards all notifications.
type NopReporter struct{}

func (NopReporter) OnCheckStart(string)           {}
func (NopReporter) OnCheckResult(string, Outcome) {}
