package log

import "testing"

// TestLogOutput wraps the logger of testing.T to provide the Output
// interface.
type TestLogOutput struct {
	t *testing.T
}

func NewTestLogOutput(t *testing.T) *TestLogOutput {
	return &TestLogOutput{t: t}
}

func (l *TestLogOutput) Printf(format string, v ...any) {
	l.t.Logf(format, v...)
}

func (l *TestLogOutput) Println(v ...any) {
	l.t.Log(v...)
}

func (l *TestLogOutput) Fatalf(format string, v ...any) {
	l.t.Fatalf(format, v...)
}

func (l *TestLogOutput) Fatalln(v ...any) {
	l.t.Fatal(v...)
}

// RedirectToTestingLog redirects all log output while a testcase is executed
// to t.Log.
// When the testcase finished, the logger output and the debug log level is
// restored to the previous values.
func RedirectToTestingLog(t *testing.T) {
	oldLogOut := StdLogger.GetOutput()
	oldDebugEnabled := StdLogger.DebugEnabled()

	StdLogger.SetOutput(NewTestLogOutput(t))
	StdLogger.EnableDebug(true)

	t.Cleanup(func() {
		StdLogger.SetOutput(oldLogOut)
		StdLogger.EnableDebug(oldDebugEnabled)
	})
}
