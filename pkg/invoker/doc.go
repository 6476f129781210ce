// Package invoker runs external OS utilities on behalf of condition modules.
//
// An Invoker executes a command with optional piped standard input and
// returns the exit code together with the decoded standard output and
// standard error. A non-zero exit is a normal Result, not an error: callers
// decide what a failing probe means for their facts. Errors are reserved for
// failures to obtain a Result at all:
//
//   - ErrCodeInvalidRequest: no command was given
//   - ErrCodeProbeUnavailable: the executable could not be started
//   - ErrCodeTimeout: the command exceeded the configured bound and was killed
//
// Output bytes are decoded as UTF-8. A leading byte order mark is removed and
// invalid sequences are replaced with U+FFFD.
//
// The production implementation, Exec, is built on k8s.io/utils/exec, so tests
// can substitute a fake execer:
//
//	inv := invoker.New(
//	    invoker.WithTimeout(30*time.Second),
//	    invoker.WithRateLimit(rate.NewLimiter(10, 4)),
//	)
//	res, err := inv.Invoke(ctx, []string{"/usr/bin/sw_vers", "-productVersion"}, "")
//
// Probe wraps the common "run it and give me non-empty stdout" pattern.
package invoker
