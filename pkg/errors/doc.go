// Package errors provides structured error types for better observability
// and programmatic error handling across hostcond.
//
// The codes mirror the failure taxonomy of a condition run. None of them is
// fatal to a run; callers classify a failure and then log and skip:
//
//   - ErrCodeProbeUnavailable: an external tool exited non-zero or printed nothing
//   - ErrCodePartialParse: a record carried some but not all required fields
//   - ErrCodeUnknownModule: the selection named a module that is not registered
//   - ErrCodeModuleContract: a registered module could not be run
//   - ErrCodeSinkFailure: the state sink failed to persist a module's conditions
//   - ErrCodeTimeout: an external tool exceeded its bounded wait
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "certificate inspection timed out",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "/usr/bin/openssl",
//	    },
//	)
package errors
