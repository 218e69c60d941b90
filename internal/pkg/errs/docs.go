// Package errs provides the error taxonomy of the orchestration engine.
//
// Every error type follows the same pattern:
//   - a sentinel (ErrObjectNotFound, ErrForbidden, ErrConflict, ...)
//   - a struct carrying details
//   - constructors with and without a cause
//   - Unwrap returning the sentinel so callers classify with errors.Is
//
// The HTTP adapter maps the sentinels to status codes:
// ErrObjectNotFound -> 404, ErrForbidden -> 403, ErrConflict -> 409,
// ErrValueIsRequired / ErrValueIsInvalid / ErrValueIsOutOfRange -> 400,
// ErrUpstream -> 502.
package errs
