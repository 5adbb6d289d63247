// Package errs defines the error taxonomy shared by the domain, the use
// cases, and the transport adapters.
//
// Five error families cover the failure modes the application reports:
// missing values (ValueIsRequiredError), malformed values
// (ValueIsInvalidError), values outside an allowed interval
// (ValueIsOutOfRangeError), lookups that found nothing
// (ObjectNotFoundError), and writes that lost a race
// (ObjectConflictError). Each family wraps a sentinel, so callers classify
// with errors.Is while the message still carries the offending parameter
// and, optionally, the underlying cause.
//
// The HTTP layer maps these families onto status codes; everything that is
// not one of them surfaces as an internal error.
package errs
