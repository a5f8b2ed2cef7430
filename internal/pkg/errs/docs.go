// Package errs holds the error types shared by the freight domain, its use
// cases and its adapters.
//
// Every type wraps one sentinel so callers can classify with errors.Is:
//
//	ErrValueIsRequired   missing input (ValueIsRequiredError)
//	ErrValueIsInvalid    malformed input (ValueIsInvalidError, ValueIsOutOfRangeError)
//	ErrObjectNotFound    unknown shipment, invoice or rule (ObjectNotFoundError)
//	ErrVersionIsInvalid  lost optimistic update (VersionIsInvalidError)
//
// Constructors come in pairs, with and without a cause. The cause is kept
// reachable through Unwrap.
package errs
