// Package common provides shared helpers and error types for the platform
// parsers.
package common

import "fmt"

// OutOfScopeError indicates an email that is not addressed to the fund's
// mailbox or did not come through an authorized forwarder. It is absorbed
// locally: the caller acknowledges upstream and raises no alert.
type OutOfScopeError struct {
	Reason string
}

func (e *OutOfScopeError) Error() string {
	return fmt.Sprintf("email out of scope: %s", e.Reason)
}

// UnrecognizedPlatformError indicates that no platform signature matched.
// Unlike an out-of-scope rejection this must be surfaced: money changed
// hands and the ledger entry would otherwise be lost.
type UnrecognizedPlatformError struct {
	From    string
	Subject string
}

func (e *UnrecognizedPlatformError) Error() string {
	return fmt.Sprintf("unrecognized payment platform (from %q, subject %q)", e.From, e.Subject)
}

// MissingFieldError indicates that a platform-mandatory field never
// matched, e.g. the Venmo note element. Its absence means the platform's
// template changed and is worth failing loudly on.
type MissingFieldError struct {
	Platform string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s field in %s email", e.Field, e.Platform)
}
