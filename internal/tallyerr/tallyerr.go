// Package tallyerr defines the error taxonomy shared across the adapter.
// Callers distinguish kinds with errors.As; every error carries enough
// context (field, entity, raw value) to diagnose without re-querying the
// engine.
package tallyerr

import "fmt"

// TransportError wraps a connection failure, timeout, or non-success status
// from the engine. The adapter never retries; the error is surfaced as-is.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport to %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedError reports a response body that is not well-formed XML. It is
// fatal for the whole call; there is nothing to partially decode.
type MalformedError struct {
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed response XML: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// InvalidFieldError reports a field that was present but could not be parsed
// to its expected numeric or date type. Present-but-unparsable values are
// never coerced to zero.
type InvalidFieldError struct {
	Field string
	Raw   string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q: %v", e.Field, e.Raw, e.Err)
}

func (e *InvalidFieldError) Unwrap() error { return e.Err }

// AmbiguityError reports an entity that is present but whose required
// sub-field could not be resolved under any candidate tag, or whose decoded
// values violate a protocol invariant. Distinct from an entity being
// legitimately absent, which is an empty result, not an error.
type AmbiguityError struct {
	Entity string
	Field  string
	Detail string
}

func (e *AmbiguityError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Entity, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s: no candidate tag resolved %s", e.Entity, e.Field)
}

// UnconfirmedError reports a creation command whose response carried no
// recognizable success marker. The engine cannot distinguish "failed" from
// "ambiguous response", so this is reported alongside a result rather than
// treated as a hard failure.
type UnconfirmedError struct {
	Command string
	Snippet string
}

func (e *UnconfirmedError) Error() string {
	return fmt.Sprintf("%s: engine response carried no success marker: %q", e.Command, e.Snippet)
}
