// =============================================================================
// WizBang Client - Error Types
// =============================================================================
//
// This package defines the error kinds shared across the client. It lives in
// its own package so that the mapper, catalog, and client packages can all
// report the same error types without import cycles.
//
// ERROR KINDS:
//   - TransportError  : Network/HTTP failures (dial errors, non-2xx responses,
//                       empty or malformed bodies)
//   - MappingError    : XML-to-object mapping failures (missing ID attribute,
//                       missing mandatory field, unresolved cross-reference)
//   - InvalidQueryError : The caller supplied no valid invoice lookup selector
//   - ErrNotImplemented : Endpoints documented by the server but never
//                       implemented in any observed revision
//
// ERROR HANDLING STRATEGY:
//   - Errors carry context fields (element kind, field name, endpoint) so
//     callers can report actionable messages without string matching
//   - All errors propagate to the immediate caller; nothing is swallowed
//     or retried internally
//   - errors.As / errors.Is work against all types defined here
//
// =============================================================================

package wberr

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by endpoints the server documents but has
// never implemented. Returning an explicit error lets callers distinguish
// "feature absent" from "feature returned nothing".
var ErrNotImplemented = errors.New("wizbang: endpoint not implemented by any observed server revision")

// =============================================================================
// TRANSPORT ERRORS
// =============================================================================

// TransportError represents a network or HTTP-level failure.
type TransportError struct {
	// Endpoint is the server endpoint that was being requested.
	Endpoint string

	// StatusCode is the HTTP status code, or 0 if the request never
	// produced a response (dial failure, timeout).
	StatusCode int

	// Message is a human-readable description of the failure.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error on %q: %s (status %d)", e.Endpoint, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("transport error on %q: %s", e.Endpoint, e.Message)
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// =============================================================================
// MAPPING ERRORS
// =============================================================================

// MappingError represents a failure to map an XML payload onto the domain
// model. It carries the element kind and field name so that malformed
// server data can be traced back to the offending node.
type MappingError struct {
	// Kind is the element kind being mapped (e.g. "item", "modifiergroup",
	// "invoice").
	Kind string

	// Field is the missing or unresolvable field, attribute, or reference.
	Field string

	// Message is a human-readable description of the failure.
	Message string
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mapping error: %s, field %q: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("mapping error: %s: %s", e.Kind, e.Message)
}

// =============================================================================
// QUERY ERRORS
// =============================================================================

// InvalidQueryError is returned when an invoice lookup is attempted without
// any usable selector.
type InvalidQueryError struct {
	// Message describes which selector combinations would have been valid.
	Message string
}

// Error implements the error interface.
func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Message)
}
