package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
//
// ErrResourceNotFound covers syntactically invalid IDs, missing rows and
// cross-organization mismatches alike; callers must not be able to tell
// these apart, so there is a single variant.
var (
	ErrAccessDenied     = errors.New("access denied")
	ErrResourceNotFound = errors.New("organization, project, or collection not found")
	ErrMalformedFeed    = errors.New("feed payload is missing the data field")
)
