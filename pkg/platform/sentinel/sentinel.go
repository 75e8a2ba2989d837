package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into lookup outcomes.
//
//   - ErrNotFound: no record matches
//   - ErrConflict: more than one record matches where at most one is expected
//   - ErrUnavailable: backend unreachable or misconfigured
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
