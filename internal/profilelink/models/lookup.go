package models

// LookupOutcome is the kind of result a profile lookup produced.
type LookupOutcome string

const (
	LookupFound    LookupOutcome = "found"
	LookupNotFound LookupOutcome = "not_found"
	LookupFailed   LookupOutcome = "failed"
	LookupSkipped  LookupOutcome = "skipped"
)

// LookupResult is the outcome of resolving a handle against the profile store.
// IdentityID is set only for LookupFound, Err only for LookupFailed.
type LookupResult struct {
	Outcome    LookupOutcome
	IdentityID string
	Err        error
}

// Found builds a successful lookup result.
func Found(identityID string) LookupResult {
	return LookupResult{Outcome: LookupFound, IdentityID: identityID}
}

// NotFound builds a lookup result for a handle with no matching record.
func NotFound() LookupResult {
	return LookupResult{Outcome: LookupNotFound}
}

// Failed builds a lookup result for a transport or query fault.
func Failed(cause error) LookupResult {
	return LookupResult{Outcome: LookupFailed, Err: cause}
}
