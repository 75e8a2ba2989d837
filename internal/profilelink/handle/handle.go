// Package handle normalizes raw path segments and decides whether they can be
// profile handles.
//
// The reserved-name check is a cheap filter for system-file requests, not a
// security boundary. In ReservedContains mode a handle that merely contains a
// reserved name (for example "myrobots.txt") is rejected too.
package handle

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"gliblio/internal/profilelink/models"
)

// Length bounds, in UTF-16 code units so that handles measure the same as
// they do in the mobile app.
const (
	MinLength = 2
	MaxLength = 30
)

// ReservedNames are system-file names that are never profile handles.
var ReservedNames = []string{".env", "favicon.ico", "robots.txt", "sitemap.xml", "manifest.json", ".git"}

// ErrRejected is returned (wrapped in a *RejectionError) for segments that are
// not handles.
var ErrRejected = errors.New("handle rejected")

// Reason explains why a segment was rejected.
type Reason string

const (
	ReasonTooShort      Reason = "too_short"
	ReasonTooLong       Reason = "too_long"
	ReasonLeadingDot    Reason = "leading_dot"
	ReasonPathSeparator Reason = "path_separator"
	ReasonReservedName  Reason = "reserved_name"
)

// RejectionError carries the rejection reason for a segment.
type RejectionError struct {
	Reason Reason
	Value  string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("handle rejected: %s", e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

// ReasonOf extracts the rejection reason from err, or "" if err is not a rejection.
func ReasonOf(err error) Reason {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}

// ReservedMatch selects how reserved names are matched against a handle.
type ReservedMatch string

const (
	ReservedContains ReservedMatch = "contains"
	ReservedExact    ReservedMatch = "exact"
)

// Validator validates raw path segments. The zero value uses ReservedContains.
type Validator struct {
	match ReservedMatch
}

// NewValidator builds a validator with the given reserved-name match mode.
// Unknown modes fall back to ReservedContains.
func NewValidator(match ReservedMatch) *Validator {
	if match != ReservedExact {
		match = ReservedContains
	}
	return &Validator{match: match}
}

// Normalize lowercases raw and trims surrounding whitespace.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate normalizes raw and returns the resulting handle, or an error
// wrapping ErrRejected.
func (v *Validator) Validate(raw string) (models.Handle, error) {
	normalized := Normalize(raw)
	if reason := v.check(normalized); reason != "" {
		return models.Handle{}, &RejectionError{Reason: reason, Value: normalized}
	}
	return models.Handle{Raw: raw, Normalized: normalized}, nil
}

func (v *Validator) check(s string) Reason {
	n := Length(s)
	switch {
	case n < MinLength:
		return ReasonTooShort
	case n > MaxLength:
		return ReasonTooLong
	case strings.HasPrefix(s, "."):
		return ReasonLeadingDot
	case strings.Contains(s, "/"):
		return ReasonPathSeparator
	case v.isReserved(s):
		return ReasonReservedName
	}
	return ""
}

// Length counts s in UTF-16 code units: characters outside the Basic
// Multilingual Plane, such as most emoji, count twice.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func (v *Validator) isReserved(s string) bool {
	for _, name := range ReservedNames {
		if s == name {
			return true
		}
		if v.match != ReservedExact && strings.Contains(s, name) {
			return true
		}
	}
	return false
}
