// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	dErrors "haven/pkg/domain-errors"
)

// Distinct ID types - the compiler prevents passing a ProofID where a
// CourseID is expected. Each store assigns its own sequence starting at 0;
// ids are never reused or decremented.
type (
	ProofID      uint64
	CredentialID uint64
	CourseID     uint64
	EnrollmentID uint64
)

// Principal identifies a caller (admin, verifier, institution, or refugee).
// Principals are opaque account identifiers minted outside this system.
type Principal string

// BlockHeight is the unit of time for issuance, expiry, and enrollment
// windows. Heights only ever move forward.
type BlockHeight uint64

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseProofID(s string) (ProofID, error) {
	n, err := parseSequence(s, "proof ID")
	return ProofID(n), err
}

func ParseCredentialID(s string) (CredentialID, error) {
	n, err := parseSequence(s, "credential ID")
	return CredentialID(n), err
}

func ParseCourseID(s string) (CourseID, error) {
	n, err := parseSequence(s, "course ID")
	return CourseID(n), err
}

func ParseEnrollmentID(s string) (EnrollmentID, error) {
	n, err := parseSequence(s, "enrollment ID")
	return EnrollmentID(n), err
}

func ParsePrincipal(s string) (Principal, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal cannot be empty")
	}
	return Principal(s), nil
}

// String methods - for logging and debugging.

func (id ProofID) String() string      { return strconv.FormatUint(uint64(id), 10) }
func (id CredentialID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id CourseID) String() string     { return strconv.FormatUint(uint64(id), 10) }
func (id EnrollmentID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (p Principal) String() string     { return string(p) }
func (h BlockHeight) String() string   { return strconv.FormatUint(uint64(h), 10) }

// IsNil checks - used for service-layer validation.

func (p Principal) IsNil() bool { return p == "" }

// parseSequence is the shared validation logic for sequence-number ids.
func parseSequence(s, label string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return n, nil
}
