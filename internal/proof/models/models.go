package models

import (
	"haven/pkg/domain"
)

// ProofType is the closed set of attestation categories a verifier may issue.
type ProofType string

const (
	ProofTypeEducation ProofType = "education"
	ProofTypeIdentity  ProofType = "identity"
	ProofTypeSkill     ProofType = "skill"
)

// IsValid reports whether t is inside the closed enum.
func (t ProofType) IsValid() bool {
	switch t {
	case ProofTypeEducation, ProofTypeIdentity, ProofTypeSkill:
		return true
	}
	return false
}

// Record is a stored proof attestation.
//
// # Lifecycle Invariants
//
// A record is created by a registered verifier and never deleted. The only
// mutation allowed after issuance is Revoked flipping false -> true, and it
// never flips back. ExpiresAt is absolute and immutable; validity at a given
// height is always derived from it rather than stored.
type Record struct {
	ID        domain.ProofID
	Owner     domain.Principal
	Hash      domain.Hash
	Type      ProofType
	IssuedAt  domain.BlockHeight
	ExpiresAt *domain.BlockHeight
	Revoked   bool
	Verifier  domain.Principal
}

// ValidAt reports whether the record is neither revoked nor expired at the
// given height. A record expiring at height h is already invalid at h
// (boundary inclusive on the invalid side); absent expiry means never.
func (r Record) ValidAt(at domain.BlockHeight) bool {
	if r.Revoked {
		return false
	}
	if r.ExpiresAt != nil && at >= *r.ExpiresAt {
		return false
	}
	return true
}
