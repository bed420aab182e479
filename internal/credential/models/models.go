package models

import (
	"haven/pkg/domain"
)

// CredentialType is the closed set of credential categories an institution
// may issue.
type CredentialType string

const (
	CredentialTypeEducation     CredentialType = "education"
	CredentialTypeCertification CredentialType = "certification"
	CredentialTypeCourse        CredentialType = "course"
)

// IsValid reports whether t is inside the closed enum.
func (t CredentialType) IsValid() bool {
	switch t {
	case CredentialTypeEducation, CredentialTypeCertification, CredentialTypeCourse:
		return true
	}
	return false
}

// Record is an institution-issued credential backed by exactly one proof.
//
// The proof's ownership and validity are checked at issuance time only;
// later proof revocation or expiry does not retroactively invalidate the
// credential. Revoked flips one way and the record is never deleted.
type Record struct {
	ID           domain.CredentialID
	Refugee      domain.Principal
	Institution  domain.Principal
	Type         CredentialType
	ProofID      domain.ProofID
	IssuedAt     domain.BlockHeight
	ExpiresAt    *domain.BlockHeight
	Revoked      bool
	MetadataHash domain.Hash
	Title        string
	Description  string
}

// ValidAt reports whether the record is neither revoked nor expired at the
// given height. Absent expiry means never.
func (r Record) ValidAt(at domain.BlockHeight) bool {
	if r.Revoked {
		return false
	}
	if r.ExpiresAt != nil && at >= *r.ExpiresAt {
		return false
	}
	return true
}
