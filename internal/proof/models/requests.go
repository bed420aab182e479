package models

import (
	"haven/pkg/domain"
)

// IssueRequest carries the inputs for proof issuance. The caller (verifier)
// comes from the authentication context, never from the body.
type IssueRequest struct {
	Owner           domain.Principal
	Hash            domain.Hash
	Type            ProofType
	ExpiresInBlocks *uint64
}

// VerifyOwnershipRequest asks whether a proof exists, is currently valid,
// and belongs to the claimed owner.
type VerifyOwnershipRequest struct {
	ProofID domain.ProofID
	Owner   domain.Principal
}
