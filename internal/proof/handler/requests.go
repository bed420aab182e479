package handler

// IssueProofRequest is the JSON body for POST /proofs. The issuing verifier
// comes from the authentication context, never from the body.
type IssueProofRequest struct {
	Owner           string  `json:"owner"`
	Hash            string  `json:"hash"`
	Type            string  `json:"type"`
	ExpiresInBlocks *uint64 `json:"expires_in_blocks,omitempty"`
}

// VerifyOwnershipRequest is the JSON body for POST /proofs/verify-ownership.
type VerifyOwnershipRequest struct {
	ProofID string `json:"proof_id"`
	Owner   string `json:"owner"`
}

// RegisterVerifierRequest is the JSON body for POST /verifiers.
type RegisterVerifierRequest struct {
	Principal string `json:"principal"`
}

// TransferAdminRequest is the JSON body for POST /admin/transfer.
type TransferAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}
