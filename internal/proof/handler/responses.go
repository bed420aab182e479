package handler

import (
	"haven/internal/proof/models"
)

// ProofResponse is the JSON shape of a proof record.
type ProofResponse struct {
	ID        string  `json:"id"`
	Owner     string  `json:"owner"`
	Verifier  string  `json:"verifier"`
	Type      string  `json:"type"`
	Hash      string  `json:"hash"`
	IssuedAt  uint64  `json:"issued_at"`
	ExpiresAt *uint64 `json:"expires_at,omitempty"`
	Revoked   bool    `json:"revoked"`
}

// IssueProofResponse is the JSON body returned by POST /proofs.
type IssueProofResponse struct {
	ID string `json:"id"`
}

// VerifyOwnershipResponse is the JSON body returned by the ownership check.
type VerifyOwnershipResponse struct {
	Valid bool `json:"valid"`
}

// ValidityResponse is the JSON body returned by GET /proofs/{id}/valid.
type ValidityResponse struct {
	Valid bool `json:"valid"`
}

// ListProofsResponse wraps a refugee's proofs in issuance order.
type ListProofsResponse struct {
	Proofs []ProofResponse `json:"proofs"`
}

func toProofResponse(rec *models.Record) ProofResponse {
	resp := ProofResponse{
		ID:       rec.ID.String(),
		Owner:    rec.Owner.String(),
		Verifier: rec.Verifier.String(),
		Type:     string(rec.Type),
		Hash:     rec.Hash.String(),
		IssuedAt: uint64(rec.IssuedAt),
		Revoked:  rec.Revoked,
	}
	if rec.ExpiresAt != nil {
		at := uint64(*rec.ExpiresAt)
		resp.ExpiresAt = &at
	}
	return resp
}

func toProofResponses(records []*models.Record) []ProofResponse {
	out := make([]ProofResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toProofResponse(rec))
	}
	return out
}
