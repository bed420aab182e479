package handler

import (
	"haven/internal/credential/models"
)

// CredentialResponse is the JSON shape of a credential record.
type CredentialResponse struct {
	ID           string  `json:"id"`
	Refugee      string  `json:"refugee"`
	Institution  string  `json:"institution"`
	Type         string  `json:"type"`
	ProofID      string  `json:"proof_id"`
	IssuedAt     uint64  `json:"issued_at"`
	ExpiresAt    *uint64 `json:"expires_at,omitempty"`
	Revoked      bool    `json:"revoked"`
	MetadataHash string  `json:"metadata_hash"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
}

// IssueCredentialResponse is the JSON body returned by POST /credentials.
type IssueCredentialResponse struct {
	ID string `json:"id"`
}

// VerifyCredentialResponse is the JSON body returned by the verify check.
type VerifyCredentialResponse struct {
	Valid bool `json:"valid"`
}

// ValidityResponse is the JSON body returned by GET /credentials/{id}/valid.
type ValidityResponse struct {
	Valid bool `json:"valid"`
}

// ListCredentialsResponse wraps a refugee's credentials in issuance order.
type ListCredentialsResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}

func toCredentialResponse(rec *models.Record) CredentialResponse {
	resp := CredentialResponse{
		ID:           rec.ID.String(),
		Refugee:      rec.Refugee.String(),
		Institution:  rec.Institution.String(),
		Type:         string(rec.Type),
		ProofID:      rec.ProofID.String(),
		IssuedAt:     uint64(rec.IssuedAt),
		Revoked:      rec.Revoked,
		MetadataHash: rec.MetadataHash.String(),
		Title:        rec.Title,
		Description:  rec.Description,
	}
	if rec.ExpiresAt != nil {
		at := uint64(*rec.ExpiresAt)
		resp.ExpiresAt = &at
	}
	return resp
}

func toCredentialResponses(records []*models.Record) []CredentialResponse {
	out := make([]CredentialResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toCredentialResponse(rec))
	}
	return out
}
