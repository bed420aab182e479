package models

import (
	"haven/pkg/domain"
)

// IssueRequest carries the inputs for credential issuance. The issuing
// institution comes from the authentication context.
type IssueRequest struct {
	Refugee         domain.Principal
	ProofID         domain.ProofID
	Type            CredentialType
	ExpiresInBlocks *uint64
	MetadataHash    domain.Hash
	Title           string
	Description     string
}
