package handler

// IssueCredentialRequest is the JSON body for POST /credentials. The issuing
// institution comes from the authentication context, never from the body.
type IssueCredentialRequest struct {
	Refugee         string  `json:"refugee"`
	ProofID         string  `json:"proof_id"`
	Type            string  `json:"type"`
	MetadataHash    string  `json:"metadata_hash"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	ExpiresInBlocks *uint64 `json:"expires_in_blocks,omitempty"`
}

// VerifyCredentialRequest is the JSON body for POST /credentials/verify.
type VerifyCredentialRequest struct {
	CredentialID string `json:"credential_id"`
	Refugee      string `json:"refugee"`
}

// RegisterInstitutionRequest is the JSON body for POST /institutions.
type RegisterInstitutionRequest struct {
	Principal string `json:"principal"`
}
