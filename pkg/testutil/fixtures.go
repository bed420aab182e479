package testutil

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	proofmodels "haven/internal/proof/models"
	"haven/pkg/domain"
)

// TestPrincipals provides convenient pre-named principals for tests.
// Use these for deterministic test data.
var TestPrincipals = struct {
	Admin       domain.Principal
	Registry    domain.Principal
	Verifier    domain.Principal
	Institution domain.Principal
	Refugee1    domain.Principal
	Refugee2    domain.Principal
}{
	Admin:       "admin",
	Registry:    "registry",
	Verifier:    "unhcr-field-office",
	Institution: "college-1",
	Refugee1:    "refugee-1",
	Refugee2:    "refugee-2",
}

// HashOf derives a deterministic content hash from a label, in the format
// the stores expect. Distinct labels give distinct hashes.
func HashOf(label string) domain.Hash {
	return domain.Hash(blake2b.Sum256([]byte(label)))
}

// ProofIssueRequest builds an issue request with sensible defaults. The
// index keeps hashes unique across repeated calls.
func ProofIssueRequest(owner domain.Principal, idx int) proofmodels.IssueRequest {
	return proofmodels.IssueRequest{
		Owner: owner,
		Hash:  HashOf(fmt.Sprintf("attestation:%s:%d", owner, idx)),
		Type:  proofmodels.ProofTypeEducation,
	}
}
