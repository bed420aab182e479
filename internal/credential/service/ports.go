package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"haven/pkg/domain"
)

// ProofPort is the credential store's view of the proof store. Both calls
// are read-only so implementations must never take the shared serial gate;
// credential issuance invokes them while already holding it.
type ProofPort interface {
	// VerifyOwnership reports whether the proof exists, is currently valid,
	// and belongs to the claimed owner. Unknown ids are an explicit
	// NotFound error.
	VerifyOwnership(ctx context.Context, id domain.ProofID, owner domain.Principal) (bool, error)

	// IsValid reports not-revoked AND not-expired; false for unknown ids.
	IsValid(ctx context.Context, id domain.ProofID) (bool, error)
}

// RegistryPort is the outward vetting check consumed before a principal is
// admitted to the institution allow-list.
type RegistryPort interface {
	IsRegisteredInstitution(ctx context.Context, p domain.Principal) (bool, error)
}
