package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	credmodels "haven/internal/credential/models"
	"haven/pkg/domain"
)

// CredentialPort is the enrollment store's view of the credential store.
// Both calls are read-only so implementations must never take the shared
// serial gate; enrollment invokes them while already holding it.
type CredentialPort interface {
	// Verify reports whether the credential exists, is currently valid, and
	// belongs to the named refugee. Unknown ids are an explicit NotFound
	// error.
	Verify(ctx context.Context, id domain.CredentialID, refugee domain.Principal) (bool, error)

	// Get returns the credential record, or nil without error when the id
	// is unknown. Enrollment uses it to match the prerequisite type.
	Get(ctx context.Context, id domain.CredentialID) (*credmodels.Record, error)
}

// InstitutionPort answers whether a principal sits on the credential store's
// institution allow-list. Course creation consults it before writing.
type InstitutionPort interface {
	IsRegisteredInstitution(ctx context.Context, p domain.Principal) (bool, error)
}
