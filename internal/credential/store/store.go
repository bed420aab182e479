package store

import (
	"context"

	"haven/internal/credential/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// MaxCredentialsPerRefugee caps the per-refugee secondary index.
const MaxCredentialsPerRefugee = 50

// ErrNotFound keeps storage-specific lookups consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "credential not found")

// Store persists credential records and their indexes.
//
// Error Contract:
// - FindByID returns ErrNotFound when the id is unknown
// - Insert returns CodeAlreadyExists when the proof already backs a
//   credential and CodeCapacityExceeded when the refugee's index is full;
//   failed inserts leave no partial writes
// - MarkRevoked returns ErrNotFound for unknown ids; double revoke is a
//   no-op success
type Store interface {
	Insert(ctx context.Context, rec *models.Record) (domain.CredentialID, error)
	FindByID(ctx context.Context, id domain.CredentialID) (*models.Record, error)
	ListByRefugee(ctx context.Context, refugee domain.Principal) ([]*models.Record, error)
	MarkRevoked(ctx context.Context, id domain.CredentialID) error
}
