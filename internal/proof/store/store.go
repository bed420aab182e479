package store

import (
	"context"

	"haven/internal/proof/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// MaxProofsPerOwner caps the per-owner secondary index.
const MaxProofsPerOwner = 100

// ErrNotFound keeps storage-specific lookups consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "proof not found")

// Store persists proof records and their indexes.
//
// Error Contract:
// - FindByID returns ErrNotFound when the id is unknown
// - Insert returns CodeAlreadyExists for a duplicate hash and
//   CodeCapacityExceeded when the owner's index is at its ceiling; on any
//   failure no index or record is partially written
// - MarkRevoked returns ErrNotFound for unknown ids and is a no-op success
//   on an already-revoked record
type Store interface {
	Insert(ctx context.Context, rec *models.Record) (domain.ProofID, error)
	FindByID(ctx context.Context, id domain.ProofID) (*models.Record, error)
	ListByOwner(ctx context.Context, owner domain.Principal) ([]*models.Record, error)
	MarkRevoked(ctx context.Context, id domain.ProofID) error
}
