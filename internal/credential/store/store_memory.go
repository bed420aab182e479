package store

import (
	"context"
	"sync"

	"haven/internal/credential/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/boundedlist"
)

// InMemoryStore keeps the credential world state in memory: the primary
// record table, the proof-id 1:1 index, and the bounded per-refugee index.
type InMemoryStore struct {
	mu        sync.RWMutex
	nextID    uint64
	records   map[domain.CredentialID]*models.Record
	byProofID map[domain.ProofID]domain.CredentialID
	byRefugee map[domain.Principal]*boundedlist.List[domain.CredentialID]
}

// NewInMemoryStore constructs an empty credential store. The first issued
// credential receives id 0.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records:   make(map[domain.CredentialID]*models.Record),
		byProofID: make(map[domain.ProofID]domain.CredentialID),
		byRefugee: make(map[domain.Principal]*boundedlist.List[domain.CredentialID]),
	}
}

// Insert allocates the next id and updates both indexes. A proof backs at
// most one credential across the store's lifetime, including revoked ones.
// All failure checks run before the first write.
func (s *InMemoryStore) Insert(_ context.Context, rec *models.Record) (domain.CredentialID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byProofID[rec.ProofID]; exists {
		return 0, dErrors.New(dErrors.CodeAlreadyExists, "proof already backs a credential")
	}
	refugeeIndex := s.byRefugee[rec.Refugee]
	if refugeeIndex.Full() {
		return 0, dErrors.New(dErrors.CodeCapacityExceeded, "refugee credential index full")
	}
	if refugeeIndex == nil {
		refugeeIndex = boundedlist.New[domain.CredentialID](MaxCredentialsPerRefugee)
		s.byRefugee[rec.Refugee] = refugeeIndex
	}

	id := domain.CredentialID(s.nextID)
	copyRec := *rec
	copyRec.ID = id

	s.records[id] = &copyRec
	s.byProofID[copyRec.ProofID] = id
	if err := refugeeIndex.Append(id); err != nil {
		// Unreachable after the Full check above; kept as a hard invariant.
		delete(s.records, id)
		delete(s.byProofID, copyRec.ProofID)
		return 0, err
	}
	s.nextID++

	return id, nil
}

// FindByID retrieves a credential record by id or returns ErrNotFound.
func (s *InMemoryStore) FindByID(_ context.Context, id domain.CredentialID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyRec := *rec
	return &copyRec, nil
}

// ListByRefugee returns the refugee's credentials in issuance order. Unknown
// refugees yield an empty result, not an error.
func (s *InMemoryStore) ListByRefugee(_ context.Context, refugee domain.Principal) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byRefugee[refugee].Items()
	out := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			copyRec := *rec
			out = append(out, &copyRec)
		}
	}
	return out, nil
}

// MarkRevoked flips the one-way revoked flag. Double revoke is a no-op
// success.
func (s *InMemoryStore) MarkRevoked(_ context.Context, id domain.CredentialID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Revoked = true
	return nil
}
