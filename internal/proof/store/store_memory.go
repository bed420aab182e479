package store

import (
	"context"
	"sync"

	"haven/internal/proof/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/boundedlist"
)

// InMemoryStore keeps the proof world state in memory: the primary record
// table keyed by id, the hash uniqueness index, and the bounded per-owner
// index. It is safe for concurrent access on its own, though in production
// every call arrives already serialized by the shared gate.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  uint64
	records map[domain.ProofID]*models.Record
	byHash  map[domain.Hash]domain.ProofID
	byOwner map[domain.Principal]*boundedlist.List[domain.ProofID]
}

// NewInMemoryStore constructs an empty proof store. The first issued proof
// receives id 0.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[domain.ProofID]*models.Record),
		byHash:  make(map[domain.Hash]domain.ProofID),
		byOwner: make(map[domain.Principal]*boundedlist.List[domain.ProofID]),
	}
}

// Insert allocates the next id, stores the record, and updates both indexes.
// All failure checks run before the first write so a failed insert leaves no
// trace: the hash index, owner index, and id counter are untouched.
func (s *InMemoryStore) Insert(_ context.Context, rec *models.Record) (domain.ProofID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byHash[rec.Hash]; exists {
		return 0, dErrors.New(dErrors.CodeAlreadyExists, "proof hash already registered")
	}
	ownerIndex := s.byOwner[rec.Owner]
	if ownerIndex.Full() {
		return 0, dErrors.New(dErrors.CodeCapacityExceeded, "owner proof index full")
	}
	if ownerIndex == nil {
		ownerIndex = boundedlist.New[domain.ProofID](MaxProofsPerOwner)
		s.byOwner[rec.Owner] = ownerIndex
	}

	id := domain.ProofID(s.nextID)
	copyRec := *rec
	copyRec.ID = id

	s.records[id] = &copyRec
	s.byHash[copyRec.Hash] = id
	if err := ownerIndex.Append(id); err != nil {
		// Unreachable after the Full check above; kept as a hard invariant.
		delete(s.records, id)
		delete(s.byHash, copyRec.Hash)
		return 0, err
	}
	s.nextID++

	return id, nil
}

// FindByID retrieves a proof record by id or returns ErrNotFound.
func (s *InMemoryStore) FindByID(_ context.Context, id domain.ProofID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyRec := *rec
	return &copyRec, nil
}

// ListByOwner returns the owner's proofs in issuance order. Unknown owners
// yield an empty result, not an error.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner domain.Principal) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byOwner[owner].Items()
	out := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			copyRec := *rec
			out = append(out, &copyRec)
		}
	}
	return out, nil
}

// MarkRevoked flips the one-way revoked flag. Revoking an already-revoked
// proof is a no-op success.
func (s *InMemoryStore) MarkRevoked(_ context.Context, id domain.ProofID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Revoked = true
	return nil
}
