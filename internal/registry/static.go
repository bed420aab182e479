package registry

import (
	"context"
	"sync"

	"haven/pkg/domain"
)

// Static is an in-process Client backed by fixed allow-lists. It serves
// local development (seeded principals) and tests.
type Static struct {
	mu           sync.RWMutex
	verifiers    map[domain.Principal]struct{}
	institutions map[domain.Principal]struct{}
}

var _ Client = (*Static)(nil)

// NewStatic constructs an empty static registry.
func NewStatic() *Static {
	return &Static{
		verifiers:    make(map[domain.Principal]struct{}),
		institutions: make(map[domain.Principal]struct{}),
	}
}

// AddVerifier marks p as a vetted verifier.
func (s *Static) AddVerifier(p domain.Principal) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifiers[p] = struct{}{}
	return s
}

// AddInstitution marks p as a vetted institution.
func (s *Static) AddInstitution(p domain.Principal) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.institutions[p] = struct{}{}
	return s
}

func (s *Static) IsRegisteredVerifier(_ context.Context, p domain.Principal) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.verifiers[p]
	return ok, nil
}

func (s *Static) IsRegisteredInstitution(_ context.Context, p domain.Principal) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.institutions[p]
	return ok, nil
}
