package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"haven/internal/credential/metrics"
	"haven/internal/credential/models"
	"haven/internal/credential/store"
	"haven/pkg/blockclock"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/serial"
)

// Option configures the credential service.
type Option func(*Service)

// Service owns credential issuance, revocation, and validity queries. It
// depends on the proof store through ProofPort: issuance makes the ownership
// check and then the validity check, and aborts with no state change on the
// first failure. The whole sequence runs inside one serial gate acquisition
// so no concurrent revocation can slip between check and write.
type Service struct {
	store     store.Store
	registry  RegistryPort
	clock     blockclock.Source
	gate      *serial.Gate
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	mu                sync.RWMutex
	registryPrincipal domain.Principal
	institutions      map[domain.Principal]struct{}
	proofs            ProofPort
}

// NewService creates a credential service. The registry principal is fixed
// at construction; the proof endpoint may be swapped later via SetProofPort.
func NewService(st store.Store, proofs ProofPort, clock blockclock.Source, gate *serial.Gate, registryPrincipal domain.Principal, opts ...Option) *Service {
	svc := &Service{
		store:             st,
		proofs:            proofs,
		clock:             clock,
		gate:              gate,
		registryPrincipal: registryPrincipal,
		institutions:      make(map[domain.Principal]struct{}),
		tracer:            otel.Tracer("haven/credential"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithRegistry configures the outward vetting check for institution registration.
func WithRegistry(registry RegistryPort) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithMetrics configures Prometheus collectors for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger configures a logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// RegistryPrincipal returns the principal allowed to manage institutions and
// endpoint references.
func (s *Service) RegistryPrincipal() domain.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registryPrincipal
}

// IsRegisteredInstitution reports allow-list membership. The enrollment
// store consumes this through its InstitutionPort.
func (s *Service) IsRegisteredInstitution(_ context.Context, p domain.Principal) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.institutions[p]
	return ok, nil
}

// RegisterInstitution admits a principal to the institution allow-list. Only
// the registry principal may register, and when a vetting registry is
// configured the principal must be vetted there first.
func (s *Service) RegisterInstitution(ctx context.Context, caller, institution domain.Principal) error {
	return s.gate.Do(ctx, func() error {
		if caller != s.RegistryPrincipal() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the registry principal can register institutions")
		}
		if institution.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "institution principal required")
		}
		if s.registry != nil {
			vetted, err := s.registry.IsRegisteredInstitution(ctx, institution)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "vetting registry unavailable")
			}
			if !vetted {
				return dErrors.New(dErrors.CodeUnauthorized, "principal not vetted as an institution")
			}
		}
		s.mu.Lock()
		s.institutions[institution] = struct{}{}
		s.mu.Unlock()
		return nil
	})
}

// SetProofPort swaps the proof store reference. Restricted to the registry
// principal.
func (s *Service) SetProofPort(ctx context.Context, caller domain.Principal, proofs ProofPort) error {
	return s.gate.Do(ctx, func() error {
		if caller != s.RegistryPrincipal() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the registry principal can set the proof endpoint")
		}
		if proofs == nil {
			return dErrors.New(dErrors.CodeInvalidInput, "proof endpoint required")
		}
		s.mu.Lock()
		s.proofs = proofs
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) proofPort() ProofPort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proofs
}

// Issue creates a credential for a refugee holding a valid proof. Checks run
// in a fixed order - institution, type, inputs, proof ownership, proof
// validity, uniqueness, capacity - and the operation aborts with no state
// change on the first failure.
func (s *Service) Issue(ctx context.Context, caller domain.Principal, req models.IssueRequest) (domain.CredentialID, error) {
	ctx, span := s.tracer.Start(ctx, "credential.issue")
	defer span.End()

	start := time.Now()
	var id domain.CredentialID
	err := s.gate.Do(ctx, func() error {
		registered, err := s.IsRegisteredInstitution(ctx, caller)
		if err != nil {
			return err
		}
		if !registered {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not a registered institution")
		}
		if !req.Type.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown credential type")
		}
		if req.MetadataHash.IsZero() {
			return dErrors.New(dErrors.CodeInvalidInput, "metadata hash required")
		}
		if req.Title == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "title required")
		}
		if req.Refugee.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "refugee principal required")
		}
		if req.ExpiresInBlocks != nil && *req.ExpiresInBlocks == 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "expiry duration must be positive")
		}

		proofs := s.proofPort()
		if proofs == nil {
			return dErrors.New(dErrors.CodeInternal, "proof endpoint not configured")
		}

		owned, err := proofs.VerifyOwnership(ctx, req.ProofID, req.Refugee)
		if err != nil {
			return err
		}
		if !owned {
			return dErrors.New(dErrors.CodeUnauthorized, "refugee does not own the referenced proof")
		}

		valid, err := proofs.IsValid(ctx, req.ProofID)
		if err != nil {
			return err
		}
		if !valid {
			return dErrors.New(dErrors.CodeExpiredOrRevoked, "referenced proof is revoked or expired")
		}

		height := blockclock.At(ctx, s.clock)
		rec := models.Record{
			Refugee:      req.Refugee,
			Institution:  caller,
			Type:         req.Type,
			ProofID:      req.ProofID,
			IssuedAt:     height,
			MetadataHash: req.MetadataHash,
			Title:        req.Title,
			Description:  req.Description,
		}
		if req.ExpiresInBlocks != nil {
			expiresAt := height + domain.BlockHeight(*req.ExpiresInBlocks)
			rec.ExpiresAt = &expiresAt
		}

		id, err = s.store.Insert(ctx, &rec)
		return err
	})
	if err != nil {
		s.recordRejection(err)
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued(string(req.Type))
		s.metrics.ObserveIssueLatency(time.Since(start).Seconds())
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "credential issued",
			"credential_id", id,
			"refugee", req.Refugee,
			"proof_id", req.ProofID,
			"institution", caller,
		)
	}
	return id, nil
}

// Revoke flips the one-way revoked flag. Only the issuing institution or the
// registry principal may revoke; revoking twice is a no-op success.
func (s *Service) Revoke(ctx context.Context, caller domain.Principal, id domain.CredentialID) error {
	ctx, span := s.tracer.Start(ctx, "credential.revoke")
	defer span.End()

	err := s.gate.Do(ctx, func() error {
		rec, err := s.store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if caller != rec.Institution && caller != s.RegistryPrincipal() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the issuing institution or registry principal can revoke")
		}
		return s.store.MarkRevoked(ctx, id)
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementRevoked()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "credential revoked", "credential_id", id, "caller", caller)
	}
	return nil
}

// Get returns the credential record, or nil without error when the id is
// unknown.
func (s *Service) Get(ctx context.Context, id domain.CredentialID) (*models.Record, error) {
	rec, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByRefugee returns the refugee's credentials in issuance order. With
// validOnly set, records revoked or expired at the current height are dropped.
func (s *Service) ListByRefugee(ctx context.Context, refugee domain.Principal, validOnly bool) ([]*models.Record, error) {
	records, err := s.store.ListByRefugee(ctx, refugee)
	if err != nil || !validOnly {
		return records, err
	}
	height := blockclock.At(ctx, s.clock)
	valid := make([]*models.Record, 0, len(records))
	for _, rec := range records {
		if rec.ValidAt(height) {
			valid = append(valid, rec)
		}
	}
	return valid, nil
}

// Verify reports whether the credential exists, is currently valid, and
// belongs to the named refugee. Unknown ids are an explicit NotFound error.
func (s *Service) Verify(ctx context.Context, id domain.CredentialID, refugee domain.Principal) (bool, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	ok := rec.Refugee == refugee && rec.ValidAt(blockclock.At(ctx, s.clock))
	if s.metrics != nil {
		outcome := "denied"
		if ok {
			outcome = "verified"
		}
		s.metrics.IncrementVerifyCheck(outcome)
	}
	return ok, nil
}

// IsValid reports not-revoked AND not-expired at the current height. Unknown
// ids answer false, never an error.
func (s *Service) IsValid(ctx context.Context, id domain.CredentialID) (bool, error) {
	rec, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.ValidAt(blockclock.At(ctx, s.clock)), nil
}

func (s *Service) recordRejection(err error) {
	if s.metrics == nil {
		return
	}
	var dErr *dErrors.Error
	if errors.As(err, &dErr) {
		s.metrics.IncrementRejected(string(dErr.Code))
	}
}
