package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"haven/internal/proof/metrics"
	"haven/internal/proof/models"
	"haven/internal/proof/store"
	"haven/pkg/blockclock"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/serial"
)

// RegistryPort is the outward vetting check consumed before a principal is
// admitted to the verifier allow-list. The external registry owns vetting;
// this service only asks.
type RegistryPort interface {
	IsRegisteredVerifier(ctx context.Context, p domain.Principal) (bool, error)
}

// Option configures the proof service.
type Option func(*Service)

// Service owns proof issuance, revocation, and validity queries, plus the
// admin/verifier authorization state. All mutating operations run under the
// shared serial gate so callers never observe a half-applied operation.
type Service struct {
	store    store.Store
	registry RegistryPort
	clock    blockclock.Source
	gate     *serial.Gate
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer

	mu        sync.RWMutex
	admin     domain.Principal
	verifiers map[domain.Principal]struct{}
}

// NewService creates a proof service. The admin principal is fixed at
// construction and afterwards changes only through TransferAdmin.
func NewService(st store.Store, clock blockclock.Source, gate *serial.Gate, admin domain.Principal, opts ...Option) *Service {
	svc := &Service{
		store:     st,
		clock:     clock,
		gate:      gate,
		admin:     admin,
		verifiers: make(map[domain.Principal]struct{}),
		tracer:    otel.Tracer("haven/proof"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithRegistry configures the outward vetting check for verifier registration.
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

// Admin returns the current admin principal.
func (s *Service) Admin() domain.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// IsRegisteredVerifier reports allow-list membership.
func (s *Service) IsRegisteredVerifier(p domain.Principal) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.verifiers[p]
	return ok
}

// RegisterVerifier admits a principal to the verifier allow-list. Only the
// current admin may register, and when a vetting registry is configured the
// principal must be vetted there first.
func (s *Service) RegisterVerifier(ctx context.Context, caller, verifier domain.Principal) error {
	return s.gate.Do(ctx, func() error {
		if caller != s.Admin() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the admin can register verifiers")
		}
		if verifier.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "verifier principal required")
		}
		if s.registry != nil {
			vetted, err := s.registry.IsRegisteredVerifier(ctx, verifier)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "vetting registry unavailable")
			}
			if !vetted {
				return dErrors.New(dErrors.CodeUnauthorized, "principal not vetted as a verifier")
			}
		}
		s.mu.Lock()
		s.verifiers[verifier] = struct{}{}
		s.mu.Unlock()
		return nil
	})
}

// TransferAdmin hands the admin role to a new principal.
func (s *Service) TransferAdmin(ctx context.Context, caller, newAdmin domain.Principal) error {
	return s.gate.Do(ctx, func() error {
		if caller != s.Admin() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the admin can transfer the admin role")
		}
		if newAdmin.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "new admin principal required")
		}
		s.mu.Lock()
		s.admin = newAdmin
		s.mu.Unlock()
		return nil
	})
}

// Issue creates a proof record for the owner named in the request. The
// caller must be a registered verifier; that check runs before any other
// validation. On success the returned id is the next value of the store's
// monotonic sequence.
func (s *Service) Issue(ctx context.Context, caller domain.Principal, req models.IssueRequest) (domain.ProofID, error) {
	ctx, span := s.tracer.Start(ctx, "proof.issue")
	defer span.End()

	start := time.Now()
	var id domain.ProofID
	err := s.gate.Do(ctx, func() error {
		if !s.IsRegisteredVerifier(caller) {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not a registered verifier")
		}
		if !req.Type.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown proof type")
		}
		if req.Hash.IsZero() {
			return dErrors.New(dErrors.CodeInvalidInput, "proof hash required")
		}
		if req.Owner.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "owner principal required")
		}
		if req.ExpiresInBlocks != nil && *req.ExpiresInBlocks == 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "expiry duration must be positive")
		}

		height := blockclock.At(ctx, s.clock)
		rec := models.Record{
			Owner:    req.Owner,
			Hash:     req.Hash,
			Type:     req.Type,
			IssuedAt: height,
			Verifier: caller,
		}
		if req.ExpiresInBlocks != nil {
			expiresAt := height + domain.BlockHeight(*req.ExpiresInBlocks)
			rec.ExpiresAt = &expiresAt
		}

		var err error
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
		s.logger.InfoContext(ctx, "proof issued",
			"proof_id", id,
			"owner", req.Owner,
			"type", req.Type,
			"verifier", caller,
		)
	}
	return id, nil
}

// Revoke flips the one-way revoked flag. Only the issuing verifier or the
// current admin may revoke; revoking twice is a no-op success.
func (s *Service) Revoke(ctx context.Context, caller domain.Principal, id domain.ProofID) error {
	ctx, span := s.tracer.Start(ctx, "proof.revoke")
	defer span.End()

	err := s.gate.Do(ctx, func() error {
		rec, err := s.store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if caller != rec.Verifier && caller != s.Admin() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the issuing verifier or admin can revoke")
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
		s.logger.InfoContext(ctx, "proof revoked", "proof_id", id, "caller", caller)
	}
	return nil
}

// Get returns the proof record, or nil without error when the id is unknown.
// Read-only lookups stay silent on absence; only authorization and
// validation failures are explicit errors.
func (s *Service) Get(ctx context.Context, id domain.ProofID) (*models.Record, error) {
	rec, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByOwner returns the owner's proofs in issuance order. With validOnly
// set, records revoked or expired at the current height are dropped.
func (s *Service) ListByOwner(ctx context.Context, owner domain.Principal, validOnly bool) ([]*models.Record, error) {
	records, err := s.store.ListByOwner(ctx, owner)
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

// VerifyOwnership reports whether the proof exists, is currently valid, and
// belongs to the claimed owner. An unknown id is an explicit NotFound error,
// unlike Get: downstream issuance must distinguish a bad reference from a
// failed check.
func (s *Service) VerifyOwnership(ctx context.Context, id domain.ProofID, owner domain.Principal) (bool, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	ok := rec.Owner == owner && rec.ValidAt(blockclock.At(ctx, s.clock))
	if s.metrics != nil {
		outcome := "denied"
		if ok {
			outcome = "verified"
		}
		s.metrics.IncrementOwnershipCheck(outcome)
	}
	return ok, nil
}

// IsValid reports not-revoked AND not-expired at the current height. Unknown
// ids answer false, never an error.
func (s *Service) IsValid(ctx context.Context, id domain.ProofID) (bool, error) {
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
