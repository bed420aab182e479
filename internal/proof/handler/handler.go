package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"haven/internal/platform/middleware"
	"haven/internal/proof/models"
	"haven/internal/transport/http/shared"
	respond "haven/internal/transport/http/shared/json"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// Service defines the interface for proof operations.
type Service interface {
	Issue(ctx context.Context, caller domain.Principal, req models.IssueRequest) (domain.ProofID, error)
	Revoke(ctx context.Context, caller domain.Principal, id domain.ProofID) error
	Get(ctx context.Context, id domain.ProofID) (*models.Record, error)
	ListByOwner(ctx context.Context, owner domain.Principal, validOnly bool) ([]*models.Record, error)
	VerifyOwnership(ctx context.Context, id domain.ProofID, owner domain.Principal) (bool, error)
	IsValid(ctx context.Context, id domain.ProofID) (bool, error)
	RegisterVerifier(ctx context.Context, caller, verifier domain.Principal) error
	TransferAdmin(ctx context.Context, caller, newAdmin domain.Principal) error
}

// Handler handles proof-related endpoints.
type Handler struct {
	logger *slog.Logger
	proofs Service
}

// New creates a new proof Handler.
func New(proofs Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		proofs: proofs,
	}
}

// Register registers the proof routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/proofs", h.handleIssue)
	r.Get("/proofs", h.handleList)
	r.Get("/proofs/{id}", h.handleGet)
	r.Get("/proofs/{id}/valid", h.handleIsValid)
	r.Post("/proofs/{id}/revoke", h.handleRevoke)
	r.Post("/proofs/verify-ownership", h.handleVerifyOwnership)
	r.Post("/verifiers", h.handleRegisterVerifier)
	r.Post("/admin/transfer", h.handleTransferAdmin)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	var body IssueProofRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "failed to decode issue proof request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	req, err := h.toIssueRequest(body)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	id, err := h.proofs.Issue(ctx, caller, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, IssueProofResponse{ID: id.String()})
}

func (h *Handler) toIssueRequest(body IssueProofRequest) (models.IssueRequest, error) {
	owner, err := domain.ParsePrincipal(body.Owner)
	if err != nil {
		return models.IssueRequest{}, err
	}
	hash, err := domain.ParseHash(body.Hash)
	if err != nil {
		return models.IssueRequest{}, err
	}
	return models.IssueRequest{
		Owner:           owner,
		Hash:            hash,
		Type:            models.ProofType(body.Type),
		ExpiresInBlocks: body.ExpiresInBlocks,
	}, nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseProofID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	rec, err := h.proofs.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if rec == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "proof not found"))
		return
	}

	respond.WriteJSON(w, http.StatusOK, toProofResponse(rec))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	owner, err := domain.ParsePrincipal(r.URL.Query().Get("owner"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "owner query parameter required"))
		return
	}

	validOnly := r.URL.Query().Get("valid_only") == "true"
	records, err := h.proofs.ListByOwner(r.Context(), owner, validOnly)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ListProofsResponse{Proofs: toProofResponses(records)})
}

func (h *Handler) handleIsValid(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseProofID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	valid, err := h.proofs.IsValid(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ValidityResponse{Valid: valid})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	id, err := domain.ParseProofID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.proofs.Revoke(ctx, caller, id); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func (h *Handler) handleVerifyOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body VerifyOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := domain.ParseProofID(body.ProofID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	owner, err := domain.ParsePrincipal(body.Owner)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	valid, err := h.proofs.VerifyOwnership(ctx, id, owner)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, VerifyOwnershipResponse{Valid: valid})
}

func (h *Handler) handleRegisterVerifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	var body RegisterVerifierRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	verifier, err := domain.ParsePrincipal(body.Principal)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.proofs.RegisterVerifier(ctx, caller, verifier); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

func (h *Handler) handleTransferAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	var body TransferAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	newAdmin, err := domain.ParsePrincipal(body.NewAdmin)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.proofs.TransferAdmin(ctx, caller, newAdmin); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}
