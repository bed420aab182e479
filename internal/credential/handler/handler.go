package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"haven/internal/credential/models"
	"haven/internal/platform/middleware"
	"haven/internal/transport/http/shared"
	respond "haven/internal/transport/http/shared/json"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// Service defines the interface for credential operations.
type Service interface {
	Issue(ctx context.Context, caller domain.Principal, req models.IssueRequest) (domain.CredentialID, error)
	Revoke(ctx context.Context, caller domain.Principal, id domain.CredentialID) error
	Get(ctx context.Context, id domain.CredentialID) (*models.Record, error)
	ListByRefugee(ctx context.Context, refugee domain.Principal, validOnly bool) ([]*models.Record, error)
	Verify(ctx context.Context, id domain.CredentialID, refugee domain.Principal) (bool, error)
	IsValid(ctx context.Context, id domain.CredentialID) (bool, error)
	RegisterInstitution(ctx context.Context, caller, institution domain.Principal) error
}

// Handler handles credential-related endpoints.
type Handler struct {
	logger      *slog.Logger
	credentials Service
}

// New creates a new credential Handler.
func New(credentials Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:      logger,
		credentials: credentials,
	}
}

// Register registers the credential routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/credentials", h.handleIssue)
	r.Get("/credentials", h.handleList)
	r.Get("/credentials/{id}", h.handleGet)
	r.Get("/credentials/{id}/valid", h.handleIsValid)
	r.Post("/credentials/{id}/revoke", h.handleRevoke)
	r.Post("/credentials/verify", h.handleVerify)
	r.Post("/institutions", h.handleRegisterInstitution)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	var body IssueCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "failed to decode issue credential request",
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

	id, err := h.credentials.Issue(ctx, caller, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, IssueCredentialResponse{ID: id.String()})
}

func (h *Handler) toIssueRequest(body IssueCredentialRequest) (models.IssueRequest, error) {
	refugee, err := domain.ParsePrincipal(body.Refugee)
	if err != nil {
		return models.IssueRequest{}, err
	}
	proofID, err := domain.ParseProofID(body.ProofID)
	if err != nil {
		return models.IssueRequest{}, err
	}
	metadataHash, err := domain.ParseHash(body.MetadataHash)
	if err != nil {
		return models.IssueRequest{}, err
	}
	return models.IssueRequest{
		Refugee:         refugee,
		ProofID:         proofID,
		Type:            models.CredentialType(body.Type),
		MetadataHash:    metadataHash,
		Title:           body.Title,
		Description:     body.Description,
		ExpiresInBlocks: body.ExpiresInBlocks,
	}, nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCredentialID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	rec, err := h.credentials.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if rec == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "credential not found"))
		return
	}

	respond.WriteJSON(w, http.StatusOK, toCredentialResponse(rec))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	refugee, err := domain.ParsePrincipal(r.URL.Query().Get("refugee"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "refugee query parameter required"))
		return
	}

	validOnly := r.URL.Query().Get("valid_only") == "true"
	records, err := h.credentials.ListByRefugee(r.Context(), refugee, validOnly)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ListCredentialsResponse{Credentials: toCredentialResponses(records)})
}

func (h *Handler) handleIsValid(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCredentialID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	valid, err := h.credentials.IsValid(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ValidityResponse{Valid: valid})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	id, err := domain.ParseCredentialID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.credentials.Revoke(ctx, caller, id); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var body VerifyCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := domain.ParseCredentialID(body.CredentialID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	refugee, err := domain.ParsePrincipal(body.Refugee)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	valid, err := h.credentials.Verify(r.Context(), id, refugee)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, VerifyCredentialResponse{Valid: valid})
}

func (h *Handler) handleRegisterInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	var body RegisterInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	institution, err := domain.ParsePrincipal(body.Principal)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.credentials.RegisterInstitution(ctx, caller, institution); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}
