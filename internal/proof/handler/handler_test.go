package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven/internal/platform/middleware"
	"haven/internal/proof/service"
	"haven/internal/proof/store"
	"haven/pkg/blockclock"
	"haven/pkg/domain"
	"haven/pkg/platform/serial"
)

const (
	adminPrincipal    = "admin"
	verifierPrincipal = "unhcr-office"
	ownerPrincipal    = "refugee-1"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(
		store.NewInMemoryStore(),
		blockclock.NewCounter(50),
		serial.New(),
		adminPrincipal,
		service.WithLogger(logger),
	)
	require.NoError(t, svc.RegisterVerifier(context.Background(), adminPrincipal, verifierPrincipal))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

// newRequest creates an HTTP request with a JSON body and, when principal is
// not empty, the authenticated principal in the context.
func newRequest(t *testing.T, method, endpoint string, body any, principal domain.Principal) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(bodyBytes)
	}
	req := httptest.NewRequest(method, endpoint, reader)
	if !principal.IsNil() {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	}
	return req
}

func issueProof(t *testing.T, router chi.Router) string {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs", IssueProofRequest{
		Owner: ownerPrincipal,
		Hash:  strings.Repeat("ab", 32),
		Type:  "education",
	}, verifierPrincipal))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp IssueProofResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestHandleIssue(t *testing.T) {
	t.Run("201 - proof issued", func(t *testing.T) {
		router := newTestRouter(t)
		id := issueProof(t, router)
		assert.Equal(t, "0", id)
	})

	t.Run("401 - caller is not a verifier", func(t *testing.T) {
		router := newTestRouter(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs", IssueProofRequest{
			Owner: ownerPrincipal,
			Hash:  strings.Repeat("ab", 32),
			Type:  "education",
		}, "bystander"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("400 - malformed hash", func(t *testing.T) {
		router := newTestRouter(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs", IssueProofRequest{
			Owner: ownerPrincipal,
			Hash:  "zz",
			Type:  "education",
		}, verifierPrincipal))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 - invalid body", func(t *testing.T) {
		router := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/proofs", strings.NewReader("{"))
		req = req.WithContext(middleware.WithPrincipal(req.Context(), verifierPrincipal))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGet(t *testing.T) {
	router := newTestRouter(t)
	id := issueProof(t, router)

	t.Run("200 - existing proof", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs/"+id, nil, ""))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProofResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ownerPrincipal, resp.Owner)
		assert.Equal(t, verifierPrincipal, resp.Verifier)
		assert.Equal(t, uint64(50), resp.IssuedAt)
	})

	t.Run("404 - unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs/999", nil, ""))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("400 - non-numeric id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs/abc", nil, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleVerifyOwnership(t *testing.T) {
	router := newTestRouter(t)
	id := issueProof(t, router)

	t.Run("200 - owner matches", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs/verify-ownership", VerifyOwnershipRequest{
			ProofID: id,
			Owner:   ownerPrincipal,
		}, ""))
		require.Equal(t, http.StatusOK, w.Code)

		var resp VerifyOwnershipResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
	})

	t.Run("404 - unknown proof is an explicit error", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs/verify-ownership", VerifyOwnershipRequest{
			ProofID: "999",
			Owner:   ownerPrincipal,
		}, ""))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleRevoke(t *testing.T) {
	router := newTestRouter(t)
	id := issueProof(t, router)

	t.Run("401 - third party cannot revoke", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs/"+id+"/revoke", nil, "stranger"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("200 - verifier revokes and validity flips", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs/"+id+"/revoke", nil, verifierPrincipal))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs/"+id+"/valid", nil, ""))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ValidityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
	})
}

func TestHandleList(t *testing.T) {
	router := newTestRouter(t)
	issueProof(t, router)

	t.Run("200 - owner's proofs", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs?owner="+ownerPrincipal, nil, ""))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ListProofsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Proofs, 1)
		assert.Equal(t, "0", resp.Proofs[0].ID)
	})

	t.Run("200 - valid_only drops revoked proofs", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs", IssueProofRequest{
			Owner: ownerPrincipal,
			Hash:  strings.Repeat("cd", 32),
			Type:  "education",
		}, verifierPrincipal))
		require.Equal(t, http.StatusCreated, w.Code)
		var issued IssueProofResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issued))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/proofs/"+issued.ID+"/revoke", nil, verifierPrincipal))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs?owner="+ownerPrincipal+"&valid_only=true", nil, ""))
		require.Equal(t, http.StatusOK, w.Code)

		var resp ListProofsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Proofs, 1)
		assert.Equal(t, "0", resp.Proofs[0].ID)
	})

	t.Run("400 - missing owner parameter", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodGet, "/proofs", nil, ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleRegisterVerifier(t *testing.T) {
	router := newTestRouter(t)

	t.Run("401 - non-admin caller", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/verifiers", RegisterVerifierRequest{
			Principal: "new-verifier",
		}, "stranger"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("201 - admin registers", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newRequest(t, http.MethodPost, "/verifiers", RegisterVerifierRequest{
			Principal: "new-verifier",
		}, adminPrincipal))
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
