package lifecycle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credhandler "haven/internal/credential/handler"
	credservice "haven/internal/credential/service"
	credstore "haven/internal/credential/store"
	enrollhandler "haven/internal/enrollment/handler"
	enrollservice "haven/internal/enrollment/service"
	enrollstore "haven/internal/enrollment/store"
	jwttoken "haven/internal/jwt_token"
	"haven/internal/platform/health"
	"haven/internal/registry"
	proofhandler "haven/internal/proof/handler"
	proofservice "haven/internal/proof/service"
	proofstore "haven/internal/proof/store"
	httptransport "haven/internal/transport/http"
	"haven/pkg/blockclock"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/serial"
	"haven/pkg/testutil"
)

// env wires the full HTTP surface - router, bearer auth, all three services
// sharing one serial gate and one clock - the way cmd/server does.
type env struct {
	router http.Handler
	jwt    *jwttoken.JWTService
	clock  *blockclock.Counter
}

func setup(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := blockclock.NewCounter(1000)
	gate := serial.New()

	vetting := registry.NewStatic().
		AddVerifier(testutil.TestPrincipals.Verifier).
		AddInstitution(testutil.TestPrincipals.Institution)

	proofs := proofservice.NewService(
		proofstore.NewInMemoryStore(), clock, gate, testutil.TestPrincipals.Admin,
		proofservice.WithLogger(logger),
		proofservice.WithRegistry(vetting),
	)
	credentials := credservice.NewService(
		credstore.NewInMemoryStore(), proofs, clock, gate, testutil.TestPrincipals.Registry,
		credservice.WithLogger(logger),
		credservice.WithRegistry(vetting),
	)
	enrollments := enrollservice.NewService(
		enrollstore.NewInMemoryStore(), credentials, credentials, clock, gate, testutil.TestPrincipals.Admin,
		enrollservice.WithLogger(logger),
	)

	jwtService := jwttoken.NewJWTService("test-secret-key", "haven", "haven-client", 15*time.Minute)

	router := httptransport.NewRouter(httptransport.Handlers{
		Proofs:      proofhandler.New(proofs, logger),
		Credentials: credhandler.New(credentials, logger),
		Enrollments: enrollhandler.New(enrollments, logger),
		Health:      health.New("test", clock),
	}, jwttoken.NewJWTServiceAdapter(jwtService), clock, logger)

	return &env{router: router, jwt: jwtService, clock: clock}
}

// do sends an authenticated JSON request through the full middleware stack.
func (e *env) do(t *testing.T, method, endpoint string, body any, principal domain.Principal) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, endpoint, reader)
	req.Header.Set("Content-Type", "application/json")
	if !principal.IsNil() {
		token, err := e.jwt.GenerateToken(principal)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// TestFullLifecycle walks the complete journey: verifier registration, proof
// issuance, credential issuance against the proof, course creation with a
// prerequisite, and enrollment backed by the credential.
func TestFullLifecycle(t *testing.T) {
	e := setup(t)
	p := testutil.TestPrincipals

	// Requests without a bearer token never reach the services.
	w := e.do(t, http.MethodPost, "/verifiers", map[string]string{"principal": p.Verifier.String()}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Admin admits the verifier; registry admits the institution.
	w = e.do(t, http.MethodPost, "/verifiers", map[string]string{"principal": p.Verifier.String()}, p.Admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/institutions", map[string]string{"principal": p.Institution.String()}, p.Registry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Verifier issues the first proof; ids start at zero.
	w = e.do(t, http.MethodPost, "/proofs", proofhandler.IssueProofRequest{
		Owner: p.Refugee1.String(),
		Hash:  testutil.HashOf("attestation:education:refugee-1").String(),
		Type:  "education",
	}, p.Verifier)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	proofID := decodeID(t, w)
	assert.Equal(t, "0", proofID)

	// Institution issues a credential backed by that proof.
	w = e.do(t, http.MethodPost, "/credentials", credhandler.IssueCredentialRequest{
		Refugee:      p.Refugee1.String(),
		ProofID:      proofID,
		Type:         "education",
		MetadataHash: testutil.HashOf("credential:diploma:refugee-1").String(),
		Title:        "Secondary School Diploma",
	}, p.Institution)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	credentialID := decodeID(t, w)
	assert.Equal(t, "0", credentialID)

	// A capacity-one course guarded by an education prerequisite.
	prereq := "education"
	w = e.do(t, http.MethodPost, "/courses", enrollhandler.CreateCourseRequest{
		Title:          "Vocational Carpentry",
		Capacity:       1,
		PrereqType:     &prereq,
		DurationBlocks: 500,
	}, p.Institution)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	courseID := decodeID(t, w)

	// The credentialed refugee takes the only seat.
	w = e.do(t, http.MethodPost, "/courses/"+courseID+"/enroll", enrollhandler.EnrollRequest{
		CredentialID: &credentialID,
	}, p.Refugee1)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "1", decodeID(t, w))

	// The second refugee finds the course full.
	w = e.do(t, http.MethodPost, "/courses/"+courseID+"/enroll", nil, p.Refugee2)
	require.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodGet, "/courses/"+courseID+"/open", nil, p.Refugee2)
	require.Equal(t, http.StatusOK, w.Code)
	var open struct {
		Open bool `json:"open"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &open))
	assert.False(t, open.Open)
}

// TestRevocationRipplesForward verifies that revoking a credential blocks
// future prerequisite checks but leaves existing enrollments standing.
func TestRevocationRipplesForward(t *testing.T) {
	e := setup(t)
	p := testutil.TestPrincipals

	w := e.do(t, http.MethodPost, "/verifiers", map[string]string{"principal": p.Verifier.String()}, p.Admin)
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.do(t, http.MethodPost, "/institutions", map[string]string{"principal": p.Institution.String()}, p.Registry)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/proofs", proofhandler.IssueProofRequest{
		Owner: p.Refugee1.String(),
		Hash:  testutil.HashOf("attestation:education:ripple").String(),
		Type:  "education",
	}, p.Verifier)
	require.Equal(t, http.StatusCreated, w.Code)
	proofID := decodeID(t, w)

	w = e.do(t, http.MethodPost, "/credentials", credhandler.IssueCredentialRequest{
		Refugee:      p.Refugee1.String(),
		ProofID:      proofID,
		Type:         "education",
		MetadataHash: testutil.HashOf("credential:ripple").String(),
		Title:        "Diploma",
	}, p.Institution)
	require.Equal(t, http.StatusCreated, w.Code)
	credentialID := decodeID(t, w)

	// Revoking the proof afterwards does not retract the credential.
	w = e.do(t, http.MethodPost, "/proofs/"+proofID+"/revoke", nil, p.Verifier)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/credentials/"+credentialID+"/valid", nil, p.Refugee1)
	require.Equal(t, http.StatusOK, w.Code)
	var validity struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validity))
	assert.True(t, validity.Valid)

	// Once the credential itself is revoked, the prerequisite check fails.
	w = e.do(t, http.MethodPost, "/credentials/"+credentialID+"/revoke", nil, p.Institution)
	require.Equal(t, http.StatusOK, w.Code)

	prereq := "education"
	w = e.do(t, http.MethodPost, "/courses", enrollhandler.CreateCourseRequest{
		Title:          "Advanced Welding",
		Capacity:       5,
		PrereqType:     &prereq,
		DurationBlocks: 500,
	}, p.Institution)
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := decodeID(t, w)

	w = e.do(t, http.MethodPost, "/courses/"+courseID+"/enroll", enrollhandler.EnrollRequest{
		CredentialID: &credentialID,
	}, p.Refugee1)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

// TestConcurrentEnrollmentContention hammers a small course from many
// goroutines; the serial gate must hand out exactly capacity seats.
func TestConcurrentEnrollmentContention(t *testing.T) {
	e := setup(t)
	p := testutil.TestPrincipals

	w := e.do(t, http.MethodPost, "/institutions", map[string]string{"principal": p.Institution.String()}, p.Registry)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/courses", enrollhandler.CreateCourseRequest{
		Title:          "Popular Course",
		Capacity:       5,
		DurationBlocks: 500,
	}, p.Institution)
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := decodeID(t, w)

	result := testutil.RunConcurrent(20, func(idx int) error {
		refugee := domain.Principal(fmt.Sprintf("refugee-%d", idx))
		w := e.do(t, http.MethodPost, "/courses/"+courseID+"/enroll", nil, refugee)
		if w.Code == http.StatusCreated {
			return nil
		}
		var resp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			return err
		}
		return dErrors.New(dErrors.Code(resp.Error), resp.Description)
	})

	assert.Equal(t, int32(5), result.Successes)
	assert.Equal(t, int32(15), result.Capacity)
	assert.Equal(t, int32(20), result.Total())
}
