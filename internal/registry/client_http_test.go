package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contract "haven/contracts/registry"
	dErrors "haven/pkg/domain-errors"
)

func TestHTTPClientLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("X-API-Key"))

		switch r.URL.Path {
		case "/verifiers/unhcr-desk-7":
			_ = json.NewEncoder(w).Encode(contract.StatusResponse{
				Principal:  "unhcr-desk-7",
				Role:       contract.RoleVerifier,
				Registered: true,
			})
		case "/institutions/downtown-college":
			_ = json.NewEncoder(w).Encode(contract.StatusResponse{
				Principal:  "downtown-college",
				Role:       contract.RoleInstitution,
				Registered: false,
			})
		case "/verifiers/ghost":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret", 2*time.Second)
	ctx := context.Background()

	t.Run("registered verifier", func(t *testing.T) {
		ok, err := client.IsRegisteredVerifier(ctx, "unhcr-desk-7")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unregistered institution", func(t *testing.T) {
		ok, err := client.IsRegisteredInstitution(ctx, "downtown-college")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown principal is not an error", func(t *testing.T) {
		ok, err := client.IsRegisteredVerifier(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server failure surfaces as internal", func(t *testing.T) {
		_, err := client.IsRegisteredInstitution(ctx, "broken")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestStaticRegistry(t *testing.T) {
	reg := NewStatic().AddVerifier("v1").AddInstitution("inst1")
	ctx := context.Background()

	ok, err := reg.IsRegisteredVerifier(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.IsRegisteredVerifier(ctx, "inst1")
	require.NoError(t, err)
	assert.False(t, ok, "roles are not interchangeable")

	ok, err = reg.IsRegisteredInstitution(ctx, "inst1")
	require.NoError(t, err)
	assert.True(t, ok)
}
