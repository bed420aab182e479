package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	contract "haven/contracts/registry"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// HTTPClient implements Client against the external registry's HTTP API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// NewHTTPClient creates an HTTP-based registry client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsRegisteredVerifier asks the registry whether p is vetted as a verifier.
func (c *HTTPClient) IsRegisteredVerifier(ctx context.Context, p domain.Principal) (bool, error) {
	return c.lookup(ctx, contract.RoleVerifier, p)
}

// IsRegisteredInstitution asks the registry whether p is vetted as an institution.
func (c *HTTPClient) IsRegisteredInstitution(ctx context.Context, p domain.Principal) (bool, error) {
	return c.lookup(ctx, contract.RoleInstitution, p)
}

func (c *HTTPClient) lookup(ctx context.Context, role contract.Role, p domain.Principal) (bool, error) {
	endpoint := fmt.Sprintf("%s/%ss/%s", c.baseURL, role, url.PathEscape(p.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "building registry request")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "registry lookup failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return false, nil
	default:
		return false, dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("registry returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "reading registry response")
	}

	var status contract.StatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "decoding registry response")
	}
	return status.Registered, nil
}
