package coresso

// Package coresso provides the HTTP client adapter for the CoreSSO identity
// provider (autentica.coresso, SME/SP).

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
)

// AuthenticatePath is the provider's credential verification endpoint.
const AuthenticatePath = "/autenticacao/"

const defaultTimeout = 30 * time.Second

// maxErrorBodySize bounds how much of an error response body is read when
// normalizing provider failures.
const maxErrorBodySize = 64 << 10

// TransportError means no usable response was received from the provider:
// connection refused, DNS failure, timeout, or an unreadable body. It is a
// system failure, never an authentication failure, and callers must not map
// it to an invalid-credentials message.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("coresso: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config holds construction parameters for the Client.
type Config struct {
	// BaseURL is the provider root, e.g. "https://autentica.example.sp.gov.br".
	BaseURL string
	// APIToken is sent as "Authorization: Token <APIToken>".
	APIToken string
	// HTTPClient is optional; defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Client calls the CoreSSO API. Construct it explicitly and inject it into
// the auth service; it holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient validates configuration and builds a Client. Missing base URL or
// token is a fatal configuration error: it fails here, at construction, not
// silently at call time.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("coresso: CORESSO_API_URL is not configured")
	}
	if cfg.APIToken == "" {
		return nil, errors.New("coresso: CORESSO_API_TOKEN is not configured")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiToken:   cfg.APIToken,
		httpClient: httpClient,
	}, nil
}

// Post sends a JSON body to the given provider path.
//
// A 2xx response decodes into the success shape. A non-2xx response is an
// expected authentication failure, not an error: the payload is normalized to
// {status, detail, operation_id} with the HTTP status filled in so the caller
// can classify it. Only transport-level failures return a *TransportError.
func (c *Client) Post(ctx context.Context, path string, body any) (domainauth.ProviderResponse, error) {
	var out domainauth.ProviderResponse

	encoded, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("coresso: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return out, fmt.Errorf("coresso: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
			return out, &TransportError{Op: "decode response", Err: decodeErr}
		}
		return out, nil
	}

	return c.normalizeFailure(resp)
}

// normalizeFailure extracts {status, detail, operation_id} from a non-2xx
// response so classification can happen upstream. An undecodable body still
// yields a usable payload carrying the HTTP status.
func (c *Client) normalizeFailure(resp *http.Response) (domainauth.ProviderResponse, error) {
	out := domainauth.ProviderResponse{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return out, &TransportError{Op: "read error response", Err: err}
	}

	var payload struct {
		Detail      string `json:"detail"`
		OperationID string `json:"operation_id"`
	}
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the status code alone is enough
		// for classification.
		_ = json.Unmarshal(raw, &payload)
	}

	out.Detail = payload.Detail
	out.OperationID = payload.OperationID
	return out, nil
}
