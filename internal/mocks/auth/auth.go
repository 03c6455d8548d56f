package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
	"github.com/prefeitura-sp/coresso-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProviderClient = (*MockIdentityClient)(nil)
	_ ports.TokenCodec             = (*StaticTokenCodec)(nil)
	_ ports.RevocationStore        = (*MemoryRevocationStore)(nil)
	_ ports.LoginAuditor           = (*MemoryAuditor)(nil)
)

// MockIdentityClient simulates the CoreSSO API for tests. It records every
// call so tests can assert the provider was (or was not) contacted.
type MockIdentityClient struct {
	PostFunc func(ctx context.Context, path string, body any) (domainauth.ProviderResponse, error)

	// Deterministic values returned when PostFunc is nil.
	Response domainauth.ProviderResponse
	Err      error

	mu    sync.Mutex
	calls []string
}

// NewMockIdentityClient creates a MockIdentityClient returning a successful
// provider response for the given login.
func NewMockIdentityClient(login string) *MockIdentityClient {
	return &MockIdentityClient{
		Response: domainauth.ProviderResponse{
			Nome:  "Usuário de Teste",
			Login: login,
			Email: "teste@sme.prefeitura.sp.gov.br",
		},
	}
}

func (m *MockIdentityClient) Post(ctx context.Context, path string, body any) (domainauth.ProviderResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()

	if m.PostFunc != nil {
		return m.PostFunc(ctx, path, body)
	}
	if m.Err != nil {
		return domainauth.ProviderResponse{}, m.Err
	}
	return m.Response, nil
}

// CallCount reports how many times Post was invoked.
func (m *MockIdentityClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// StaticTokenCodec issues predictable tokens of the form "token-<jti>" and
// verifies them by looking up the payload it issued.
type StaticTokenCodec struct {
	IssueFunc  func(payload domainauth.TokenPayload) (string, error)
	VerifyFunc func(token string) (domainauth.TokenPayload, error)

	mu     sync.Mutex
	issued map[string]domainauth.TokenPayload
}

// NewStaticTokenCodec creates an empty StaticTokenCodec.
func NewStaticTokenCodec() *StaticTokenCodec {
	return &StaticTokenCodec{issued: make(map[string]domainauth.TokenPayload)}
}

func (c *StaticTokenCodec) Issue(payload domainauth.TokenPayload) (string, error) {
	if c.IssueFunc != nil {
		return c.IssueFunc(payload)
	}
	token := fmt.Sprintf("token-%s", payload.ID)
	c.mu.Lock()
	c.issued[token] = payload
	c.mu.Unlock()
	return token, nil
}

func (c *StaticTokenCodec) Verify(token string) (domainauth.TokenPayload, error) {
	if c.VerifyFunc != nil {
		return c.VerifyFunc(token)
	}
	c.mu.Lock()
	payload, ok := c.issued[token]
	c.mu.Unlock()
	if !ok {
		return domainauth.TokenPayload{}, errors.New("unknown token")
	}
	return payload, nil
}

// MemoryRevocationStore is an in-memory ports.RevocationStore.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemoryRevocationStore creates an empty MemoryRevocationStore.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, jti string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = until
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	return time.Now().Before(until), nil
}

// MemoryAuditor collects audit entries in memory for assertions.
type MemoryAuditor struct {
	mu      sync.Mutex
	entries []ports.LoginAudit
}

// NewMemoryAuditor creates an empty MemoryAuditor.
func NewMemoryAuditor() *MemoryAuditor {
	return &MemoryAuditor{}
}

func (a *MemoryAuditor) Record(_ context.Context, entry ports.LoginAudit) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

// Entries returns a copy of everything recorded so far.
func (a *MemoryAuditor) Entries() []ports.LoginAudit {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ports.LoginAudit, len(a.entries))
	copy(out, a.entries)
	return out
}
