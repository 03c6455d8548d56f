package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
)

// IdentityProviderClient performs calls against the CoreSSO identity API.
//
// Post returns the provider payload for both success and expected
// authentication-failure responses; only transport-level problems (no
// response received) or configuration problems surface as an error. The
// caller classifies the returned payload.
type IdentityProviderClient interface {
	Post(ctx context.Context, path string, body any) (domainauth.ProviderResponse, error)
}

// TokenCodec issues and verifies signed session tokens. Verify returns the
// decoded payload only for tokens with a valid signature that have not
// expired.
type TokenCodec interface {
	Issue(payload domainauth.TokenPayload) (string, error)
	Verify(token string) (domainauth.TokenPayload, error)
}

// RevocationStore records token IDs invalidated by logout until their natural
// expiry, so a signed token stops resolving before its exp claim runs out.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LoginAudit is one recorded authorization outcome. It never contains the
// submitted password.
type LoginAudit struct {
	Login       string
	Outcome     string
	OperationID string
	At          time.Time
}

// LoginAuditor persists authorization outcomes for operators.
type LoginAuditor interface {
	Record(ctx context.Context, entry LoginAudit) error
}
