package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prefeitura-sp/coresso-portal/internal/adapters/coresso"
	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
	"github.com/prefeitura-sp/coresso-portal/internal/observability/notify"
	"github.com/prefeitura-sp/coresso-portal/internal/ports"
)

// Audit outcome labels recorded per authorization attempt.
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidPassword   = "invalid_password"
	OutcomeUserNotFound      = "user_not_found"
	OutcomeMalformedResponse = "malformed_response"
	OutcomeTransportError    = "transport_error"
)

const defaultSessionTTL = 8 * time.Hour

// loginRequest is the wire body for the provider authenticate call.
type loginRequest struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

// AuthServiceOptions groups dependencies for AuthService. Client and Codec
// are required; Revocations, Audit, and Outages are optional and disabled
// when nil.
type AuthServiceOptions struct {
	Client      ports.IdentityProviderClient
	Codec       ports.TokenCodec
	Revocations ports.RevocationStore
	Audit       ports.LoginAuditor
	Outages     notify.Sink
	SessionTTL  time.Duration
	Logger      *slog.Logger
}

// AuthService is the single classification boundary for credential
// authorization. Everything above it consumes either Claims/Session values or
// one of the classified domain errors; nothing above it inspects provider
// status codes.
type AuthService struct {
	client      ports.IdentityProviderClient
	codec       ports.TokenCodec
	revocations ports.RevocationStore
	audit       ports.LoginAuditor
	outages     notify.Sink
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		client:      opts.Client,
		codec:       opts.Codec,
		revocations: opts.Revocations,
		audit:       opts.Audit,
		outages:     opts.Outages,
		sessionTTL:  ttl,
		logger:      logger,
	}
}

// Authorize exchanges a credential pair with the identity provider and
// classifies the outcome.
//
// Classification order is significant and preserved exactly: transport
// failure first (re-raised, never an authentication failure), then 401 as
// invalid password, then missing nome with a detail as unknown user, then a
// missing nome/login pair as a malformed provider response. A response that
// is simultaneously 401 and missing nome resolves to invalid password.
func (s *AuthService) Authorize(ctx context.Context, creds domainauth.Credentials) (domainauth.Claims, error) {
	if creds.IsBlank() {
		// Declined, not failed: the provider is never contacted.
		return domainauth.Claims{}, domainauth.ErrNoAttempt
	}

	resp, err := s.client.Post(ctx, coresso.AuthenticatePath, loginRequest{
		Login: creds.Login,
		Senha: creds.Password,
	})
	if err != nil {
		s.recordAudit(ctx, creds.Login, OutcomeTransportError, resp.OperationID)
		s.notifyOutage(ctx, err)
		return domainauth.Claims{}, fmt.Errorf("authenticate with provider: %w", err)
	}

	if resp.Status == 401 {
		s.recordAudit(ctx, creds.Login, OutcomeInvalidPassword, resp.OperationID)
		return domainauth.Claims{}, domainauth.ErrInvalidPassword
	}

	if resp.Nome == "" && resp.Detail != "" {
		s.recordAudit(ctx, creds.Login, OutcomeUserNotFound, resp.OperationID)
		return domainauth.Claims{}, domainauth.ErrUserNotFound
	}

	if resp.Nome == "" || resp.Login == "" {
		s.logger.WarnContext(ctx, "provider response missing required fields",
			"status", resp.Status,
			"operation_id", resp.OperationID)
		s.recordAudit(ctx, creds.Login, OutcomeMalformedResponse, resp.OperationID)
		return domainauth.Claims{}, domainauth.ErrMalformedResponse
	}

	s.recordAudit(ctx, creds.Login, OutcomeSuccess, resp.OperationID)
	return buildClaims(resp), nil
}

// buildClaims normalizes a successful provider response. The provider login
// doubles as both the primary id and the RF business identifier; that
// duplication is intentional.
func buildClaims(resp domainauth.ProviderResponse) domainauth.Claims {
	visoes := resp.Visoes
	if visoes == nil {
		visoes = []string{}
	}
	perfis := resp.PerfisPorSistema
	if perfis == nil {
		perfis = []domainauth.SystemProfiles{}
	}
	return domainauth.Claims{
		ID:               resp.Login,
		Name:             resp.Nome,
		Email:            resp.Email,
		RF:               resp.Login,
		CPF:              resp.CPF,
		SituacaoUsuario:  resp.SituacaoUsuario,
		SituacaoGrupo:    resp.SituacaoGrupo,
		Visoes:           visoes,
		PerfisPorSistema: perfis,
	}
}

// LoginResult carries the issued token and its claims back to the handler.
type LoginResult struct {
	Token     string
	Claims    domainauth.Claims
	Session   domainauth.Session
	ExpiresAt time.Time
}

// Login authorizes the credentials and, on success, issues a signed session
// token embedding the claims.
func (s *AuthService) Login(ctx context.Context, creds domainauth.Credentials) (*LoginResult, error) {
	claims, err := s.Authorize(ctx, creds)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payload := domainauth.NewTokenPayload(claims, domainauth.TokenMeta{
		Now: now,
		TTL: s.sessionTTL,
		JTI: uuid.NewString(),
	})

	signed, err := s.codec.Issue(payload)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResult{
		Token:     signed,
		Claims:    claims,
		Session:   payload.Session(),
		ExpiresAt: now.Add(s.sessionTTL),
	}, nil
}

// Resolve verifies a session token and reconstitutes the session view. Any
// verification or revocation failure means "unauthenticated"; callers that
// need the distinction can inspect the error, the route guard does not.
func (s *AuthService) Resolve(ctx context.Context, rawToken string) (*domainauth.Session, error) {
	if rawToken == "" {
		return nil, errors.New("session token is required")
	}

	payload, err := s.codec.Verify(rawToken)
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}

	if s.revocations != nil && payload.ID != "" {
		revoked, revErr := s.revocations.IsRevoked(ctx, payload.ID)
		if revErr != nil {
			return nil, fmt.Errorf("check token revocation: %w", revErr)
		}
		if revoked {
			return nil, errors.New("session token revoked")
		}
	}

	sess := payload.Session()
	return &sess, nil
}

// Logout invalidates the token's ID until its natural expiry. A missing or
// already-invalid token is not an error; there is nothing left to revoke.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" || s.revocations == nil {
		return nil
	}

	payload, err := s.codec.Verify(rawToken)
	if err != nil {
		return nil
	}
	if payload.ID == "" || payload.ExpiresAt == nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, payload.ID, payload.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}
	return nil
}

// recordAudit persists the attempt outcome when auditing is enabled. Audit
// failures never affect the login flow; they are logged for operators.
func (s *AuthService) recordAudit(ctx context.Context, login, outcome, operationID string) {
	if s.audit == nil {
		return
	}
	entry := ports.LoginAudit{
		Login:       login,
		Outcome:     outcome,
		OperationID: operationID,
		At:          time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "record login audit failed", "outcome", outcome, "error", err)
	}
}

// notifyOutage reports provider connectivity failures to the configured sink.
func (s *AuthService) notifyOutage(ctx context.Context, cause error) {
	if s.outages == nil {
		return
	}
	var terr *coresso.TransportError
	if !errors.As(cause, &terr) {
		return
	}
	payload := notify.AuthOutagePayload{
		Operation:  terr.Op,
		Error:      terr.Err.Error(),
		Severity:   notify.SeverityCritical,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.outages.SendAuthOutage(ctx, payload); err != nil {
		s.logger.WarnContext(ctx, "send auth outage notification failed", "error", err)
	}
}
