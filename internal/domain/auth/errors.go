package auth

// FailureKind categorizes the outcome of a failed authorization attempt.
type FailureKind string

const (
	// KindNoAttempt means no credentials were submitted. It is a declined
	// operation rather than a failure; callers show no message.
	KindNoAttempt FailureKind = "no_attempt"
	// KindInvalidPassword means the provider rejected the password (401).
	KindInvalidPassword FailureKind = "invalid_password"
	// KindUserNotFound means the provider does not know the login.
	KindUserNotFound FailureKind = "user_not_found"
	// KindMalformedResponse means the provider replied without the fields a
	// success requires. Surfaced to users as a generic internal error.
	KindMalformedResponse FailureKind = "malformed_response"
)

// LoginError is a classified authorization failure carrying the exact
// user-facing message the login form displays. The messages are part of the
// observable contract with the frontend and must not be reworded.
type LoginError struct {
	Kind    FailureKind
	Message string
}

func (e *LoginError) Error() string { return e.Message }

// Is makes errors.Is match any LoginError of the same kind, so wrapped
// classified errors still compare against the sentinels below.
func (e *LoginError) Is(target error) bool {
	t, ok := target.(*LoginError)
	return ok && t.Kind == e.Kind
}

// Classified authorization failures. The authorizer is the only producer;
// everything above it consumes either Claims or one of these values.
var (
	ErrNoAttempt         = &LoginError{Kind: KindNoAttempt, Message: "credenciais não informadas"}
	ErrInvalidPassword   = &LoginError{Kind: KindInvalidPassword, Message: "Senha inválida!"}
	ErrUserNotFound      = &LoginError{Kind: KindUserNotFound, Message: "Usuário não encontrado!"}
	ErrMalformedResponse = &LoginError{Kind: KindMalformedResponse, Message: "Erro interno no servidor!"}
)
