package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload is the signed session token's claim set: the identity Claims
// copied verbatim plus standard JWT expiry metadata. Field names mirror the
// Claims JSON shape so the payload round-trips without renames.
type TokenPayload struct {
	jwt.RegisteredClaims

	UserID           string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	RF               string           `json:"rf"`
	CPF              string           `json:"cpf"`
	SituacaoUsuario  int              `json:"situacaoUsuario"`
	SituacaoGrupo    int              `json:"situacaoGrupo"`
	Visoes           []string         `json:"visoes"`
	PerfisPorSistema []SystemProfiles `json:"perfis_por_sistema"`
}

// TokenMeta groups the issuance metadata for NewTokenPayload.
type TokenMeta struct {
	Now time.Time
	TTL time.Duration
	JTI string
}

// NewTokenPayload maps Claims into a token payload. Pure: every claims field
// is copied, none is dropped or renamed.
func NewTokenPayload(c Claims, meta TokenMeta) TokenPayload {
	return TokenPayload{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.ID,
			ID:        meta.JTI,
			IssuedAt:  jwt.NewNumericDate(meta.Now),
			ExpiresAt: jwt.NewNumericDate(meta.Now.Add(meta.TTL)),
		},
		UserID:           c.ID,
		Name:             c.Name,
		Email:            c.Email,
		RF:               c.RF,
		CPF:              c.CPF,
		SituacaoUsuario:  c.SituacaoUsuario,
		SituacaoGrupo:    c.SituacaoGrupo,
		Visoes:           c.Visoes,
		PerfisPorSistema: c.PerfisPorSistema,
	}
}

// SessionUser is the identity view attached to an authenticated request,
// reconstituted from a verified token. Image is not carried by the token; it
// may be set elsewhere and survives re-application of a payload.
type SessionUser struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Image            string           `json:"image,omitempty"`
	RF               string           `json:"rf"`
	CPF              string           `json:"cpf"`
	SituacaoUsuario  int              `json:"situacaoUsuario"`
	SituacaoGrupo    int              `json:"situacaoGrupo"`
	Visoes           []string         `json:"visoes"`
	PerfisPorSistema []SystemProfiles `json:"perfis_por_sistema"`
}

// Session is what request handlers see for an authenticated user. Absence of
// a Session means "unauthenticated"; presence implies the token was verified
// upstream and is neither expired nor revoked.
type Session struct {
	User      SessionUser `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ApplyTo copies every payload field onto the given user, merging with (not
// replacing) fields the payload does not carry. Pure and total: it never
// fails on well-formed input.
func (p TokenPayload) ApplyTo(u SessionUser) SessionUser {
	u.ID = p.UserID
	u.Name = p.Name
	u.Email = p.Email
	u.RF = p.RF
	u.CPF = p.CPF
	u.SituacaoUsuario = p.SituacaoUsuario
	u.SituacaoGrupo = p.SituacaoGrupo
	u.Visoes = p.Visoes
	u.PerfisPorSistema = p.PerfisPorSistema
	return u
}

// Session builds the request-facing session view from a verified payload.
func (p TokenPayload) Session() Session {
	var expires time.Time
	if p.ExpiresAt != nil {
		expires = p.ExpiresAt.Time
	}
	return Session{
		User:      p.ApplyTo(SessionUser{}),
		ExpiresAt: expires,
	}
}
