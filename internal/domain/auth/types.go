package auth

// Package auth contains domain-level types for credential authentication and
// sessions. It is pure and free of framework/adapter concerns.

// Credentials is a login/password pair submitted through the login form.
// It lives only for the duration of one authorization attempt and must never
// be persisted or logged.
type Credentials struct {
	Login    string
	Password string
}

// IsBlank reports whether either credential field is missing. A blank pair
// means the user made no authentication attempt, which is distinct from
// submitting wrong credentials.
func (c Credentials) IsBlank() bool {
	return c.Login == "" || c.Password == ""
}

// SystemProfiles groups the profile names a user holds within one CoreSSO
// system (sistema).
type SystemProfiles struct {
	Sistema int      `json:"sistema"`
	Perfis  []string `json:"perfis"`
}

// Claims is the normalized identity record built from a successful CoreSSO
// response. It is created once per authorization and embedded verbatim into
// the session token.
//
// ID and RF always carry the same provider login value: the Registro
// Funcional doubles as the primary identifier across SME systems.
type Claims struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	RF               string           `json:"rf"`
	CPF              string           `json:"cpf"`
	SituacaoUsuario  int              `json:"situacaoUsuario"`
	SituacaoGrupo    int              `json:"situacaoGrupo"`
	Visoes           []string         `json:"visoes"`
	PerfisPorSistema []SystemProfiles `json:"perfis_por_sistema"`
}

// Abrangencia is a legacy area-of-access descriptor that earlier session
// payloads attached to the user. It is superseded by Visoes/PerfisPorSistema
// and retained only so older stored payloads still decode.
type Abrangencia struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Nivel     int    `json:"nivel"`
}
