package auth

// ProviderResponse is the raw reply from the CoreSSO authenticate endpoint.
//
// The provider does not structurally separate success from failure: a success
// carries nome/login plus identity attributes, a failure carries
// status/detail/operation_id, and nothing stops both groups from appearing on
// the same payload. Classification lives in one place, the credential
// authorizer; nothing else may probe these fields.
type ProviderResponse struct {
	// Failure fields.
	Status      int    `json:"status,omitempty"`
	Detail      string `json:"detail,omitempty"`
	OperationID string `json:"operation_id,omitempty"`

	// Success fields.
	Nome             string           `json:"nome,omitempty"`
	Login            string           `json:"login,omitempty"`
	Email            string           `json:"email,omitempty"`
	CPF              string           `json:"cpf,omitempty"`
	SituacaoUsuario  int              `json:"situacaoUsuario,omitempty"`
	SituacaoGrupo    int              `json:"situacaoGrupo,omitempty"`
	Visoes           []string         `json:"visoes,omitempty"`
	PerfisPorSistema []SystemProfiles `json:"perfis_por_sistema,omitempty"`
}
