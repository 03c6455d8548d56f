package devsso

// Package devsso provides a config-driven identity provider stand-in for
// local development. It answers the same payload shapes as the real CoreSSO
// API so the classification path is exercised end to end without network
// access.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	domainauth "github.com/prefeitura-sp/coresso-portal/internal/domain/auth"
	"github.com/prefeitura-sp/coresso-portal/internal/ports"
)

// Config controls the dev provider behavior. Login and Senha are required.
type Config struct {
	Login string
	Senha string
	Nome  string
}

// Client implements ports.IdentityProviderClient for local development.
// It accepts exactly one credential pair and mimics the provider's failure
// payloads for everything else.
type Client struct {
	login string
	senha string
	nome  string
}

var _ ports.IdentityProviderClient = (*Client)(nil)

// NewClient constructs a dev identity client from Config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Login == "" {
		return nil, errors.New("dev auth: Login is required")
	}
	if cfg.Senha == "" {
		return nil, errors.New("dev auth: Senha is required")
	}
	nome := cfg.Nome
	if nome == "" {
		nome = "Usuária de Desenvolvimento"
	}
	return &Client{login: cfg.Login, senha: cfg.Senha, nome: nome}, nil
}

// Post answers like the authenticate endpoint: success for the configured
// pair, 401 for a wrong password, and a not-found payload for unknown logins.
func (c *Client) Post(_ context.Context, _ string, body any) (domainauth.ProviderResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return domainauth.ProviderResponse{}, fmt.Errorf("encode request body: %w", err)
	}
	var req struct {
		Login string `json:"login"`
		Senha string `json:"senha"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return domainauth.ProviderResponse{}, fmt.Errorf("decode request body: %w", err)
	}

	switch {
	case req.Login != c.login:
		return domainauth.ProviderResponse{
			Status: http.StatusNotFound,
			Detail: "Usuário não encontrado",
		}, nil
	case req.Senha != c.senha:
		return domainauth.ProviderResponse{Status: http.StatusUnauthorized}, nil
	default:
		return domainauth.ProviderResponse{
			Nome:  c.nome,
			Login: c.login,
			Email: c.login + "@sme.prefeitura.sp.gov.br",
		}, nil
	}
}
