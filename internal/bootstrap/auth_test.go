package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-sp/coresso-portal/config"
	"github.com/prefeitura-sp/coresso-portal/internal/adapters/coresso"
	"github.com/prefeitura-sp/coresso-portal/internal/adapters/devsso"
)

func testAuthConfig() AuthConfig {
	return AuthConfig{
		Auth: config.AuthConfig{
			CoreSSO: config.CoreSSOConfig{
				BaseURL:  "https://autentica.sme.prefeitura.sp.gov.br",
				APIToken: "s3cret",
			},
			Session: config.SessionConfig{
				Secret: "signing-key",
				TTL:    time.Hour,
			},
			DevAuth: config.DevAuthConfig{Login: "1234567", Senha: "dev"},
		},
	}
}

func TestBuildAuthService(t *testing.T) {
	svc, err := BuildAuthService(testAuthConfig())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildAuthService_RequiresSessionSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Auth.Session.Secret = ""

	_, err := BuildAuthService(cfg)
	assert.ErrorContains(t, err, "build token codec")
}

func TestBuildAuthService_RequiresProviderConfig(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Auth.CoreSSO.BaseURL = ""

	_, err := BuildAuthService(cfg)
	assert.ErrorContains(t, err, "build identity provider client")
}

func TestBuildIdentityClient_Selection(t *testing.T) {
	t.Run("production uses coresso", func(t *testing.T) {
		client, err := buildIdentityClient(testAuthConfig())
		require.NoError(t, err)
		assert.IsType(t, &coresso.Client{}, client)
	})

	t.Run("dev without provider URL uses stand-in", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.IsDev = true
		cfg.Auth.CoreSSO.BaseURL = ""

		client, err := buildIdentityClient(cfg)
		require.NoError(t, err)
		assert.IsType(t, &devsso.Client{}, client)
	})

	t.Run("dev with provider URL still uses coresso", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.IsDev = true

		client, err := buildIdentityClient(cfg)
		require.NoError(t, err)
		assert.IsType(t, &coresso.Client{}, client)
	})
}

func TestGuardConfig_Merge(t *testing.T) {
	merged := guardConfig(config.GuardConfig{
		ProtectedPrefixes: []string{"/dashboard", "/relatorios"},
		LoginPath:         "/entrar",
	})

	assert.Equal(t, []string{"/dashboard", "/relatorios"}, merged.ProtectedPrefixes)
	assert.Equal(t, "/entrar", merged.LoginPath)
	assert.Equal(t, "/entrar", merged.RootPath)
	// Unset values keep the shipped defaults.
	assert.Equal(t, "/dashboard", merged.DashboardPath)
	assert.NotEmpty(t, merged.ExcludedPrefixes)
}
