package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/prefeitura-sp/coresso-portal/config"
	"github.com/prefeitura-sp/coresso-portal/internal/adapters/coresso"
	"github.com/prefeitura-sp/coresso-portal/internal/adapters/devsso"
	redisadapter "github.com/prefeitura-sp/coresso-portal/internal/adapters/redis"
	"github.com/prefeitura-sp/coresso-portal/internal/adapters/token"
	"github.com/prefeitura-sp/coresso-portal/internal/data"
	"github.com/prefeitura-sp/coresso-portal/internal/observability/notify"
	"github.com/prefeitura-sp/coresso-portal/internal/observability/notify/webhook"
	"github.com/prefeitura-sp/coresso-portal/internal/ports"
	"github.com/prefeitura-sp/coresso-portal/internal/service"
)

// AuthConfig contains dependencies for building the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Notify      config.NotifyConfig
	IsDev       bool
	RedisClient redis.UniversalClient
	DB          *sql.DB
	Logger      *slog.Logger
}

// BuildAuthService wires the identity provider client, token codec, and the
// optional revocation, audit, and outage dependencies. The provider client
// and session secret are required; everything else degrades to disabled.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	client, err := buildIdentityClient(cfg)
	if err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(cfg.Auth.Session.Secret)
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	opts := service.AuthServiceOptions{
		Client:     client,
		Codec:      codec,
		SessionTTL: cfg.Auth.Session.TTL,
		Logger:     cfg.Logger,
	}

	if cfg.RedisClient != nil {
		opts.Revocations = redisadapter.NewRevocationStore(cfg.RedisClient)
	} else if cfg.Logger != nil {
		cfg.Logger.Warn("logout revocation disabled: redis not configured")
	}

	if cfg.DB != nil {
		opts.Audit = data.NewLoginAuditRepo(cfg.DB)
	} else if cfg.Logger != nil {
		cfg.Logger.Warn("login audit disabled: database not configured")
	}

	if sink := buildOutageSink(cfg); sink != nil {
		opts.Outages = sink
	}

	return service.NewAuthService(opts), nil
}

// buildIdentityClient picks the real CoreSSO client or, in dev mode with no
// provider URL configured, the local stand-in.
//
//nolint:ireturn // callers only need the port; the concrete type depends on config.
func buildIdentityClient(cfg AuthConfig) (ports.IdentityProviderClient, error) {
	if cfg.IsDev && cfg.Auth.CoreSSO.BaseURL == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("using dev identity provider: CORESSO_API_URL not set", "login", cfg.Auth.DevAuth.Login)
		}
		client, err := devsso.NewClient(devsso.Config{
			Login: cfg.Auth.DevAuth.Login,
			Senha: cfg.Auth.DevAuth.Senha,
			Nome:  cfg.Auth.DevAuth.Nome,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev identity client: %w", err)
		}
		return client, nil
	}

	client, err := coresso.NewClient(coresso.Config{
		BaseURL:  cfg.Auth.CoreSSO.BaseURL,
		APIToken: cfg.Auth.CoreSSO.APIToken,
	})
	if err != nil {
		return nil, fmt.Errorf("build identity provider client: %w", err)
	}
	return client, nil
}

// buildOutageSink builds the webhook sink for provider outage notifications.
// Returns nil when no webhook is configured or the config is invalid.
func buildOutageSink(cfg AuthConfig) notify.Sink {
	if cfg.Notify.WebhookURL == "" {
		return nil
	}
	sink, err := webhook.NewClient(webhook.Config{URL: cfg.Notify.WebhookURL})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("outage notifications disabled", "error", err)
		}
		return nil
	}
	return sink
}
