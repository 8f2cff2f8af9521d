package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jobdeck/jobdeck-api/config"
	"github.com/jobdeck/jobdeck-api/internal/adapters/devauth"
	"github.com/jobdeck/jobdeck-api/internal/adapters/oidc"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	"github.com/jobdeck/jobdeck-api/internal/ports"
)

// VerifierConfig groups dependencies for identity verifier construction.
type VerifierConfig struct {
	Auth   config.AuthConfig
	IsDev  bool
	Logger *slog.Logger
}

// BuildVerifier constructs the identity verifier selected by AUTH_MODE.
// Dev tokens are refused outside development mode.
//
//nolint:ireturn // the verifier port is what callers wire into the router.
func BuildVerifier(ctx context.Context, cfg VerifierConfig) (ports.IdentityVerifier, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Auth.Mode {
	case config.AuthModeDev:
		if !cfg.IsDev {
			return nil, errors.New("dev auth mode requires development mode (set DEV=true)")
		}
		logger.WarnContext(ctx, "using dev auth verifier; tokens are plaintext and unverified")
		return devauth.NewVerifier(devauth.Config{
			DefaultRole:  model.UserRole(cfg.Auth.DevAuth.DefaultRole),
			DefaultEmail: cfg.Auth.DevAuth.DefaultEmail,
		}), nil

	case config.AuthModeOIDC:
		verifier, err := oidc.NewVerifier(ctx, oidc.VerifierConfig{
			ClientID:  cfg.Auth.OIDC.ClientID,
			IssuerURL: cfg.Auth.OIDC.IssuerURL,
			RoleClaim: cfg.Auth.OIDC.RoleClaim,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc verifier: %w", err)
		}
		logger.InfoContext(ctx, "oidc verifier ready", "issuer", cfg.Auth.OIDC.IssuerURL)
		return verifier, nil

	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Auth.Mode)
	}
}
