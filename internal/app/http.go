package app

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/credentials"
	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/provider"
	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/provider/google"
	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/resolver"
	"github.com/CIMAN01/Web-Authentication-Security/internal/config"
	"github.com/CIMAN01/Web-Authentication-Security/internal/middleware"
	"github.com/CIMAN01/Web-Authentication-Security/internal/session"
	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
	"github.com/CIMAN01/Web-Authentication-Security/internal/web"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	repo := users.NewPostgresRepository(infra.DB)

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	sessions := session.NewManager(sessionStore, cfg.SessionTTL)

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return nil, nil, err
	}

	creds := credentials.NewService(repo, verifier)
	identityResolver := resolver.NewStoreResolver(repo)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	handler := web.NewHandler(creds, sessions, repo, registry, identityResolver)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/public", "./web/public")

	handler.RegisterRoutes(router, middleware.GinRequireAuth(authMiddleware))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}

// buildVerifier maps the configured policy to its implementation. The
// delegated policy is owned by the session package, the rest by the
// credentials package.
func buildVerifier(cfg config.Config) (credentials.Verifier, error) {
	switch cfg.VerifierPolicy {
	case credentials.PolicyDelegated:
		return session.NewKeeper(), nil
	case credentials.PolicyAESGCM:
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid ENCRYPTION_KEY: %w", err)
		}
		return credentials.NewAESGCM(key)
	default:
		return credentials.New(cfg.VerifierPolicy, nil)
	}
}
