package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/resolver"
	"github.com/CIMAN01/Web-Authentication-Security/internal/logger"
)

const googleProvider = "google"

func (h *Handler) oauthLogin(c *gin.Context) {
	p, err := h.providers.Get(googleProvider)
	if err != nil {
		c.String(http.StatusNotFound, "unknown sign-in provider")
		return
	}

	state := issueState(c)
	_, codeChallenge := issuePKCE(c)

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

func (h *Handler) oauthCallback(c *gin.Context) {
	p, err := h.providers.Get(googleProvider)
	if err != nil {
		c.String(http.StatusNotFound, "unknown sign-in provider")
		return
	}

	if !validateState(c) {
		logger.Warn("oauth callback with bad state", nil)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	// provider-side failure (denied consent, expired flow): back to login
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": googleProvider,
			"error":    errParam,
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	codeVerifier := pkceVerifier(c)
	if codeVerifier == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		logger.Warn("oauth code exchange failed", map[string]any{"error": err.Error()})
		c.Redirect(http.StatusFound, "/login")
		return
	}

	u, err := h.resolver.Resolve(c.Request.Context(), identity)
	if errors.Is(err, resolver.ErrUnverifiedEmail) {
		logger.Warn("federated sign-in rejected", map[string]any{
			"provider": identity.Provider,
			"error":    err.Error(),
		})
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		logger.Error("identity resolve failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	if _, err := h.sessions.Establish(c.Request.Context(), c.Writer, u.ID, u.Email); err != nil {
		logger.Error("session establish failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	logger.Info("federated login ok", map[string]any{
		"user_id":  u.ID,
		"provider": identity.Provider,
	})
	c.Redirect(http.StatusFound, "/secrets")
}
