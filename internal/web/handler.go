package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/credentials"
	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/provider"
	"github.com/CIMAN01/Web-Authentication-Security/internal/auth/resolver"
	"github.com/CIMAN01/Web-Authentication-Security/internal/logger"
	"github.com/CIMAN01/Web-Authentication-Security/internal/middleware"
	"github.com/CIMAN01/Web-Authentication-Security/internal/session"
	"github.com/CIMAN01/Web-Authentication-Security/internal/users"
)

// Handler is the route controller. It extracts form fields, delegates to
// the credential service, resolver and session manager, and renders or
// redirects; no auth decisions live here.
type Handler struct {
	creds     *credentials.Service
	sessions  *session.Manager
	users     users.Repository
	providers *provider.Registry
	resolver  resolver.Resolver
}

func NewHandler(
	creds *credentials.Service,
	sessions *session.Manager,
	repo users.Repository,
	providers *provider.Registry,
	res resolver.Resolver,
) *Handler {
	return &Handler{
		creds:     creds,
		sessions:  sessions,
		users:     repo,
		providers: providers,
		resolver:  res,
	}
}

// RegisterRoutes mounts the public pages and the session-gated ones.
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/", h.home)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/logout", h.logout)

	r.GET("/auth/google", h.oauthLogin)
	r.GET("/auth/google/secrets", h.oauthCallback)

	protected := r.Group("/")
	protected.Use(requireAuth)
	protected.GET("/secrets", h.secrets)
	protected.GET("/submit", h.submitForm)
	protected.POST("/submit", h.submit)
}

func (h *Handler) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")

	u, err := h.creds.Authenticate(c.Request.Context(), email, password)

	switch {
	case errors.Is(err, credentials.ErrMissingFields):
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Email and password are required.",
		})
		return
	case errors.Is(err, credentials.ErrInvalidCredentials):
		// an explicit rejection, never a silent no-op
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid email or password.",
		})
		return
	case err != nil:
		logger.Error("login failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	if _, err := h.sessions.Establish(c.Request.Context(), c.Writer, u.ID, u.Email); err != nil {
		logger.Error("session establish failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	logger.Info("login ok", map[string]any{"user_id": u.ID})
	c.Redirect(http.StatusFound, "/secrets")
}

func (h *Handler) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")

	u, err := h.creds.Register(c.Request.Context(), email, password)

	switch {
	case errors.Is(err, credentials.ErrMissingFields):
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Email and password are required.",
		})
		return
	case errors.Is(err, credentials.ErrAlreadyRegistered):
		c.HTML(http.StatusConflict, "register.html", gin.H{
			"Error": "An account with that email already exists.",
		})
		return
	case err != nil:
		logger.Error("registration failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	if _, err := h.sessions.Establish(c.Request.Context(), c.Writer, u.ID, u.Email); err != nil {
		logger.Error("session establish failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	logger.Info("registration ok", map[string]any{"user_id": u.ID})
	c.Redirect(http.StatusFound, "/secrets")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request.Context(), c.Writer, c.Request); err != nil {
		logger.Error("logout failed", map[string]any{"error": err.Error()})
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) secrets(c *gin.Context) {
	secrets, err := h.users.ListSecrets(c.Request.Context())
	if err != nil {
		logger.Error("secret listing failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.HTML(http.StatusOK, "secrets.html", gin.H{
		"Secrets": secrets,
	})
}

func (h *Handler) submitForm(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", nil)
}

func (h *Handler) submit(c *gin.Context) {
	secret := c.PostForm("secret")
	if secret == "" {
		c.HTML(http.StatusBadRequest, "submit.html", gin.H{
			"Error": "Please enter a secret.",
		})
		return
	}

	sess, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.users.UpdateSecret(c.Request.Context(), sess.UserID, secret); err != nil {
		logger.Error("secret update failed", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/secrets")
}
