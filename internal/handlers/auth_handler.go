package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/session"
)

type AuthHandler struct {
	auth     *auth.Service
	sessions *session.Manager
	log      *zap.Logger
}

func NewAuthHandler(svc *auth.Service, sessions *session.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, sessions: sessions, log: log.Named("handler.auth")}
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"callbackUrl": safeRedirect(c.Query("callbackUrl"))})
}

// Login POST /login with form fields email, password and optional redirectTo.
func (h *AuthHandler) Login(c *gin.Context) {
	result, err := h.auth.Login(c.Request.Context(), auth.LoginRequest{
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		msg, err := auth.LoginMessage(err)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": msg})
		return
	}

	h.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirectTo")))
}

// Logout POST /dashboard/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := h.sessions.ReadToken(c); ok {
		err := h.auth.Logout(c.Request.Context(), token)
		if err != nil && !auth.IsAuthError(err) {
			logger.WithContext(c.Request.Context(), h.log).Error("logout failed", zap.Error(err))
			middleware.AbortWithError(c, err)
			return
		}
	}
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return middleware.DashboardPath
	}
	return target
}
