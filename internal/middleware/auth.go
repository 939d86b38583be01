package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/session"
)

const (
	ContextUserIDKey    = "user_id"
	ContextSessionIDKey = "session_id"

	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*models.Session, error)
}

// Authorized decides whether a request for path may proceed. When it may not,
// redirect is where the client should go instead.
func Authorized(path string, loggedIn bool) (redirect string, ok bool) {
	if isUngated(path) {
		return "", true
	}

	onDashboard := path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/")
	if onDashboard {
		if loggedIn {
			return "", true
		}
		return LoginPath, false
	}
	if loggedIn {
		return DashboardPath, false
	}
	return "", true
}

func isUngated(path string) bool {
	return path == "/metrics" || path == "/api" || strings.HasPrefix(path, "/api/")
}

// Authorize resolves the session cookie and applies Authorized. Sessions that
// are unknown, expired or revoked count as logged out and their cookie is cleared.
func Authorize(authn Authenticator, sessions *session.Manager, base *zap.Logger) gin.HandlerFunc {
	log := base.Named("middleware.auth")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isUngated(path) {
			c.Next()
			return
		}

		loggedIn := false
		if token, ok := sessions.ReadToken(c); ok {
			sess, err := authn.Authenticate(c.Request.Context(), token)
			switch {
			case err == nil:
				loggedIn = true
				c.Set(ContextUserIDKey, sess.UserID.String())
				c.Set(ContextSessionIDKey, sess.ID.String())
			case auth.IsAuthError(err):
				sessions.Clear(c)
			default:
				logger.WithContext(c.Request.Context(), log).Error("authenticate session failed", zap.Error(err))
				AbortWithError(c, err)
				return
			}
		}

		redirect, ok := Authorized(path, loggedIn)
		if ok {
			c.Next()
			return
		}

		if redirect == LoginPath {
			redirect = LoginPath + "?callbackUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
		}
		status := http.StatusFound
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			status = http.StatusSeeOther
		}
		c.Redirect(status, redirect)
		c.Abort()
	}
}
