package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/session"
)

func TestAuthorized(t *testing.T) {
	cases := []struct {
		path     string
		loggedIn bool
		redirect string
		ok       bool
	}{
		{"/dashboard", true, "", true},
		{"/dashboard/invoices", true, "", true},
		{"/dashboard", false, LoginPath, false},
		{"/dashboard/invoices/create", false, LoginPath, false},
		{"/dashboardx", false, "", true},
		{"/login", false, "", true},
		{"/login", true, DashboardPath, false},
		{"/", true, DashboardPath, false},
		{"/api/health", false, "", true},
		{"/api/health", true, "", true},
		{"/metrics", true, "", true},
	}
	for _, tc := range cases {
		redirect, ok := Authorized(tc.path, tc.loggedIn)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.redirect, redirect, tc.path)
	}
}

type fakeAuthenticator struct {
	sessions map[string]*models.Session
	err      error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, &auth.AuthError{Kind: auth.KindInvalidSession}
}

func newRouter(authn Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandling())
	r.Use(Authorize(authn, session.NewManager(false), zap.NewNop()))
	r.GET("/dashboard/invoices", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserIDKey))
	})
	r.POST("/dashboard/invoices", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAuthorizeRedirectsAnonymousToLogin(t *testing.T) {
	r := newRouter(&fakeAuthenticator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/invoices?page=2", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Finvoices%3Fpage%3D2", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/dashboard/invoices", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeWithSession(t *testing.T) {
	userID := uuid.New()
	r := newRouter(&fakeAuthenticator{sessions: map[string]*models.Session{
		"good": {ID: uuid.New(), UserID: userID},
	}})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "good"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, DashboardPath, w.Header().Get("Location"))
}

func TestAuthorizeClearsStaleCookie(t *testing.T) {
	r := newRouter(&fakeAuthenticator{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "expired"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, session.DefaultCookieName, w.Result().Cookies()[0].Name)
	assert.Equal(t, "", w.Result().Cookies()[0].Value)
}

func TestAuthorizeStorageFailureIsInternalError(t *testing.T) {
	r := newRouter(&fakeAuthenticator{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"type":"internal_error","message":"internal server error"}}`, w.Body.String())
}

func TestErrorHandlingMapsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandling())
	r.GET("/missing", func(c *gin.Context) { AbortWithError(c, repository.ErrInvoiceNotFound) })
	r.GET("/bad", func(c *gin.Context) { AbortWithError(c, ErrInvalidRequest) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("ignored"))
		c.Status(http.StatusAccepted)
		c.Writer.WriteHeaderNow()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"type":"invalid_request","message":"invalid_request"}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
}
