package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-portal/models"
	"github.com/agency-portal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(auth *services.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(auth))
	r.GET("/admin/clients", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": p})
	})
	r.GET("/app/projects", RequireRole(models.RoleClient), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "user": c.GetString("userId")})
	})
	return r
}

func token(t *testing.T, auth *services.AuthService, user models.User) string {
	t.Helper()
	tok, _, err := auth.GenerateToken(user)
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAnonymousRedirectKeepsRequestedLocation(t *testing.T) {
	r := newRouter(services.NewAuthService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/clients?search=lune&page=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "/login?redirect="+url.QueryEscape("/admin/clients?search=lune&page=2"), body["redirect"])
}

func TestBrowserGetsFoundRedirect(t *testing.T) {
	r := newRouter(services.NewAuthService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/app/projects?project=p1", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect="+url.QueryEscape("/app/projects?project=p1"), w.Header().Get("Location"))
}

func TestRoleMismatchRedirectsHome(t *testing.T) {
	auth := services.NewAuthService("secret")
	r := newRouter(auth)
	clientID := "c1"

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, auth, models.User{Base: models.Base{ID: "u1"}, Role: models.RoleClient, ClientID: &clientID}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/app", decode(t, w)["redirect"])

	req = httptest.NewRequest(http.MethodGet, "/app/projects", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token(t, auth, models.User{Base: models.Base{ID: "u2"}, Role: models.RoleAdmin})})
	req.Header.Set("Accept", "text/html")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestMatchingRolePassesThrough(t *testing.T) {
	auth := services.NewAuthService("secret")
	r := newRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token(t, auth, models.User{Base: models.Base{ID: "admin-1"}, Email: "a@agence.fr", Role: models.RoleAdmin})})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "admin-1", data["user_id"])
	assert.Equal(t, "admin", data["role"])
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	r := newRouter(services.NewAuthService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, services.NewAuthService("other"), models.User{Base: models.Base{ID: "u"}, Role: models.RoleAdmin}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
