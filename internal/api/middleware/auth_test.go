package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func newSession(t *testing.T, token string, roles ...string) *session.Session {
	t.Helper()
	sess := session.New(session.NewMemoryStore())
	ctx := context.Background()
	if token != "" {
		require.NoError(t, sess.SetToken(ctx, token))
	}
	if roles != nil {
		require.NoError(t, sess.SetUserRoles(ctx, roles))
	}
	return sess
}

func signedToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: gojwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return signed
}

func serve(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func okRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		response.Success(c, GetViewer(c))
	})
	return router
}

func TestRequireLogin(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{"no token", "", response.CodeAuthFailed},
		{"opaque token", "test-token", response.CodeSuccess},
		{"valid jwt", signedToken(t, "testuser", time.Now().Add(time.Hour)), response.CodeSuccess},
		{"expired jwt", signedToken(t, "testuser", time.Now().Add(-time.Hour)), response.CodeAuthFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(okRouter(RequireLogin(newSession(t, tt.token))))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantCode, parseResponse(t, w).Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		roles    []string
		wantCode int
		wantMsg  string
	}{
		{"anonymous", "", nil, response.CodeAuthFailed, "Please sign in first"},
		{"user", "test-token", []string{model.RoleUser}, response.CodePermissionDenied, "Access denied. Admin role required."},
		{"no roles", "test-token", nil, response.CodePermissionDenied, "Access denied. Admin role required."},
		{"admin", "test-token", []string{model.RoleUser, model.RoleAdmin}, response.CodeSuccess, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(okRouter(RequireAdmin(newSession(t, tt.token, tt.roles...))))

			resp := parseResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestLoadViewer(t *testing.T) {
	token := signedToken(t, "rider42", time.Now().Add(time.Hour))
	w := serve(okRouter(LoadViewer(newSession(t, token, model.RoleAdmin))))

	var body struct {
		Data dto.Viewer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.Viewer{LoggedIn: true, IsAdmin: true, Username: "rider42"}, body.Data)
}

func TestLoadViewer_Anonymous(t *testing.T) {
	w := serve(okRouter(LoadViewer(newSession(t, ""))))

	var body struct {
		Data dto.Viewer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.Viewer{}, body.Data)
}

func TestGetViewer_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, dto.Viewer{}, GetViewer(c))
}
