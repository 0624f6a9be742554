package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/test", h)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccess_NilData(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		Success(c, nil)
	})

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestSuccessWithMessage(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		SuccessWithMessage(c, "Successfully joined the club!", nil)
	})

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "Successfully joined the club!", resp.Message)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(*gin.Context, string)
		code    int
		message string
	}{
		{"param", ParamError, CodeParamError, "Invalid parameters"},
		{"auth", AuthError, CodeAuthFailed, "Please sign in"},
		{"permission", PermissionError, CodePermissionDenied, "Permission denied"},
		{"not found", NotFoundError, CodeResourceNotFound, "Not found"},
		{"server", ServerError, CodeServerError, "Internal server error"},
		{"upstream", UpstreamError, CodeUpstreamUnavailable, "RideCircle API unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" default message", func(t *testing.T) {
			w := serve(t, func(c *gin.Context) { tt.fn(c, "") })

			assert.Equal(t, http.StatusOK, w.Code)
			resp := parseResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.Nil(t, resp.Data)
		})

		t.Run(tt.name+" custom message", func(t *testing.T) {
			w := serve(t, func(c *gin.Context) { tt.fn(c, "upstream said no") })

			resp := parseResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, "upstream said no", resp.Message)
		})
	}
}

func TestError_UnknownCode(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		Error(c, 9999, "")
	})

	resp := parseResponse(t, w)
	assert.Equal(t, 9999, resp.Code)
	assert.Empty(t, resp.Message)
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "success", DefaultMessage(CodeSuccess))
	assert.Equal(t, "Not found", DefaultMessage(CodeResourceNotFound))
}
