// Package testutil provides test utilities and helpers.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request describes a request made against a test router.
type Request struct {
	Method     string
	Path       string
	Body       interface{}
	Headers    map[string]string
	Cookies    []*http.Cookie
	RemoteAddr string
}

// SetupTestRouter creates a new Gin router for testing.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// PerformRequest performs an HTTP request against a test router.
func PerformRequest(router *gin.Engine, r Request) *httptest.ResponseRecorder {
	var req *http.Request
	switch body := r.Body.(type) {
	case nil:
		req = httptest.NewRequest(r.Method, r.Path, nil)
	case string:
		req = httptest.NewRequest(r.Method, r.Path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(r.Method, r.Path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	if r.RemoteAddr != "" {
		req.RemoteAddr = r.RemoteAddr
	}
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}
	for _, cookie := range r.Cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ParseJSONResponse parses a JSON response body.
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), v)
	require.NoError(t, err, "failed to parse JSON response")
}

// AssertStatusCode asserts the response status code.
func AssertStatusCode(t *testing.T, expected int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, expected, w.Code, "unexpected status code: %s", w.Body.String())
}

// FindCookie returns the cookie set by the response under name, or nil.
func FindCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
