package middleware_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/chat-relay/internal/api/middleware"
	"github.com/unifiedui/chat-relay/internal/testutil"
)

func setupLoggingRouter(buf *bytes.Buffer) *gin.Engine {
	loggingMw := middleware.NewLoggingMiddlewareWithLogger(zerolog.New(buf))

	router := testutil.SetupTestRouter()
	router.Use(loggingMw.RequestLogger(), loggingMw.Logger())
	router.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	return router
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer

	w := testutil.PerformRequest(setupLoggingRouter(&buf), testutil.Request{Method: http.MethodGet, Path: "/ping"})

	testutil.AssertStatusCode(t, http.StatusOK, w)
	requestID := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, requestID, w.Body.String())

	logs := buf.String()
	assert.Contains(t, logs, `"message":"inside handler"`)
	assert.Contains(t, logs, `"message":"request completed"`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(requestID)))
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer

	w := testutil.PerformRequest(setupLoggingRouter(&buf), testutil.Request{
		Method:  http.MethodGet,
		Path:    "/ping",
		Headers: map[string]string{"X-Request-ID": "req-from-proxy"},
	})

	assert.Equal(t, "req-from-proxy", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-from-proxy", w.Body.String())
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestLogger_QuietPaths(t *testing.T) {
	var buf bytes.Buffer
	loggingMw := middleware.NewLoggingMiddlewareWithLogger(zerolog.New(&buf)).Quiet("/live")

	router := testutil.SetupTestRouter()
	router.Use(loggingMw.Logger())
	router.GET("/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/live"})
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/broken"})
	assert.Contains(t, buf.String(), `"level":"error"`)
}
