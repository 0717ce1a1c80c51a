package middleware_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	"github.com/unifiedui/chat-relay/internal/api/middleware"
	domainerrors "github.com/unifiedui/chat-relay/internal/domain/errors"
	"github.com/unifiedui/chat-relay/internal/testutil"
)

func TestRecovery_ReturnsInternalError(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.NewErrorMiddleware().Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/panic"})

	testutil.AssertStatusCode(t, http.StatusInternalServerError, w)

	var response dto.ErrorResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeInternal, response.Code)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "domain error",
			err:            domainerrors.NewNotFoundError("assistant", "marvin"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domainerrors.ErrCodeNotFound,
		},
		{
			name:           "wrapped domain error",
			err:            fmt.Errorf("lookup: %w", domainerrors.NewQuotaExceededError("limit reached")),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   domainerrors.ErrCodeQuotaExceeded,
		},
		{
			name:           "plain error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   domainerrors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testutil.SetupTestRouter()
			router.GET("/fail", func(c *gin.Context) {
				middleware.HandleError(c, tt.err)
			})

			w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/fail"})

			testutil.AssertStatusCode(t, tt.expectedStatus, w)

			var response dto.ErrorResponse
			testutil.ParseJSONResponse(t, w, &response)
			assert.Equal(t, tt.expectedCode, response.Code)
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())
	router.GET("/only-get", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/missing"})
	testutil.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutil.PerformRequest(router, testutil.Request{Method: http.MethodPost, Path: "/only-get"})
	testutil.AssertStatusCode(t, http.StatusMethodNotAllowed, w)
}
