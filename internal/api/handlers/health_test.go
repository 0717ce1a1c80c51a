package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/chat-relay/internal/api/dto"
	"github.com/unifiedui/chat-relay/internal/api/handlers"
	"github.com/unifiedui/chat-relay/internal/testutil"
	"github.com/unifiedui/chat-relay/internal/testutil/mocks"
)

func setupHealthRouter(cacheErr, docdbErr error, cacheOptional bool) (*gin.Engine, *mocks.MockCacheClient, *mocks.MockDocDBClient) {
	mockCache := mocks.NewMockCacheClient()
	mockDocDB := mocks.NewMockDocDBClient()
	mockCache.On("Ping", mock.Anything).Return(cacheErr)
	mockDocDB.On("Ping", mock.Anything).Return(docdbErr)

	handler := handlers.NewHealthHandler(
		handlers.HealthCheck{Name: "cache", Check: mockCache.Ping, Optional: cacheOptional},
		handlers.HealthCheck{Name: "docdb", Check: mockDocDB.Ping, Optional: true},
	)

	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)
	router.GET("/live", handler.Live)
	return router, mockCache, mockDocDB
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		cacheErr       error
		docdbErr       error
		cacheOptional  bool
		expectedStatus int
		expectedHealth string
		expectedCache  string
		expectedDocDB  string
	}{
		{
			name:           "all healthy",
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedCache:  "healthy",
			expectedDocDB:  "healthy",
		},
		{
			name:           "required cache down",
			cacheErr:       assert.AnError,
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
			expectedCache:  "unhealthy",
			expectedDocDB:  "healthy",
		},
		{
			name:           "fail-open cache down",
			cacheErr:       assert.AnError,
			cacheOptional:  true,
			expectedStatus: http.StatusOK,
			expectedHealth: "degraded",
			expectedCache:  "unhealthy",
			expectedDocDB:  "healthy",
		},
		{
			name:           "audit store down",
			docdbErr:       assert.AnError,
			expectedStatus: http.StatusOK,
			expectedHealth: "degraded",
			expectedCache:  "healthy",
			expectedDocDB:  "unhealthy",
		},
		{
			name:           "everything down",
			cacheErr:       assert.AnError,
			docdbErr:       assert.AnError,
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
			expectedCache:  "unhealthy",
			expectedDocDB:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockCache, mockDocDB := setupHealthRouter(tt.cacheErr, tt.docdbErr, tt.cacheOptional)

			w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/health"})

			testutil.AssertStatusCode(t, tt.expectedStatus, w)

			var response dto.HealthResponse
			testutil.ParseJSONResponse(t, w, &response)
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Equal(t, tt.expectedCache, response.Components["cache"])
			assert.Equal(t, tt.expectedDocDB, response.Components["docdb"])

			mockCache.AssertExpectations(t)
			mockDocDB.AssertExpectations(t)
		})
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		router, _, mockDocDB := setupHealthRouter(nil, assert.AnError, false)

		w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/ready"})
		testutil.AssertStatusCode(t, http.StatusOK, w)

		var response map[string]string
		testutil.ParseJSONResponse(t, w, &response)
		assert.Equal(t, "ready", response["status"])

		// Optional dependencies are not pinged for readiness.
		mockDocDB.AssertNotCalled(t, "Ping", mock.Anything)
	})

	t.Run("required cache down", func(t *testing.T) {
		router, _, _ := setupHealthRouter(assert.AnError, nil, false)

		w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/ready"})
		testutil.AssertStatusCode(t, http.StatusServiceUnavailable, w)

		var response map[string]string
		testutil.ParseJSONResponse(t, w, &response)
		assert.Equal(t, "cache unavailable", response["reason"])
	})
}

func TestHealthHandler_Live(t *testing.T) {
	router, _, _ := setupHealthRouter(nil, nil, false)

	w := testutil.PerformRequest(router, testutil.Request{Method: http.MethodGet, Path: "/live"})

	testutil.AssertStatusCode(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), "alive")
}
