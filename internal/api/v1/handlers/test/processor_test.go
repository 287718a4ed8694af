package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/handlers"
	"github.com/samratjha96/bakbak-sub001/internal/app/testutil"
)

func TestProcessorHandler_Status(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.ProcessorService.On("Status", mock.Anything).
		Return(&dto.ProcessorStatusResponse{
			Running:           true,
			ActiveJobs:        2,
			PollingIntervalMs: 30000,
			Concurrency:       3,
		}, nil)

	handler := handlers.NewProcessorHandler(mockServices.ProcessorService)
	router.GET("/api/v1/processor/status", handler.Status)

	req := httptest.NewRequest("GET", "/api/v1/processor/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["running"])
	assert.Equal(t, float64(2), body["active_jobs"])
	assert.Equal(t, float64(30000), body["polling_interval_ms"])
	assert.Equal(t, float64(3), body["concurrency"])
}

func TestProcessorHandler_Configure(t *testing.T) {
	interval := int64(5000)
	concurrency := 5

	tests := []struct {
		name           string
		request        dto.ProcessorConfigRequest
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:    "update polling interval",
			request: dto.ProcessorConfigRequest{PollingIntervalMs: &interval},
			setupMocks: func(ms *testutil.MockServices) {
				ms.ProcessorService.On("Configure", mock.Anything, mock.MatchedBy(func(req *dto.ProcessorConfigRequest) bool {
					return req.PollingIntervalMs != nil && *req.PollingIntervalMs == 5000 && req.Concurrency == nil
				})).Return(&dto.ProcessorStatusResponse{
					Running:           true,
					PollingIntervalMs: 5000,
					Concurrency:       3,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(5000), body["polling_interval_ms"])
			},
		},
		{
			name:    "update concurrency",
			request: dto.ProcessorConfigRequest{Concurrency: &concurrency},
			setupMocks: func(ms *testutil.MockServices) {
				ms.ProcessorService.On("Configure", mock.Anything, mock.Anything).
					Return(&dto.ProcessorStatusResponse{
						Running:           true,
						PollingIntervalMs: 30000,
						Concurrency:       5,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(5), body["concurrency"])
			},
		},
		{
			name:           "empty update rejected",
			request:        dto.ProcessorConfigRequest{},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewProcessorHandler(mockServices.ProcessorService)
			router.PUT("/api/v1/processor/config", handler.Configure)

			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			req := httptest.NewRequest("PUT", "/api/v1/processor/config", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err = json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestProcessorHandler_StartStop(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.ProcessorService.On("Start", mock.Anything).
		Return(&dto.ProcessorStatusResponse{Running: true, PollingIntervalMs: 30000, Concurrency: 3}, nil)
	mockServices.ProcessorService.On("Stop", mock.Anything).
		Return(&dto.ProcessorStatusResponse{Running: false, PollingIntervalMs: 30000, Concurrency: 3}, nil)

	handler := handlers.NewProcessorHandler(mockServices.ProcessorService)
	router.POST("/api/v1/processor/start", handler.Start)
	router.POST("/api/v1/processor/stop", handler.Stop)

	req := httptest.NewRequest("POST", "/api/v1/processor/start", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["running"])

	req = httptest.NewRequest("POST", "/api/v1/processor/stop", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["running"])
}
