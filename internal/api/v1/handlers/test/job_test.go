package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/handlers"
	"github.com/samratjha96/bakbak-sub001/internal/app/testutil"
)

func TestJobHandler_Transcribe(t *testing.T) {
	tests := []struct {
		name           string
		recordingID    string
		request        dto.TranscribeRequest
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:        "job queued",
			recordingID: "rec-1",
			request:     dto.TranscribeRequest{LanguageCode: "ko"},
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("Transcribe", mock.Anything, "rec-1", mock.MatchedBy(func(req *dto.TranscribeRequest) bool {
					return req.LanguageCode == "ko"
				})).Return(&dto.JobResponse{
					ID:          "job-1",
					RecordingID: "rec-1",
					Status:      "pending",
					CreatedAt:   time.Now(),
				}, nil)
			},
			expectedStatus: http.StatusAccepted,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "job-1", body["id"])
				assert.Equal(t, "pending", body["status"])
				assert.Equal(t, "rec-1", body["recording_id"])
			},
		},
		{
			name:        "recording not found",
			recordingID: "missing",
			request:     dto.TranscribeRequest{},
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("Transcribe", mock.Anything, "missing", mock.Anything).
					Return(nil, errors.NewNotFoundError("recording"))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "not_found", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewJobHandler(mockServices.JobService)
			router.POST("/api/v1/recordings/:id/transcribe", handler.Transcribe)

			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/v1/recordings/"+tt.recordingID+"/transcribe", bytes.NewReader(body))
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

func TestJobHandler_Get(t *testing.T) {
	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		jobID          string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:  "completed job",
			jobID: "job-1",
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("GetJob", mock.Anything, "job-1").
					Return(&dto.JobResponse{
						ID:          "job-1",
						RecordingID: "rec-1",
						Status:      "completed",
						CompletedAt: &completedAt,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "completed", body["status"])
				assert.NotEmpty(t, body["completed_at"])
			},
		},
		{
			name:  "failed job carries error message",
			jobID: "job-2",
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("GetJob", mock.Anything, "job-2").
					Return(&dto.JobResponse{
						ID:           "job-2",
						RecordingID:  "rec-1",
						Status:       "failed",
						ErrorMessage: "speech backend timed out",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "failed", body["status"])
				assert.Equal(t, "speech backend timed out", body["error_message"])
				assert.Nil(t, body["completed_at"])
			},
		},
		{
			name:  "not found",
			jobID: "missing",
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("GetJob", mock.Anything, "missing").
					Return(nil, errors.NewNotFoundError("job"))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "not_found", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewJobHandler(mockServices.JobService)
			router.GET("/api/v1/jobs/:id", handler.Get)

			req := httptest.NewRequest("GET", "/api/v1/jobs/"+tt.jobID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestJobHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:        "filter by status",
			queryParams: "?status=pending",
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("ListJobs", mock.Anything, mock.MatchedBy(func(query dto.ListJobsQuery) bool {
					return query.Status == "pending" && query.Limit == 20
				})).Return(&dto.JobsResponse{
					Jobs: []dto.JobResponse{
						{ID: "job-1", Status: "pending"},
					},
					Count: 1,
					Limit: 20,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				jobs := body["jobs"].([]interface{})
				assert.Len(t, jobs, 1)
				assert.Equal(t, float64(1), body["count"])
			},
		},
		{
			name:           "invalid status",
			queryParams:    "?status=exploded",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewJobHandler(mockServices.JobService)
			router.GET("/api/v1/jobs", handler.List)

			req := httptest.NewRequest("GET", "/api/v1/jobs"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestJobHandler_Cancel(t *testing.T) {
	tests := []struct {
		name           string
		jobID          string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:  "successful cancel",
			jobID: "job-1",
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("CancelJob", mock.Anything, "job-1").
					Return(&dto.JobResponse{
						ID:     "job-1",
						Status: "cancelled",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "cancelled", body["status"])
			},
		},
		{
			name:  "job already finished",
			jobID: "job-2",
			setupMocks: func(ms *testutil.MockServices) {
				ms.JobService.On("CancelJob", mock.Anything, "job-2").
					Return(nil, errors.NewConflictError("job job-2 is completed"))
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "conflict", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewJobHandler(mockServices.JobService)
			router.POST("/api/v1/jobs/:id/cancel", handler.Cancel)

			req := httptest.NewRequest("POST", "/api/v1/jobs/"+tt.jobID+"/cancel", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}
