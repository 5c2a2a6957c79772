package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/internal/form"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmissionService struct {
	CreateSubmissionFunc func(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error)
}

func (f *fakeSubmissionService) CreateSubmission(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error) {
	return f.CreateSubmissionFunc(ctx, req)
}

func submissionRouter(svc service.SubmissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewSubmissionHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSubmissionReturns201(t *testing.T) {
	var got service.CreateSubmissionRequest
	router := submissionRouter(&fakeSubmissionService{
		CreateSubmissionFunc: func(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error) {
			got = req
			return &service.SubmissionResult{
				RequestID:    "req-1",
				SubmissionID: "sub-1",
				CustomerID:   "cust-1",
			}, nil
		},
	})

	w := postJSON(router, "/api/submissions", `{
		"serviceId": "3f9d3f2e-0000-0000-0000-000000000001",
		"formData": {"name": "Priya", "email": "priya@example.com", "phone": "9876543210"}
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "3f9d3f2e-0000-0000-0000-000000000001", got.ServiceID)
	assert.Equal(t, form.Values{"name": "Priya", "email": "priya@example.com", "phone": "9876543210"}, got.FormData)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "req-1", data["request_id"])
}

func TestCreateSubmissionValidationFailure(t *testing.T) {
	router := submissionRouter(&fakeSubmissionService{
		CreateSubmissionFunc: func(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error) {
			return nil, &service.ValidationError{Fields: map[string]string{
				"email": "Enter a valid email address",
				"name":  form.MsgMissingRequired,
			}}
		},
	})

	w := postJSON(router, "/api/submissions", `{
		"serviceId": "3f9d3f2e-0000-0000-0000-000000000001",
		"formData": {"email": "bad"}
	}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Enter a valid email address", body.Fields["email"])
	assert.Equal(t, form.MsgMissingRequired, body.Fields["name"])
}

func TestCreateSubmissionServiceNotFound(t *testing.T) {
	router := submissionRouter(&fakeSubmissionService{
		CreateSubmissionFunc: func(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error) {
			return nil, service.ErrServiceNotFound
		},
	})

	w := postJSON(router, "/api/submissions", `{
		"serviceId": "3f9d3f2e-0000-0000-0000-000000000001",
		"formData": {"email": "priya@example.com"}
	}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSubmissionMalformedBody(t *testing.T) {
	router := submissionRouter(&fakeSubmissionService{
		CreateSubmissionFunc: func(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error) {
			require.FailNow(t, "service must not be reached for a malformed body")
			return nil, nil
		},
	})

	w := postJSON(router, "/api/submissions", `{"serviceId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubmissionPersistenceFailure(t *testing.T) {
	router := submissionRouter(&fakeSubmissionService{
		CreateSubmissionFunc: func(ctx context.Context, req service.CreateSubmissionRequest) (*service.SubmissionResult, error) {
			return nil, errors.New("connection refused")
		},
	})

	w := postJSON(router, "/api/submissions", `{
		"serviceId": "3f9d3f2e-0000-0000-0000-000000000001",
		"formData": {"email": "priya@example.com"}
	}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
