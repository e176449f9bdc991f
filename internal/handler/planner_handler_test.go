package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ituplan/planner-api/internal/dto"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
)

type plannerMock struct {
	captured dto.GeneratePlanRequest
	err      error
}

func (m *plannerMock) GeneratePlan(_ context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GeneratePlanResponse{TermID: req.TermID}, nil
}

func (m *plannerMock) CheckConflicts(_ context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ConflictCheckResponse{TermID: req.TermID, ConflictFree: true}, nil
}

func TestPlannerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &plannerMock{}
	handler := NewPlannerHandler(mockSvc)
	payload := []byte(`{"termId":"term-1","mustCodes":["MAT 101"],"constraints":{"freeDays":["Friday"]}}`)
	req, _ := http.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "term-1", mockSvc.captured.TermID)
	require.Equal(t, []string{"MAT 101"}, mockSvc.captured.MustCodes)
	require.Equal(t, []string{"Friday"}, mockSvc.captured.Constraints.FreeDays)
}

func TestPlannerGenerateMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlannerHandler(&plannerMock{})
	req, _ := http.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader([]byte(`{"termId":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlannerGenerateServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &plannerMock{err: appErrors.Clone(appErrors.ErrNotFound, "term missing not found")}
	handler := NewPlannerHandler(mockSvc)
	payload := []byte(`{"termId":"missing","mustCodes":["MAT 101"]}`)
	req, _ := http.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlannerConflictsSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlannerHandler(&plannerMock{})
	payload := []byte(`{"termId":"term-1","crns":["10001","20001"]}`)
	req, _ := http.NewRequest(http.MethodPost, "/plans/conflicts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Conflicts(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"conflictFree":true`)
}
