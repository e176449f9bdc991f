package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/models"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
)

type stubPlanFetcher struct {
	sections []models.Course
	err      error
}

func (s *stubPlanFetcher) SectionsByCRNs(_ context.Context, _ string, _ []string) ([]models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sections, nil
}

func newExportFixture(sections []models.Course) *ExportService {
	plans := &stubPlanFetcher{sections: sections}
	terms := &stubTermReader{term: &models.Term{ID: "term-1", Name: "2023-2024 Güz"}}
	return NewExportService(plans, terms, true, zap.NewNop())
}

func TestExportPlanCSVOneRowPerSession(t *testing.T) {
	svc := newExportFixture([]models.Course{
		testCourse("MAT 101", "10001", "Monday,Wednesday", "09:00/11:00"),
	})

	result, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "10001",
		Format: "csv",
	})

	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "plan-term-1.csv", result.FileName)

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CRN")
	assert.Contains(t, lines[1], "Monday")
	assert.Contains(t, lines[2], "Wednesday")
	assert.Contains(t, lines[1], "09:00")
}

func TestExportPlanCSVIsDefaultFormat(t *testing.T) {
	svc := newExportFixture([]models.Course{
		testCourse("MAT 101", "10001", "Monday", "09:00/11:00"),
	})

	result, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "10001",
	})

	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportPlanPDF(t *testing.T) {
	svc := newExportFixture([]models.Course{
		testCourse("MAT 101", "10001", "Monday", "09:00/11:00"),
	})

	result, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "10001",
		Format: "pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportPlanListsUnscheduledSections(t *testing.T) {
	svc := newExportFixture([]models.Course{
		testCourse("MAT 101", "10001", "", ""),
	})

	result, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "10001",
		Format: "csv",
	})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "10001")
}

func TestExportPlanRejectsUnknownFormat(t *testing.T) {
	svc := newExportFixture([]models.Course{
		testCourse("MAT 101", "10001", "Monday", "09:00/11:00"),
	})

	_, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "10001",
		Format: "xlsx",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportPlanDisabled(t *testing.T) {
	svc := NewExportService(&stubPlanFetcher{}, &stubTermReader{}, false, zap.NewNop())

	_, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "10001",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrFeatureDisabled.Code, appErr.Code)
}

func TestExportPlanNoMatchingSections(t *testing.T) {
	svc := newExportFixture(nil)

	_, err := svc.ExportPlan(context.Background(), dto.ExportPlanQuery{
		TermID: "term-1",
		CRNs:   "99999",
	})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
