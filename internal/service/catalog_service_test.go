package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/models"
)

type stubCatalogTerms struct {
	terms []models.Term
}

func (s *stubCatalogTerms) List(_ context.Context) ([]models.Term, error) {
	return s.terms, nil
}

func (s *stubCatalogTerms) FindByID(_ context.Context, id string) (*models.Term, error) {
	for _, term := range s.terms {
		if term.ID == id {
			copied := term
			return &copied, nil
		}
	}
	return nil, nil
}

type stubCatalogCourses struct {
	courses  []models.Course
	total    int
	levels   []string
	subjects []string

	lastFilter models.CourseFilter
}

func (s *stubCatalogCourses) List(_ context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	s.lastFilter = filter
	return s.courses, s.total, nil
}

func (s *stubCatalogCourses) ListByCodes(_ context.Context, _ string, _ []string) ([]models.Course, error) {
	return s.courses, nil
}

func (s *stubCatalogCourses) DistinctLevels(_ context.Context, _ string) ([]string, error) {
	return s.levels, nil
}

func (s *stubCatalogCourses) DistinctSubjects(_ context.Context, _, _ string) ([]string, error) {
	return s.subjects, nil
}

func newCatalogFixture(terms *stubCatalogTerms, courses *stubCatalogCourses) *CatalogService {
	cache := NewCacheService(nil, nil, 0, zap.NewNop(), false)
	return NewCatalogService(terms, courses, cache, nil, zap.NewNop())
}

func TestListTermsSortsNewestYearFirstWithSeasonOrder(t *testing.T) {
	terms := &stubCatalogTerms{terms: []models.Term{
		{ID: "t1", Name: "2022-2023 Güz Dönemi"},
		{ID: "t2", Name: "2023-2024 Güz Dönemi"},
		{ID: "t3", Name: "2023-2024 Yaz Dönemi"},
		{ID: "t4", Name: "2023-2024 Bahar Dönemi"},
	}}
	svc := newCatalogFixture(terms, &stubCatalogCourses{})

	out, err := svc.ListTerms(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, []string{"t3", "t4", "t2", "t1"}, []string{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
}

func TestListTermsSortsRangesByClosingYear(t *testing.T) {
	terms := &stubCatalogTerms{terms: []models.Term{
		{ID: "t1", Name: "2023 Yaz Okulu"},
		{ID: "t2", Name: "2023-2024 Bahar Dönemi"},
	}}
	svc := newCatalogFixture(terms, &stubCatalogCourses{})

	out, err := svc.ListTerms(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	// The range closes in 2024, so it outranks the 2023 summer school even
	// though summer sorts first within a year.
	assert.Equal(t, "t2", out[0].ID)
	assert.Equal(t, "t1", out[1].ID)
}

func TestListCoursesMapsFilterAndPagination(t *testing.T) {
	courses := &stubCatalogCourses{
		courses: []models.Course{{ID: "crs-1", Code: "MAT 101", CRN: "10001"}},
		total:   42,
	}
	svc := newCatalogFixture(&stubCatalogTerms{}, courses)

	out, pagination, err := svc.ListCourses(context.Background(), dto.CourseListQuery{
		TermID:  "term-1",
		Subject: "MAT",
		Page:    2,
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "MAT 101", out[0].Code)
	assert.Equal(t, "MAT", courses.lastFilter.Subject)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 50, pagination.PageSize)
	assert.Equal(t, 42, pagination.TotalCount)
}

func TestListLevelsAndSubjectsPassThrough(t *testing.T) {
	courses := &stubCatalogCourses{
		levels:   []string{"Graduate", "Undergraduate"},
		subjects: []string{"FIZ", "MAT"},
	}
	svc := newCatalogFixture(&stubCatalogTerms{}, courses)

	levels, err := svc.ListLevels(context.Background(), "term-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Graduate", "Undergraduate"}, levels)

	subjects, err := svc.ListSubjects(context.Background(), "term-1", "Undergraduate")
	require.NoError(t, err)
	assert.Equal(t, []string{"FIZ", "MAT"}, subjects)
}

func TestWarmCachesNoopWhenCacheDisabled(t *testing.T) {
	svc := newCatalogFixture(&stubCatalogTerms{}, &stubCatalogCourses{})

	require.NoError(t, svc.WarmCaches(context.Background()))
}
