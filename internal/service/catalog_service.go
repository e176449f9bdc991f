package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/models"
)

type catalogTermRepository interface {
	List(ctx context.Context) ([]models.Term, error)
	FindByID(ctx context.Context, id string) (*models.Term, error)
}

type catalogCourseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	ListByCodes(ctx context.Context, termID string, codes []string) ([]models.Course, error)
	DistinctLevels(ctx context.Context, termID string) ([]string, error)
	DistinctSubjects(ctx context.Context, termID, level string) ([]string, error)
}

// CatalogService serves the archived course catalog with a Redis cache in
// front of Postgres.
type CatalogService struct {
	terms   catalogTermRepository
	courses catalogCourseRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogService constructs a catalog service.
func NewCatalogService(terms catalogTermRepository, courses catalogCourseRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	return &CatalogService{terms: terms, courses: courses, cache: cache, metrics: metrics, logger: logger}
}

const (
	cacheKeyTerms          = "catalog:terms"
	cacheKeyLevelsFormat   = "catalog:levels:%s"
	cacheKeySubjectsFormat = "catalog:subjects:%s:%s"
)

var (
	termRangePattern = regexp.MustCompile(`(\d{4})-(\d{4})`)
	termYearPattern  = regexp.MustCompile(`\d{4}`)
)

// seasonRank orders seasons within one academic year: summer terms list
// first, fall terms last, matching the archive's presentation order.
func seasonRank(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "yaz"):
		return 0
	case strings.Contains(lower, "bahar"):
		return 1
	default:
		return 2
	}
}

// termYear extracts the sort year of a term name: the closing year of a
// "2023-2024" range, or the first four-digit run for single-year names.
func termYear(name string) int {
	if match := termRangePattern.FindStringSubmatch(name); match != nil {
		year, _ := strconv.Atoi(match[2])
		return year
	}
	match := termYearPattern.FindString(name)
	if match == "" {
		return 0
	}
	year, _ := strconv.Atoi(match)
	return year
}

// ListTerms returns archived terms newest academic year first.
func (s *CatalogService) ListTerms(ctx context.Context) ([]dto.TermResponse, error) {
	var cached []dto.TermResponse
	if hit, _ := s.cache.Get(ctx, cacheKeyTerms, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	terms, err := s.terms.List(ctx)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("list_terms", time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(terms, func(i, j int) bool {
		yearI, yearJ := termYear(terms[i].Name), termYear(terms[j].Name)
		if yearI != yearJ {
			return yearI > yearJ
		}
		return seasonRank(terms[i].Name) < seasonRank(terms[j].Name)
	})

	out := make([]dto.TermResponse, 0, len(terms))
	for _, term := range terms {
		out = append(out, dto.NewTermResponse(term))
	}

	if err := s.cache.Set(ctx, cacheKeyTerms, out, 0); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache terms", zap.Error(err))
	}
	return out, nil
}

// FindTerm loads one term by identifier.
func (s *CatalogService) FindTerm(ctx context.Context, id string) (*models.Term, error) {
	return s.terms.FindByID(ctx, id)
}

// ListCourses returns catalog sections matching the query. Paged listings
// are not cached: the filter space is too wide to warm usefully.
func (s *CatalogService) ListCourses(ctx context.Context, query dto.CourseListQuery) ([]dto.CourseResponse, models.Pagination, error) {
	filter := models.CourseFilter{
		TermID:      query.TermID,
		Query:       query.Query,
		SearchField: query.SearchField,
		Code:        query.Code,
		Level:       query.Level,
		Subject:     query.Subject,
		Page:        query.Page,
		PageSize:    query.PageSize,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
	}

	start := time.Now()
	courses, total, err := s.courses.List(ctx, filter)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("list_courses", time.Since(start))
	}
	if err != nil {
		return nil, models.Pagination{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}

	return dto.NewCourseResponses(courses), models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListSections loads every section of the named courses, the planner's
// candidate feed.
func (s *CatalogService) ListSections(ctx context.Context, termID string, codes []string) ([]models.Course, error) {
	start := time.Now()
	courses, err := s.courses.ListByCodes(ctx, termID, codes)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("list_sections", time.Since(start))
	}
	return courses, err
}

// ListLevels returns the distinct level values of one term.
func (s *CatalogService) ListLevels(ctx context.Context, termID string) ([]string, error) {
	key := fmt.Sprintf(cacheKeyLevelsFormat, termID)
	var cached []string
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	levels, err := s.courses.DistinctLevels(ctx, termID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, levels, 0); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache levels", zap.String("term_id", termID), zap.Error(err))
	}
	return levels, nil
}

// ListSubjects returns the distinct subject prefixes of one term, optionally
// narrowed to one level.
func (s *CatalogService) ListSubjects(ctx context.Context, termID, level string) ([]string, error) {
	key := fmt.Sprintf(cacheKeySubjectsFormat, termID, level)
	var cached []string
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	subjects, err := s.courses.DistinctSubjects(ctx, termID, level)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, subjects, 0); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache subjects", zap.String("term_id", termID), zap.Error(err))
	}
	return subjects, nil
}

// WarmCaches primes the term list and per-term lookups. Used by the
// background jobs queue at startup.
func (s *CatalogService) WarmCaches(ctx context.Context) error {
	if !s.cache.Enabled() {
		return nil
	}

	terms, err := s.ListTerms(ctx)
	if err != nil {
		return fmt.Errorf("warm terms: %w", err)
	}
	for _, term := range terms {
		if _, err := s.ListLevels(ctx, term.ID); err != nil {
			return fmt.Errorf("warm levels for %s: %w", term.ID, err)
		}
		if _, err := s.ListSubjects(ctx, term.ID, ""); err != nil {
			return fmt.Errorf("warm subjects for %s: %w", term.ID, err)
		}
	}
	return nil
}
