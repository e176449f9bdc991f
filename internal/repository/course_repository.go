package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ituplan/planner-api/internal/models"
)

const courseColumns = "id, term_id, code, crn, title, instructor, days, times, building, rooms, level, capacity, enrolled, created_at, updated_at"

// CourseRepository handles persistence for archived catalog sections.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns sections matching the provided filters with their total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE term_id = $1"
	args := []interface{}{filter.TermID}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		switch filter.SearchField {
		case "code", "title", "instructor", "crn":
			base += fmt.Sprintf(" AND %s ILIKE $%d", filter.SearchField, len(args)+1)
			args = append(args, pattern)
		default:
			base += fmt.Sprintf(" AND (code ILIKE $%d OR title ILIKE $%d OR instructor ILIKE $%d OR crn ILIKE $%d)",
				len(args)+1, len(args)+1, len(args)+1, len(args)+1)
			args = append(args, pattern)
		}
	}
	if filter.Code != "" {
		base += fmt.Sprintf(" AND code = $%d", len(args)+1)
		args = append(args, filter.Code)
	}
	if filter.Level != "" {
		base += fmt.Sprintf(" AND level = $%d", len(args)+1)
		args = append(args, filter.Level)
	}
	if filter.Subject != "" {
		// Subject is the code prefix before the space, e.g. "MAT" in "MAT 101".
		base += fmt.Sprintf(" AND code LIKE $%d", len(args)+1)
		args = append(args, filter.Subject+" %")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"code": true, "title": true, "crn": true, "instructor": true}
	if !allowedSorts[sortBy] {
		sortBy = "code"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s, crn ASC LIMIT %d OFFSET %d", courseColumns, base, sortBy, order, size, offset)

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// ListByCodes loads every section of the named courses in one term. Codes
// with no sections simply contribute nothing.
func (r *CourseRepository) ListByCodes(ctx context.Context, termID string, codes []string) ([]models.Course, error) {
	if len(codes) == 0 {
		return []models.Course{}, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM courses WHERE term_id = ? AND code IN (?) ORDER BY code ASC, crn ASC", courseColumns),
		termID, codes,
	)
	if err != nil {
		return nil, fmt.Errorf("build codes query: %w", err)
	}

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list courses by codes: %w", err)
	}
	return courses, nil
}

// ListByCRNs loads the named sections of one term.
func (r *CourseRepository) ListByCRNs(ctx context.Context, termID string, crns []string) ([]models.Course, error) {
	if len(crns) == 0 {
		return []models.Course{}, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM courses WHERE term_id = ? AND crn IN (?) ORDER BY crn ASC", courseColumns),
		termID, crns,
	)
	if err != nil {
		return nil, fmt.Errorf("build crns query: %w", err)
	}

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list courses by crns: %w", err)
	}
	return courses, nil
}

// DistinctLevels returns the level values present in one term.
func (r *CourseRepository) DistinctLevels(ctx context.Context, termID string) ([]string, error) {
	const query = `SELECT DISTINCT level FROM courses WHERE term_id = $1 AND level <> '' ORDER BY level ASC`

	var levels []string
	if err := r.db.SelectContext(ctx, &levels, query, termID); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return levels, nil
}

// DistinctSubjects returns the subject prefixes present in one term, derived
// from the part of the course code before the first space. An optional level
// narrows the scan.
func (r *CourseRepository) DistinctSubjects(ctx context.Context, termID, level string) ([]string, error) {
	query := "SELECT DISTINCT split_part(code, ' ', 1) AS subject FROM courses WHERE term_id = $1 AND code <> ''"
	args := []interface{}{termID}
	if level != "" {
		query += fmt.Sprintf(" AND level = $%d", len(args)+1)
		args = append(args, level)
	}
	query += " ORDER BY subject ASC"

	var subjects []string
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
