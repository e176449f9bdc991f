package dto

import "github.com/ituplan/planner-api/internal/models"

// CourseListQuery filters and pages the course catalog.
type CourseListQuery struct {
	TermID      string `form:"termId" json:"termId" validate:"required"`
	Query       string `form:"q" json:"q"`
	SearchField string `form:"searchField" json:"searchField" validate:"omitempty,oneof=code title instructor crn"`
	Code        string `form:"code" json:"code"`
	Level       string `form:"level" json:"level"`
	Subject     string `form:"subject" json:"subject"`
	Page        int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"pageSize" json:"pageSize" validate:"omitempty,min=1,max=200"`
	SortBy      string `form:"sortBy" json:"sortBy" validate:"omitempty,oneof=code title crn instructor"`
	SortOrder   string `form:"sortOrder" json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// SectionsQuery loads every section of the named courses in one term.
type SectionsQuery struct {
	TermID string `form:"termId" json:"termId" validate:"required"`
	Codes  string `form:"codes" json:"codes" validate:"required"`
}

// TermResponse is one archived registration term.
type TermResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CourseCount int    `json:"courseCount"`
}

// CourseResponse is one catalog section.
type CourseResponse struct {
	ID         string `json:"id"`
	CRN        string `json:"crn"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Instructor string `json:"instructor"`
	Days       string `json:"days"`
	Times      string `json:"times"`
	Building   string `json:"building"`
	Rooms      string `json:"rooms"`
	Level      string `json:"level"`
	Capacity   string `json:"capacity"`
	Enrolled   string `json:"enrolled"`
}

// NewTermResponse maps a term model onto its response shape.
func NewTermResponse(term models.Term) TermResponse {
	return TermResponse{
		ID:          term.ID,
		Name:        term.Name,
		CourseCount: term.CourseCount,
	}
}

// NewCourseResponse maps a course model onto its response shape.
func NewCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{
		ID:         course.ID,
		CRN:        course.CRN,
		Code:       course.Code,
		Title:      course.Title,
		Instructor: course.Instructor,
		Days:       course.Days,
		Times:      course.Times,
		Building:   course.Building,
		Rooms:      course.Rooms,
		Level:      course.Level,
		Capacity:   course.Capacity,
		Enrolled:   course.Enrolled,
	}
}

// NewCourseResponses maps a slice of course models.
func NewCourseResponses(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, NewCourseResponse(course))
	}
	return out
}
