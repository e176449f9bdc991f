package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/service"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
	"github.com/ituplan/planner-api/pkg/response"
)

// CourseHandler exposes catalog browsing endpoints.
type CourseHandler struct {
	catalog *service.CatalogService
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(catalog *service.CatalogService) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// List godoc
// @Summary List catalog sections
// @Description Sections of one term with filters and pagination
// @Tags Catalog
// @Produce json
// @Param termId query string true "Term identifier"
// @Param q query string false "Free-text query over code, title, instructor and CRN"
// @Param searchField query string false "Restrict the query to one field" Enums(code, title, instructor, crn)
// @Param code query string false "Exact course code"
// @Param level query string false "Level filter"
// @Param subject query string false "Subject prefix, e.g. MAT"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param sortBy query string false "Sort column" Enums(code, title, crn, instructor)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	var query dto.CourseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	if query.TermID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId is required"))
		return
	}

	courses, pagination, err := h.catalog.ListCourses(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, &pagination)
}

// Sections godoc
// @Summary List candidate sections
// @Description Every section of the named course codes in one term
// @Tags Catalog
// @Produce json
// @Param termId query string true "Term identifier"
// @Param codes query string true "Comma-separated course codes"
// @Success 200 {object} response.Envelope
// @Router /courses/sections [get]
func (h *CourseHandler) Sections(c *gin.Context) {
	termID := c.Query("termId")
	rawCodes := c.Query("codes")
	if termID == "" || rawCodes == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId and codes are required"))
		return
	}

	codes := make([]string, 0)
	for _, code := range strings.Split(rawCodes, ",") {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}

	sections, err := h.catalog.ListSections(c.Request.Context(), termID, codes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewCourseResponses(sections), nil)
}

// Levels godoc
// @Summary List levels
// @Description Distinct level values of one term
// @Tags Catalog
// @Produce json
// @Param termId query string true "Term identifier"
// @Success 200 {object} response.Envelope
// @Router /levels [get]
func (h *CourseHandler) Levels(c *gin.Context) {
	termID := c.Query("termId")
	if termID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId is required"))
		return
	}

	levels, err := h.catalog.ListLevels(c.Request.Context(), termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, levels, nil)
}

// Subjects godoc
// @Summary List subjects
// @Description Distinct subject prefixes of one term, optionally narrowed to a level
// @Tags Catalog
// @Produce json
// @Param termId query string true "Term identifier"
// @Param level query string false "Level filter"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *CourseHandler) Subjects(c *gin.Context) {
	termID := c.Query("termId")
	if termID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId is required"))
		return
	}

	subjects, err := h.catalog.ListSubjects(c.Request.Context(), termID, c.Query("level"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
