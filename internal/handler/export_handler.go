package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ituplan/planner-api/internal/dto"
	"github.com/ituplan/planner-api/internal/service"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
	"github.com/ituplan/planner-api/pkg/response"
)

type exportService interface {
	ExportPlan(ctx context.Context, query dto.ExportPlanQuery) (*service.ExportResult, error)
}

// ExportHandler exposes plan download endpoints.
type ExportHandler struct {
	export exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(export exportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Export godoc
// @Summary Export a plan
// @Description Renders the chosen sections as a CSV or PDF table, one row per weekly session
// @Tags Planner
// @Produce text/csv
// @Produce application/pdf
// @Param termId query string true "Term identifier"
// @Param crns query string true "Comma-separated section CRNs"
// @Param format query string false "Output format" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /plans/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	var query dto.ExportPlanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	if query.TermID == "" || query.CRNs == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId and crns are required"))
		return
	}

	result, err := h.export.ExportPlan(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
