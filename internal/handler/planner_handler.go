package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ituplan/planner-api/internal/dto"
	appErrors "github.com/ituplan/planner-api/pkg/errors"
	"github.com/ituplan/planner-api/pkg/response"
)

type plannerService interface {
	GeneratePlan(ctx context.Context, req dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
	CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
}

// PlannerHandler exposes schedule generation endpoints.
type PlannerHandler struct {
	planner plannerService
}

// NewPlannerHandler constructs a planner handler.
func NewPlannerHandler(planner plannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// Generate godoc
// @Summary Generate ranked schedules
// @Description Builds conflict-free weekly schedules for the requested courses, best match first
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePlanRequest true "Plan request"
// @Success 200 {object} response.Envelope
// @Router /plans/generate [post]
func (h *PlannerHandler) Generate(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	resp, err := h.planner.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Conflicts godoc
// @Summary Check section conflicts
// @Description Reports every overlapping pair among the named sections
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.ConflictCheckRequest true "Conflict check request"
// @Success 200 {object} response.Envelope
// @Router /plans/conflicts [post]
func (h *PlannerHandler) Conflicts(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	resp, err := h.planner.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
