package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ituplan/planner-api/internal/service"
	"github.com/ituplan/planner-api/pkg/response"
)

// TermHandler exposes archive term endpoints.
type TermHandler struct {
	catalog *service.CatalogService
}

// NewTermHandler constructs a term handler.
func NewTermHandler(catalog *service.CatalogService) *TermHandler {
	return &TermHandler{catalog: catalog}
}

// List godoc
// @Summary List archive terms
// @Description Archived registration terms, newest academic year first
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	terms, err := h.catalog.ListTerms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}
