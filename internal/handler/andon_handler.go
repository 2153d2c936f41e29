package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/middleware"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/service"
)

type AndonHandler struct {
	andonService service.AndonService
}

func NewAndonHandler(andonService service.AndonService) *AndonHandler {
	return &AndonHandler{
		andonService: andonService,
	}
}

// RaiseAndon handles POST /andon
func (h *AndonHandler) RaiseAndon(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.RaiseAndonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	issue, err := h.andonService.RaiseAndon(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, issue)
}

// GetAndon handles GET /andon/:id
func (h *AndonHandler) GetAndon(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	issue, err := h.andonService.GetAndon(c.Request.Context(), issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}

// ListAndons handles GET /andon
func (h *AndonHandler) ListAndons(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	issues, err := h.andonService.ListAndons(c.Request.Context(), status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issues)
}

// UpdateAndonStatus handles PATCH /andon/:id/status
func (h *AndonHandler) UpdateAndonStatus(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAndonStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	issue, err := h.andonService.UpdateAndonStatus(c.Request.Context(), issueID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}
