package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/service"
)

type AssemblerHandler struct {
	assemblerService service.AssemblerService
}

func NewAssemblerHandler(assemblerService service.AssemblerService) *AssemblerHandler {
	return &AssemblerHandler{
		assemblerService: assemblerService,
	}
}

// CreateAssembler handles POST /assemblers
func (h *AssemblerHandler) CreateAssembler(c *gin.Context) {
	var req dto.CreateAssemblerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	assembler, err := h.assemblerService.CreateAssembler(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, assembler)
}

// GetAssembler handles GET /assemblers/:id
func (h *AssemblerHandler) GetAssembler(c *gin.Context) {
	assemblerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	assembler, err := h.assemblerService.GetAssembler(c.Request.Context(), assemblerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, assembler)
}

// ListAssemblers handles GET /assemblers
func (h *AssemblerHandler) ListAssemblers(c *gin.Context) {
	assemblers, err := h.assemblerService.ListAssemblers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, assemblers)
}

// UpdateAssembler handles PATCH /assemblers/:id
func (h *AssemblerHandler) UpdateAssembler(c *gin.Context) {
	assemblerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssemblerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	assembler, err := h.assemblerService.UpdateAssembler(c.Request.Context(), assemblerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, assembler)
}

// DeleteAssembler handles DELETE /assemblers/:id
func (h *AssemblerHandler) DeleteAssembler(c *gin.Context) {
	assemblerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assemblerService.DeleteAssembler(c.Request.Context(), assemblerID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
