package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/middleware"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/service"
	"assembly-line-api/internal/ws"
)

type IdeaHandler struct {
	ideaService service.IdeaService
	hub         *ws.Hub
}

func NewIdeaHandler(ideaService service.IdeaService, hub *ws.Hub) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
		hub:         hub,
	}
}

// CreateThread handles POST /ideas/threads
func (h *IdeaHandler) CreateThread(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateIdeaThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	thread, err := h.ideaService.CreateThread(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, thread)
}

// ListThreads handles GET /ideas/threads
func (h *IdeaHandler) ListThreads(c *gin.Context) {
	threads, err := h.ideaService.ListThreads(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, threads)
}

// GetThread handles GET /ideas/threads/:id
func (h *IdeaHandler) GetThread(c *gin.Context) {
	threadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	thread, err := h.ideaService.GetThread(c.Request.Context(), threadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, thread)
}

// PostMessage handles POST /ideas/threads/:id/messages
func (h *IdeaHandler) PostMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	threadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PostIdeaMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	message, err := h.ideaService.PostMessage(c.Request.Context(), threadID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, message)
}

// ListMessages handles GET /ideas/threads/:id/messages
func (h *IdeaHandler) ListMessages(c *gin.Context) {
	threadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	messages, err := h.ideaService.ListMessages(c.Request.Context(), threadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, messages)
}

// ServeWS handles GET /ws, upgrading the connection for live pushes
func (h *IdeaHandler) ServeWS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}
	h.hub.ServeWS(c, userID)
}
