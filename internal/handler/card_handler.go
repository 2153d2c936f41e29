package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assembly-line-api/internal/dto"
	"assembly-line-api/internal/response"
	"assembly-line-api/internal/service"
)

type CardHandler struct {
	cardService service.CardService
}

func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard handles POST /cards
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, card)
}

// GetCard handles GET /cards/:id
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), cardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// GetCardByNumber handles GET /cards/number/:cardNumber
func (h *CardHandler) GetCardByNumber(c *gin.Context) {
	cardNumber := c.Param("cardNumber")
	if cardNumber == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Card number is required")
		return
	}

	card, err := h.cardService.GetCardByNumber(c.Request.Context(), cardNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// ListCards handles GET /cards
func (h *CardHandler) ListCards(c *gin.Context) {
	var filters dto.CardFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), &filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cards)
}

// UpdateCard handles PATCH /cards/:id
func (h *CardHandler) UpdateCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// TransitionCard handles POST /cards/:id/transition
func (h *CardHandler) TransitionCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.TransitionCard(c.Request.Context(), cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// ValidateDependencies handles POST /cards/validate-dependencies
func (h *CardHandler) ValidateDependencies(c *gin.Context) {
	var req dto.ValidateDependenciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.cardService.ValidateDependencies(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// MoveCard handles POST /cards/:id/position
func (h *CardHandler) MoveCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	card, err := h.cardService.MoveCard(c.Request.Context(), cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// ResetStatuses handles POST /cards/reset-status
func (h *CardHandler) ResetStatuses(c *gin.Context) {
	result, err := h.cardService.ResetAllStatuses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteCard handles DELETE /cards/:id
func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), cardID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAllCards handles DELETE /cards
func (h *CardHandler) DeleteAllCards(c *gin.Context) {
	result, err := h.cardService.DeleteAllCards(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// parseUUIDParam reads a UUID path parameter and writes the 400 itself on a
// bad value
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
