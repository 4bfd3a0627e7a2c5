package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/spicetrade/backend/internal/application/partner"
)

// CatererHandler handles caterer API endpoints
type CatererHandler struct {
	BaseHandler
	service *partnerapp.CatererService
}

// NewCatererHandler creates a new CatererHandler
func NewCatererHandler(service *partnerapp.CatererService) *CatererHandler {
	return &CatererHandler{service: service}
}

// Create creates a new caterer
func (h *CatererHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCatererRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	caterer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, caterer)
}

// List lists caterers with pagination and filters
func (h *CatererHandler) List(c *gin.Context) {
	filter := partnerapp.ListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID retrieves a caterer by ID
func (h *CatererHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid caterer ID format")
		return
	}

	caterer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, caterer)
}

// Update updates a caterer's details
func (h *CatererHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid caterer ID format")
		return
	}

	var req partnerapp.UpdateCatererRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	caterer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, caterer)
}

// Activate activates a caterer
func (h *CatererHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.service.Activate)
}

// Deactivate deactivates a caterer
func (h *CatererHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.service.Deactivate)
}

// Suspend suspends a caterer
func (h *CatererHandler) Suspend(c *gin.Context) {
	h.changeStatus(c, h.service.Suspend)
}

// Delete deletes a caterer without outstanding balance
func (h *CatererHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid caterer ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *CatererHandler) changeStatus(c *gin.Context, change func(ctx context.Context, id uuid.UUID) error) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid caterer ID format")
		return
	}

	if err := change(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
