package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/application/purchasing"
)

// PurchaseHandler handles purchase invoice API endpoints
type PurchaseHandler struct {
	BaseHandler
	service *purchasing.Service
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service *purchasing.Service) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Create creates a new purchase invoice draft
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchasing.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// List lists purchase invoices with pagination and filters
func (h *PurchaseHandler) List(c *gin.Context) {
	filter := purchasing.PurchaseListFilter{Page: 1, PageSize: 20}
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

// GetByID retrieves a purchase invoice by ID
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// PreviewLine computes derived amounts for a line without persisting it
func (h *PurchaseHandler) PreviewLine(c *gin.Context) {
	var req purchasing.PreviewLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.service.PreviewLine(req))
}

// AddItem adds a line to a draft purchase
func (h *PurchaseHandler) AddItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req purchasing.AddPurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// UpdateItem updates a draft line's quantity, rate, or GST
func (h *PurchaseHandler) UpdateItem(c *gin.Context) {
	id, itemID, ok := h.parseItemIDs(c)
	if !ok {
		return
	}

	var req purchasing.UpdatePurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// ChangeItemUnit converts a line's quantity to a different unit
func (h *PurchaseHandler) ChangeItemUnit(c *gin.Context) {
	id, itemID, ok := h.parseItemIDs(c)
	if !ok {
		return
	}

	var req purchasing.ChangeItemUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.ChangeItemUnit(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// RemoveItem removes a line from a draft purchase
func (h *PurchaseHandler) RemoveItem(c *gin.Context) {
	id, itemID, ok := h.parseItemIDs(c)
	if !ok {
		return
	}

	p, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Submit validates and submits a draft purchase
func (h *PurchaseHandler) Submit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	p, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Receive marks a submitted purchase as received and books stock batches
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	p, err := h.service.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Cancel cancels a purchase with a reason
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req purchasing.CancelPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Delete deletes a draft purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *PurchaseHandler) parseItemIDs(c *gin.Context) (purchaseID, itemID uuid.UUID, ok bool) {
	purchaseID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return purchaseID, itemID, false
	}
	itemID, err = uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return purchaseID, itemID, false
	}
	return purchaseID, itemID, true
}
