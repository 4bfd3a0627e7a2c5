package handler

import (
	"github.com/gin-gonic/gin"
	storefrontapp "github.com/spicetrade/backend/internal/application/storefront"
)

// StorefrontHandler handles the public showcase and order endpoints
// plus the staff-facing order workflow.
type StorefrontHandler struct {
	BaseHandler
	service *storefrontapp.Service
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(service *storefrontapp.Service) *StorefrontHandler {
	return &StorefrontHandler{service: service}
}

// ListShowcase lists showcased products for the public storefront
func (h *StorefrontHandler) ListShowcase(c *gin.Context) {
	products, err := h.service.ListShowcase(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// PlaceOrder places a public order against showcased products
func (h *StorefrontHandler) PlaceOrder(c *gin.Context) {
	var req storefrontapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetOrder retrieves an order by ID
func (h *StorefrontHandler) GetOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListOrders lists orders with pagination and filters
func (h *StorefrontHandler) ListOrders(c *gin.Context) {
	filter := storefrontapp.OrderListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ConfirmOrder confirms a pending order
func (h *StorefrontHandler) ConfirmOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.service.ConfirmOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// FulfillOrder fulfills a confirmed order and deducts stock
func (h *StorefrontHandler) FulfillOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.service.FulfillOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// CancelOrder cancels an order with a reason
func (h *StorefrontHandler) CancelOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req storefrontapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.CancelOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
