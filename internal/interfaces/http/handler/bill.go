package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/spicetrade/backend/internal/application/billing"
	"github.com/spicetrade/backend/internal/interfaces/http/middleware"
)

// BillHandler handles caterer bill API endpoints
type BillHandler struct {
	BaseHandler
	service   *billingapp.Service
	reminders *billingapp.ReminderService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(service *billingapp.Service, reminders *billingapp.ReminderService) *BillHandler {
	return &BillHandler{service: service, reminders: reminders}
}

// Create raises a new caterer bill
func (h *BillHandler) Create(c *gin.Context) {
	var req billingapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.service.CreateBill(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// List lists caterer bills with pagination and filters
func (h *BillHandler) List(c *gin.Context) {
	filter := billingapp.BillListFilter{Page: 1, PageSize: 20}
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

// GetByID retrieves a caterer bill by ID
func (h *BillHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// RecordPayment records a payment against a bill
func (h *BillHandler) RecordPayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// ListPayments lists the payments recorded against a bill
func (h *BillHandler) ListPayments(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// Cancel cancels an unpaid bill
func (h *BillHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.service.CancelBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// ExtendDueDate moves a bill's due date forward
func (h *BillHandler) ExtendDueDate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.ExtendDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.service.ExtendDueDate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// Outstanding summarizes open balances per caterer
func (h *BillHandler) Outstanding(c *gin.Context) {
	dues, err := h.service.OutstandingByCaterer(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dues)
}

// Reminders lists due-soon and overdue bills not yet dismissed this session
func (h *BillHandler) Reminders(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reminders, err := h.reminders.DueSoon(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reminders)
}

// DismissReminder hides a bill's reminder for the rest of the session
func (h *BillHandler) DismissReminder(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	if err := h.reminders.Dismiss(c.Request.Context(), sessionID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
