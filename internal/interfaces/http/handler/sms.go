package handler

import (
	messagingapp "github.com/clubgate/backend/internal/application/messaging"
	"github.com/gin-gonic/gin"
)

// SMSHandler handles outbound SMS endpoints
type SMSHandler struct {
	BaseHandler
	smsService *messagingapp.SMSService
}

// NewSMSHandler creates a new SMS handler
func NewSMSHandler(smsService *messagingapp.SMSService) *SMSHandler {
	return &SMSHandler{smsService: smsService}
}

// Send queues and dispatches an SMS message
func (h *SMSHandler) Send(c *gin.Context) {
	var req messagingapp.SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// The Idempotency-Key header takes precedence over the body field.
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}

	msg, err := h.smsService.Send(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, msg)
}

// Resend re-dispatches a previously failed message
func (h *SMSHandler) Resend(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	msg, err := h.smsService.Resend(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, msg)
}

// Get retrieves a message by ID
func (h *SMSHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	msg, err := h.smsService.GetMessage(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, msg)
}

// List retrieves a paginated message log
func (h *SMSHandler) List(c *gin.Context) {
	filter, err := bindFilter(c, "status", "provider", "guest_id", "case_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.smsService.ListMessages(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Balance reports the remaining credit at the SMS provider
func (h *SMSHandler) Balance(c *gin.Context) {
	balance, err := h.smsService.Balance(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}
