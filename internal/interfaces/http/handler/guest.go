package handler

import (
	"context"
	"io"

	visitorapp "github.com/clubgate/backend/internal/application/visitor"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GuestHandler handles guest register endpoints
type GuestHandler struct {
	BaseHandler
	guestService *visitorapp.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *visitorapp.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// Create registers a new guest
func (h *GuestHandler) Create(c *gin.Context) {
	var req visitorapp.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, guest)
}

// Get retrieves a guest by ID
func (h *GuestHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid guest ID")
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, guest)
}

// List retrieves a paginated list of guests
func (h *GuestHandler) List(c *gin.Context) {
	filter, err := bindFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.guestService.ListGuests(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a guest's details
func (h *GuestHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid guest ID")
		return
	}

	var req visitorapp.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, guest)
}

// Delete removes a guest with no recorded visits
func (h *GuestHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid guest ID")
		return
	}

	if err := h.guestService.DeleteGuest(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Approve moves a guest back to approved standing
func (h *GuestHandler) Approve(c *gin.Context) {
	h.changeStatus(c, h.guestService.ApproveGuest)
}

// Suspend suspends a guest
func (h *GuestHandler) Suspend(c *gin.Context) {
	h.changeStatus(c, h.guestService.SuspendGuest)
}

// Revoke revokes a guest's privileges
func (h *GuestHandler) Revoke(c *gin.Context) {
	h.changeStatus(c, h.guestService.RevokeGuest)
}

func (h *GuestHandler) changeStatus(c *gin.Context, op func(ctx context.Context, id uuid.UUID, reason string) (*visitorapp.GuestResponse, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid guest ID")
		return
	}

	// Body is optional; an empty body means no reason given.
	var req visitorapp.GuestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		h.BadRequest(c, err.Error())
		return
	}

	guest, err := op(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, guest)
}
