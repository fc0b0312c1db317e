package handler

import (
	visitorapp "github.com/clubgate/backend/internal/application/visitor"
	"github.com/gin-gonic/gin"
)

// ReciprocalMemberHandler handles reciprocal membership endpoints
type ReciprocalMemberHandler struct {
	BaseHandler
	memberService *visitorapp.ReciprocalMemberService
}

// NewReciprocalMemberHandler creates a new reciprocal member handler
func NewReciprocalMemberHandler(memberService *visitorapp.ReciprocalMemberService) *ReciprocalMemberHandler {
	return &ReciprocalMemberHandler{memberService: memberService}
}

// Create registers a visiting member from a partner club
func (h *ReciprocalMemberHandler) Create(c *gin.Context) {
	var req visitorapp.CreateReciprocalMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, member)
}

// Get retrieves a reciprocal member by ID
func (h *ReciprocalMemberHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// List retrieves a paginated list of reciprocal members
func (h *ReciprocalMemberHandler) List(c *gin.Context) {
	filter, err := bindFilter(c, "status", "partner_club")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.memberService.ListMembers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a reciprocal member's details
func (h *ReciprocalMemberHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	var req visitorapp.UpdateReciprocalMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// Revoke revokes a reciprocal member's access
func (h *ReciprocalMemberHandler) Revoke(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	member, err := h.memberService.RevokeMember(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, member)
}

// Delete removes a reciprocal member record
func (h *ReciprocalMemberHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
