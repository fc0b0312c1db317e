package handler

import (
	visitorapp "github.com/clubgate/backend/internal/application/visitor"
	"github.com/gin-gonic/gin"
)

// VisitHandler handles sign-in desk endpoints
type VisitHandler struct {
	BaseHandler
	visitService *visitorapp.VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitService *visitorapp.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// SignIn records a guest arrival and evaluates the visit limits
func (h *VisitHandler) SignIn(c *gin.Context) {
	var req visitorapp.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visitService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, visit)
}

// SignOut closes an open visit
func (h *VisitHandler) SignOut(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid visit ID")
		return
	}

	visit, err := h.visitService.SignOut(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visit)
}

// Get retrieves a visit by ID
func (h *VisitHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid visit ID")
		return
	}

	visit, err := h.visitService.GetVisit(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visit)
}

// List retrieves a paginated visit log
func (h *VisitHandler) List(c *gin.Context) {
	filter, err := bindFilter(c, "guest_id", "host_member_number", "status", "visit_date", "open")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.visitService.ListVisits(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListOpen retrieves visits that have not signed out yet
func (h *VisitHandler) ListOpen(c *gin.Context) {
	visits, err := h.visitService.ListOpenVisits(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, visits)
}
