package handler

import (
	caseworkapp "github.com/clubgate/backend/internal/application/casework"
	"github.com/gin-gonic/gin"
)

// CaseHandler handles legal case endpoints
type CaseHandler struct {
	BaseHandler
	caseService *caseworkapp.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *caseworkapp.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// Create opens a new case file
func (h *CaseHandler) Create(c *gin.Context) {
	var req caseworkapp.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	kase, err := h.caseService.CreateCase(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, kase)
}

// Get retrieves a case by ID
func (h *CaseHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	kase, err := h.caseService.GetCase(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kase)
}

// List retrieves a paginated list of cases
func (h *CaseHandler) List(c *gin.Context) {
	filter, err := bindFilter(c, "status", "assigned_lawyer")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.caseService.ListCases(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a case's details
func (h *CaseHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	var req caseworkapp.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	kase, err := h.caseService.UpdateCase(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kase)
}

// Close closes an open case
func (h *CaseHandler) Close(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	kase, err := h.caseService.CloseCase(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kase)
}

// Reopen reopens a closed case
func (h *CaseHandler) Reopen(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	kase, err := h.caseService.ReopenCase(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, kase)
}
