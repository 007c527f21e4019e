package ticket

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"timedesk/internal/middleware"
	"timedesk/internal/pkg/response"
	"timedesk/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSONParsing(c, err)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Validation(c, issues)
		return
	}

	principal := middleware.Principal(c)
	t, err := h.service.Create(c.Request.Context(), principal, req.Title)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) Get(c *gin.Context) {
	principal := middleware.Principal(c)
	t, err := h.service.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, t)
}

func (h *Handler) ListMine(c *gin.Context) {
	principal := middleware.Principal(c)
	tickets, err := h.service.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, tickets)
}

type assignRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSONParsing(c, err)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Validation(c, issues)
		return
	}

	principal := middleware.Principal(c)
	if err := h.service.Assign(c.Request.Context(), principal, c.Param("id"), req.UserID); err != nil {
		h.renderError(c, err)
		return
	}
	response.Updated(c, gin.H{"ticket_id": c.Param("id"), "user_id": req.UserID})
}

type linkProjectRequest struct {
	ProjectID int64 `json:"project_id" validate:"required,gt=0"`
}

func (h *Handler) LinkProject(c *gin.Context) {
	var req linkProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSONParsing(c, err)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Validation(c, issues)
		return
	}

	principal := middleware.Principal(c)
	if err := h.service.LinkProject(c.Request.Context(), principal, c.Param("id"), req.ProjectID); err != nil {
		h.renderError(c, err)
		return
	}
	response.Updated(c, gin.H{"ticket_id": c.Param("id"), "project_id": req.ProjectID})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.ErrorMessage(c, http.StatusUnauthorized, "authentication required", nil)
	case errors.Is(err, ErrInvalidID):
		response.Validation(c, []response.FieldIssue{{Field: "id", Rule: "token"}})
	case errors.Is(err, ErrForbidden):
		response.ErrorMessage(c, http.StatusForbidden, "only the ticket creator or an admin may do this", nil)
	case errors.Is(err, ErrNotFound):
		response.NotFound(c)
	default:
		c.Error(err)
		response.ErrorMessage(c, http.StatusInternalServerError, "storage failure", nil)
	}
}
