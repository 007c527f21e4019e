package timer

import (
	"errors"
	"strconv"
	"time"

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

type toggleRequest struct {
	Source string     `json:"source" validate:"omitempty,max=32"`
	At     *time.Time `json:"at"`
}

// Toggle starts a timer when none is running and stops the running one
// otherwise. The body is optional.
func (h *Handler) Toggle(c *gin.Context) {
	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSONParsing(c, err)
			return
		}
		if issues := validator.Validate(req); issues != nil {
			response.Validation(c, issues)
			return
		}
	}

	principal := middleware.Principal(c)
	entry, err := h.service.Toggle(c.Request.Context(), principal, Options{Source: req.Source, At: req.At})
	if err != nil {
		h.renderError(c, err)
		return
	}

	if entry.Open() {
		response.Created(c, entry)
		return
	}
	response.Updated(c, entry)
}

func (h *Handler) Current(c *gin.Context) {
	principal := middleware.Principal(c)
	entry, err := h.service.Current(c.Request.Context(), principal)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, entry)
}

func (h *Handler) List(c *gin.Context) {
	principal := middleware.Principal(c)

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Validation(c, []response.FieldIssue{{Field: "from", Rule: "rfc3339"}})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Validation(c, []response.FieldIssue{{Field: "to", Rule: "rfc3339"}})
			return
		}
		to = t
	}

	entries, err := h.service.List(c.Request.Context(), principal, from, to)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, entries)
}

type notesRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}

func (h *Handler) SetNotes(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Validation(c, []response.FieldIssue{{Field: "id", Rule: "numeric"}})
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSONParsing(c, err)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Validation(c, issues)
		return
	}

	principal := middleware.Principal(c)
	entry, err := h.service.SetNotes(c.Request.Context(), principal, id, req.Notes)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Updated(c, entry)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.ErrorMessage(c, 401, "authentication required", nil)
	case errors.Is(err, ErrInvalidTimeRange):
		response.Validation(c, []response.FieldIssue{{Field: "at", Rule: "after_start"}})
	case errors.Is(err, ErrToggleConflict):
		response.DuplicateFound(c, "another toggle for this user is in progress")
	case errors.Is(err, ErrNoOpenEntry), errors.Is(err, ErrEntryNotFound):
		response.NotFound(c)
	default:
		c.Error(err)
		response.ErrorMessage(c, 500, "storage failure", nil)
	}
}
