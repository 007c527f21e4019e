package attachment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"timedesk/internal/middleware"
	"timedesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts the raw payload as the request body. The original
// filename travels in the X-File-Name header (or ?filename=), the MIME
// type in Content-Type. A declared Content-Length is mandatory so the
// server never buffers an unbounded stream.
func (h *Handler) Upload(c *gin.Context) {
	if c.Request.ContentLength < 0 {
		response.ErrorMessage(c, http.StatusLengthRequired, "Content-Length header is required", nil)
		return
	}

	name := c.GetHeader("X-File-Name")
	if name == "" {
		name = c.Query("filename")
	}

	principal := middleware.Principal(c)
	a, err := h.service.Upload(
		c.Request.Context(),
		principal,
		c.Param("id"),
		name,
		c.ContentType(),
		c.Request.ContentLength,
		c.Request.Body,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Created(c, a)
}

// Download streams the file. The optional trailing :name segment lets
// a browser-friendly filename ride in the URL; it must then match the
// stored name exactly or the attachment does not exist as far as the
// caller can tell.
func (h *Handler) Download(c *gin.Context) {
	principal := middleware.Principal(c)

	a, f, err := h.service.Open(c.Request.Context(), principal, c.Param("id"), c.Param("name"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, a.Size, a.ContentType, f, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", a.Name),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	principal := middleware.Principal(c)

	if err := h.service.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}

	response.Deleted(c)
}

func (h *Handler) ListForTicket(c *gin.Context) {
	principal := middleware.Principal(c)

	attachments, err := h.service.ListForTicket(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.OK(c, attachments)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.ErrorMessage(c, http.StatusUnauthorized, "authentication required", nil)
	case errors.Is(err, ErrInvalidTicketID):
		response.Validation(c, []response.FieldIssue{{Field: "ticketId", Rule: "token"}})
	case errors.Is(err, ErrEmptyName):
		response.Validation(c, []response.FieldIssue{{Field: "filename", Rule: "required"}})
	case errors.Is(err, ErrLengthRequired):
		response.ErrorMessage(c, http.StatusLengthRequired, "Content-Length header is required", nil)
	case errors.Is(err, ErrFileTooLarge):
		response.ErrorMessage(c, http.StatusRequestEntityTooLarge, "file exceeds maximum allowed size", nil)
	case errors.Is(err, ErrTicketNotFound), errors.Is(err, ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, ErrStorage):
		c.Error(err)
		response.ErrorMessage(c, http.StatusInternalServerError, "storage failure", nil)
	default:
		c.Error(err)
		response.Unknown(c)
	}
}
