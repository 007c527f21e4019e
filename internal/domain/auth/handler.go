package auth

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

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSONParsing(c, err)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Validation(c, issues)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.ErrorMessage(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		response.Unknown(c)
		return
	}

	response.OK(c, gin.H{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

func (h *Handler) Me(c *gin.Context) {
	principal := middleware.Principal(c)
	user, err := h.service.Me(c.Request.Context(), principal)
	if err != nil {
		response.NotFound(c)
		return
	}
	response.OK(c, user)
}
