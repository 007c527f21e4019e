package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Type discriminates the outcome kind carried by an Envelope. Every
// handler answer is exactly one of these.
type Type string

const (
	TypeOK             Type = "ok"
	TypeCreated        Type = "created"
	TypeUpdated        Type = "updated"
	TypeDeleted        Type = "deleted"
	TypeValidation     Type = "validation"
	TypeNotFound       Type = "not-found"
	TypeDuplicateFound Type = "duplicate-found"
	TypeErrorMessage   Type = "error-message"
	TypeJSONParsing    Type = "json-parsing"
	TypeUnknown        Type = "unknown"
)

// Envelope is the single response shape used by every endpoint.
type Envelope struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Type    Type `json:"type"`
	Result  any  `json:"result,omitempty"`
}

// FieldIssue is one violated validation rule on one input field.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ErrorDetail is the payload of error-message envelopes.
type ErrorDetail struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func OK(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Status: http.StatusOK, Type: TypeOK, Result: result})
}

func Created(c *gin.Context, result any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Status: http.StatusCreated, Type: TypeCreated, Result: result})
}

func Updated(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Status: http.StatusOK, Type: TypeUpdated, Result: result})
}

func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, Envelope{Success: true, Status: http.StatusOK, Type: TypeDeleted})
}

func Validation(c *gin.Context, issues []FieldIssue) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Status: http.StatusBadRequest, Type: TypeValidation, Result: issues})
}

// NotFound answers both true absence and authorization denial with the
// same shape so callers cannot probe for existence.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Envelope{Success: false, Status: http.StatusNotFound, Type: TypeNotFound})
}

func DuplicateFound(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Envelope{
		Success: false,
		Status:  http.StatusConflict,
		Type:    TypeDuplicateFound,
		Result:  ErrorDetail{Message: message},
	})
}

func ErrorMessage(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Envelope{
		Success: false,
		Status:  status,
		Type:    TypeErrorMessage,
		Result:  ErrorDetail{Message: message, Details: details},
	})
}

func JSONParsing(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Status:  http.StatusBadRequest,
		Type:    TypeJSONParsing,
		Result:  ErrorDetail{Message: "request body is not valid JSON", Details: err.Error()},
	})
}

func Unknown(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Status:  http.StatusInternalServerError,
		Type:    TypeUnknown,
		Result:  ErrorDetail{Message: "internal error"},
	})
}
