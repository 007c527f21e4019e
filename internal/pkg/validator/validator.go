package validator

import (
	"github.com/go-playground/validator/v10"

	"timedesk/internal/pkg/response"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks struct fields against their validate tags and returns
// one issue per violated rule, nil when everything passes.
func Validate(v interface{}) []response.FieldIssue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var issues []response.FieldIssue
	for _, err := range err.(validator.ValidationErrors) {
		issues = append(issues, response.FieldIssue{Field: err.Field(), Rule: err.Tag()})
	}
	return issues
}
