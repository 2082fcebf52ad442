// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deliciae/discovery-core/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("interaction_kind", validateInteractionKind)
	validate.RegisterValidation("engagement_kind", validateEngagementKind)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateInteractionKind(fl validator.FieldLevel) bool {
	return models.InteractionKind(fl.Field().String()).Valid()
}

func validateEngagementKind(fl validator.FieldLevel) bool {
	return models.EngagementKind(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "url":
		return e.Field() + " must be a valid URL"
	case "interaction_kind":
		return "Kind must be one of view, search, click, order"
	case "engagement_kind":
		return "Kind must be one of like, comment"
	default:
		return e.Field() + " is invalid"
	}
}
