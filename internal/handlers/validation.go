package handlers

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	namePattern       = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^(\(\d{3}\)\s?|\d{3}[-.]?)?\d{3}[-.]?\d{4}$`)
	phoneLoosePattern = regexp.MustCompile(`^[\d\s\-\(\)]+$`)
	zipPattern        = regexp.MustCompile(`^\d{5}$`)
	digitPattern      = regexp.MustCompile(`\d`)
)

// newValidator builds the validator used by all handlers. Field names in
// errors come from json tags so responses match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("name_chars", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})

	// Accepts an email address or a US phone number in one field.
	v.RegisterValidation("email_or_phone", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		return emailPattern.MatchString(value) || phonePattern.MatchString(value)
	})

	v.RegisterValidation("phone_loose", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if !phoneLoosePattern.MatchString(value) {
			return false
		}
		return len(digitPattern.FindAllString(value, -1)) >= 10
	})

	v.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errors
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "eq":
		return fe.Field() + " must equal " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lte":
		return fe.Field() + " must not exceed " + fe.Param()
	case "name_chars":
		return fe.Field() + " contains invalid characters"
	case "email_or_phone":
		return "Enter a valid email address or phone number"
	case "phone_loose":
		return "Enter a valid phone number"
	case "zip5":
		return "ZIP code must be 5 digits"
	default:
		return fe.Field() + " is invalid"
	}
}
