package models

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate = newValidator()

	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
)

// FieldError describes one rejected field using its JSON name
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so clients can match errors to the fields they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// whitespace-only strings fail notblank
	v.RegisterValidation("notblank", validators.NotBlank)

	v.RegisterValidation("color_hex", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("web_url", func(fl validator.FieldLevel) bool {
		return isWebURL(fl.Field().String())
	})

	return v
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	return u.Host != ""
}

// Validate checks a model against its `validate` tags.
// Failures come back as *ValidationError, anything else is a programming error.
func Validate(model any) error {
	err := validate.Struct(model)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate %T: %w", model, err)
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return result
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "color_hex":
		return "must be a valid hex code"
	case "web_url":
		return "is not a valid URL"
	case "max":
		return fmt.Sprintf("must be %s characters or shorter", fe.Param())
	default:
		return "is invalid"
	}
}
