package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ojst60/DevBootcamp/utils/apperror"
)

var (
	// EmailRegex is the email pattern bootcamp contact addresses must match
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// WebsiteRegex accepts an optional http(s) scheme, optional www., a domain and an optional path
	WebsiteRegex = regexp.MustCompile(`^(https?://)?(www\.)?[a-zA-Z0-9-]{2,}\.[a-zA-Z]{2,}(\.[a-zA-Z]{2,})?[/\w .-]*/?$`)
)

// Careers is the fixed set of career tracks a bootcamp may list
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// MessageProvider is implemented by models that carry their own per-field messages.
// Keys have the form "<jsonField>.<tag>", e.g. "name.required".
type MessageProvider interface {
	ValidationMessages() map[string]string
}

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the custom rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("website", func(fl validator.FieldLevel) bool {
		return WebsiteRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bootcamp_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("career", func(fl validator.FieldLevel) bool {
		return IsCareer(fl.Field().String())
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct using struct tags.
// Constraint violations come back as an *apperror.Error of kind Validation with per-field messages.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.Internal("validation could not run", err)
	}

	var messages map[string]string
	if mp, ok := s.(MessageProvider); ok {
		messages = mp.ValidationMessages()
	}

	return apperror.Validation(FormatValidationErrors(validationErrs, messages))
}

var indexSuffix = regexp.MustCompile(`\[\d+\]$`)

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(errs validator.ValidationErrors, messages map[string]string) map[string]string {
	out := make(map[string]string, len(errs))

	for _, e := range errs {
		field := e.Field()
		base := indexSuffix.ReplaceAllString(field, "")

		if msg, ok := messages[base+"."+e.Tag()]; ok {
			out[base] = msg
			continue
		}

		switch e.Tag() {
		case "required":
			out[base] = fmt.Sprintf("%s is required", base)
		case "min":
			out[base] = fmt.Sprintf("%s must be at least %s", base, e.Param())
		case "max":
			out[base] = fmt.Sprintf("%s must be at most %s", base, e.Param())
		case "oneof":
			out[base] = fmt.Sprintf("%s must be one of: %s", base, strings.ReplaceAll(e.Param(), " ", ", "))
		case "career":
			out[base] = fmt.Sprintf("%q is not a valid career, allowed: %s", e.Value(), strings.Join(Careers, ", "))
		default:
			out[base] = fmt.Sprintf("%s is invalid", base)
		}
	}

	return out
}

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return EmailRegex.MatchString(email)
}

// IsCareer reports whether s is one of the allowed career tracks
func IsCareer(s string) bool {
	for _, c := range Careers {
		if c == s {
			return true
		}
	}
	return false
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
