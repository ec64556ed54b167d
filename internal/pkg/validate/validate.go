// internal/pkg/validate/validate.go
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	xerrors "gateway-auth-service/internal/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failing field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured result of a failed validation. It enumerates
// every failing field, not just the first.
type Errors struct {
	Fields []FieldError `json:"fields"`
}

func (e *Errors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets callers match the validation sentinel with errors.Is.
func (e *Errors) Unwrap() error {
	return xerrors.ErrValidation
}

// Validator checks request payloads against their struct tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("strongpassword", strongPassword)
	v.RegisterValidation("notblank", notBlank)
	return &Validator{v: v}
}

// Struct validates req and converts validator output into field errors.
func (val *Validator) Struct(req interface{}) error {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation internals: %w", err)
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "notblank":
		return "must not be blank"
	case "strongpassword":
		return "must contain at least one uppercase letter, one lowercase letter and one digit"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}

// strongPassword requires at least one uppercase, one lowercase and one
// digit. Pattern match only, no entropy estimation.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// notBlank rejects values that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
