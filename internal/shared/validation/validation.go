// Package validation runs struct-tag validation on user input before any
// remote operation is issued.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// notblank rejects strings that are empty after trimming whitespace
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// FieldError describes one failed constraint
type FieldError struct {
	Field string
	Tag   string
}

// Error is returned when input fails a declared constraint. It never
// involves the network.
type Error struct {
	Fields []FieldError
	cause  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %q", f.Field, f.Tag))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Has reports whether field failed validation
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Struct validates v and converts validator errors into *Error
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{cause: verrs}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// IsValidationError reports whether err carries a validation failure
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
