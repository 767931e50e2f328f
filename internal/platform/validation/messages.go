// Package validation converts binding failures into the API's
// field-level error body.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Messages converts a Gin binding error into a map of field name to
// human-readable messages, the shape returned with HTTP 400:
//
//	{"email": ["The email must be a valid email address."]}
//
// It returns nil when err is not a validation error (for example a JSON
// type mismatch), in which case callers should fall back to a generic
// error body.
func Messages(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		out[field] = append(out[field], message(field, fe))
	}
	return out
}

// UniqueEmail is the message returned when an email collides with an
// existing user. It gets the same body shape as binding failures so the
// client sees one uniform 400 contract.
func UniqueEmail() map[string][]string {
	return map[string][]string{
		"email": {"The email has already been taken."},
	}
}

// message renders a single rule violation.
func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

// toSnake converts a Go struct field name to its JSON field name
// (MembershipStatus -> membership_status).
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
