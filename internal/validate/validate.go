package validate

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// FieldError mirrors the error shape of the JSON API: one entry per
// offending request field.
type FieldError struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

// Struct runs validator tags over a request struct and flattens the result.
func Struct(s any) []FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Param: "body", Message: "malformed request"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Param: strings.ToLower(fe.Field()), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "cannot exceed " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "gt", "gte":
		return "must be a positive number"
	case "uuid4", "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}

// Password enforces the registration strength rule: at least 8 characters
// with one lowercase, one uppercase and one digit.
func Password(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// UUID parses path ids (items, orders) and returns the trimmed canonical
// input.
func UUID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return s, true
}

// Sort normalizes the `p` query param; anything unknown means "relevent",
// i.e. no price ordering.
func Sort(s string) string {
	s = strings.TrimSpace(s)
	if s != "low" && s != "high" {
		return "relevent"
	}
	return s
}

// Offset normalizes the `o` query param to a non-negative integer.
func Offset(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Limit normalizes the `l` query param to the 10..100 window, defaulting
// to 20.
func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 10 || n > 100 {
		return 20
	}
	return n
}
