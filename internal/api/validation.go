package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingError turns a gin binding failure into a message fit for clients.
// Raw validator output leaks struct names, so field errors are rephrased.
func BindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	if len(verrs) == 0 {
		return "invalid request body"
	}

	return fieldErrorMessage(verrs[0])
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
