package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the validate tags of v and collects every failing field.
// It returns nil when v is valid.
func Struct(v interface{}) *ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	ve := NewValidationError()

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.AddError("", ErrorTypeInvalidValue, err.Error(), v)
		return ve
	}

	for _, fe := range fieldErrs {
		errorType, message := classify(fe)
		ve.AddError(fe.Field(), errorType, message, fe.Value())
	}
	return ve
}

func classify(fe validator.FieldError) (ValidationErrorType, string) {
	switch fe.Tag() {
	case "required":
		return ErrorTypeRequired, fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if _, isTime := fe.Value().(time.Time); !isTime {
			return ErrorTypeInvalidLength, fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		}
	case "email":
		return ErrorTypeInvalidFormat, fmt.Sprintf("%s has invalid format, expected: email address", fe.Field())
	}
	return ErrorTypeInvalidValue, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
