// Package validation wraps the validator/v10 library and turns its errors
// into field -> message maps suitable for re-rendering a submitted form.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := 0; i < len(name); i++ {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return v
}()

// Check validates a payload struct. It returns a map of field name to error
// message, or nil when the payload is valid. Length limits are rune-counted
// by the library, so multi-byte text is measured in characters.
func Check(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Non-field errors (e.g. passing a non-struct) are programmer mistakes.
		return map[string]string{"payload": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = message(e)
	}
	return fieldErrors
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "can't be blank"
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", e.Param())
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", e.Param())
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
