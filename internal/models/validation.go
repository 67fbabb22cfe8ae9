package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is safe for concurrent use once built
var validate = newValidator()

// fieldMessages overrides the generic per-tag message for fields whose
// wording clients already depend on
var fieldMessages = map[string]string{
	"amount": "amount required and must be positive",
	"userId": "userId required",
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})

	// Let numeric tags such as gt=0 apply to decimal amounts
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// Validate runs struct tag validation and returns the first failure as a
// *ValidationError
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	first := validationErrors[0]
	return &ValidationError{
		Field:   first.Field(),
		Message: formatFieldError(first),
		Value:   first.Value(),
	}
}

func formatFieldError(err validator.FieldError) string {
	if message, ok := fieldMessages[err.Field()]; ok {
		return message
	}

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s required", err.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}
