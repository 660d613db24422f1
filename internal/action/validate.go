package action

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, which is what forms use
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("nonnegative", nonNegative)

	return v
}

// nonNegative validates decimal.Decimal and decimal.NullDecimal fields.
// A null NullDecimal is valid.
func nonNegative(fl validator.FieldLevel) bool {
	switch d := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return !d.IsNegative()
	case decimal.NullDecimal:
		return !d.Valid || !d.Decimal.IsNegative()
	}

	return false
}

// Validate checks the input against its struct tags.
//
// It returns nil when the input is valid. Otherwise the map contains
// the messages for every invalid field.
func Validate(input any) map[string][]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string][]string{"": {err.Error()}}
	}

	fields := make(map[string][]string)
	for _, e := range errs {
		fields[e.Field()] = append(fields[e.Field()], errorToText(e))
	}

	return fields
}

func errorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", e.Field(), lowerFirst(e.Param()))
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", e.Field(), lowerFirst(e.Param()))
	case "nonnegative":
		return fmt.Sprintf("%s must not be negative", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
