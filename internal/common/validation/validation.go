package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
)

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates v against its `validate` tags and reports the first
// violation as a validation domain error.
func Struct(v any) error {
	if err := get().Struct(v); err != nil {
		return translate(err, "")
	}
	return nil
}

// Var validates a single value; field names the value in the message.
func Var(field string, value any, tag string) error {
	if tag == "" {
		return nil
	}
	if err := get().Var(value, tag); err != nil {
		return translate(err, field)
	}
	return nil
}

func translate(err error, field string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return commonerrors.ErrValidation.WithCause(err)
	}

	fe := fieldErrs[0]
	name := field
	if name == "" {
		name = fe.Field()
	}

	return commonerrors.ErrValidation.WithMessage(message(name, fe))
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
