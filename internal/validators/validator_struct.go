package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator validates models by their `validate` struct tags.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator returns a Validator reporting fields by their JSON name.
func NewStructValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &StructValidator{validate: v}
}

// Validate checks obj, a struct or a pointer to one. When fields are given
// only those Go field names are checked.
func (s *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ErrUnsupportedType
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
	for _, f := range fields {
		if _, ok := value.Type().FieldByName(f); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	var err error
	if len(fields) > 0 {
		err = s.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = s.validate.StructCtx(ctx, obj)
	}
	return translate(err)
}

// translate turns validator errors into ErrInvalidField errors with a
// readable message per violated field.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidField, describe(fe)))
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "nefield":
		return field + " must differ from the current one"
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
