package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation wraps validator failures on a bound request.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps JSON or query decoding failures.
	ErrBinding = errors.New("binding failed")
)

var validate = newValidator()

// newValidator names fields by their json tag and adds "notempty", which
// rejects whitespace-only strings such as a blank quote text.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Validator returns the shared request validator.
func Validator() *validator.Validate {
	return validate
}

// Validate runs struct tag validation on v.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors maps each rejected json field to a readable message.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[fe.Field()] = message(fe)
		}
	}

	return out
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

func message(fe validator.FieldError) string {
	p := fe.Param()

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notempty":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + p
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "gt":
		return "must be greater than " + p
	case "lt":
		return "must be less than " + p
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}

		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be %s %s characters", bound, p)
		}

		return fmt.Sprintf("must be %s %s", bound, p)
	default:
		return "failed validation: " + fe.Tag()
	}
}
