package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf key, so errors read the way
// the YAML is written.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	v.RegisterStructValidation(validateRetry, RetryConfig{})
	v.RegisterStructValidation(validateServices, ServicesConfig{})

	return v
}

func validateRetry(sl validator.StructLevel) {
	r, _ := sl.Current().Interface().(RetryConfig)
	if r.MaxInterval > 0 && r.MaxInterval < r.InitialInterval {
		sl.ReportError(r.MaxInterval, "max_interval", "MaxInterval", "gtefield", "initial_interval")
	}
}

func validateServices(sl validator.StructLevel) {
	s, _ := sl.Current().Interface().(ServicesConfig)
	if s.Quote.Enabled && !strings.HasPrefix(s.Quote.BaseURL, "http") {
		sl.ReportError(s.Quote.BaseURL, "quote.base_url", "BaseURL", "http_url", "")
	}
}

// Validate checks the configuration. The service refuses to start on error.
func (c *Config) Validate() error {
	err := validate.Struct(c)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		lines = append(lines, describe(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(e validator.FieldError) string {
	field := fieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url", "http_url":
		return field + " must be a valid URL"
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// fieldPath drops the root type name: "Config.server.port" becomes
// "server.port".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}
