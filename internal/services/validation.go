package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sjbrooks/Warbler/internal/models"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("safetext", func(fl validator.FieldLevel) bool {
		return isSafeText(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// isSafeText reports whether s is valid UTF-8 without NUL characters.
// PostgreSQL text columns reject anything else.
func isSafeText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// validateInput checks the validate tags of v. Failures wrap ErrInvalidInput
// and name each offending field.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(msgs, ", "))
}
