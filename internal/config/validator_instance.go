package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report the config key rather than the Go field name.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"mapstructure", "json"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		_ = v.RegisterValidation("generation_mode", func(fl validator.FieldLevel) bool {
			return palette.Mode(fl.Field().String()).Valid()
		})

		_ = v.RegisterValidation("target_schema", func(fl validator.FieldLevel) bool {
			_, err := schema.Lookup(schema.Target(fl.Field().String()))
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return cterrors.NewValidationError("config", "configuration is nil", nil)
	}
	return ConvertValidationError(validatorInstance().Struct(cfg))
}

// ConvertValidationError reduces validator output to a ValidationError naming the
// first offending field by its dotted config key.
func ConvertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return cterrors.NewValidationError(field, msg, err)
	}

	return cterrors.NewValidationError("config", err.Error(), err)
}

// fieldName drops the root struct from the namespace: "Config.generator.mode"
// becomes "generator.mode".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
