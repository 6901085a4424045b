package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxEntityIDLength bounds the token appended to an entity IRI
	MaxEntityIDLength = 64

	// entityIDPattern keeps ids usable as the local part of a prefixed name
	entityIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// decimalPattern is the xsd:decimal lexical space (no exponent)
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

func init() {
	validate = validator.New()

	// Report yaml field names so messages match what users wrote
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
		return ValidateEntityID(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := ParseQuantity(fl.Field().String())
		return err == nil
	})
}

// Struct validates v using its validate struct tags
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	return formatValidationError(validate.Struct(v))
}

// ValidateEntityID checks an id such as "A100" or "P001"
func ValidateEntityID(id string) error {
	if id == "" {
		return errors.New("entity id cannot be empty")
	}
	if len(id) > MaxEntityIDLength {
		return fmt.Errorf("entity id '%s' exceeds maximum length of %d characters", id, MaxEntityIDLength)
	}
	if !entityIDPattern.MatchString(id) {
		return fmt.Errorf("entity id '%s' contains invalid characters (only alphanumeric, underscore and hyphen allowed)", id)
	}
	return nil
}

// ParseQuantity parses a non-negative xsd:decimal lexical form such as "2.3"
func ParseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("'%s' is not a decimal number", s)
	}
	lex := strings.TrimPrefix(s, "+")
	if strings.HasPrefix(lex, ".") {
		lex = "0" + lex
	}
	d, err := decimal.NewFromString(lex)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not a decimal number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("'%s' must not be negative", s)
	}
	return d, nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := strings.SplitN(e.Namespace(), ".", 2)
		path := e.Field()
		if len(field) == 2 {
			path = field[1]
		}
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", path)
		case "min":
			return fmt.Errorf("%s: must be at least %s", path, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", path, param)
		case "gte":
			return fmt.Errorf("%s: must be %s or greater", path, param)
		case "unique":
			return fmt.Errorf("%s: duplicate %s", path, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", path, param)
		case "entityid":
			return fmt.Errorf("%s: '%v' is not a valid entity id", path, e.Value())
		case "decimal":
			return fmt.Errorf("%s: '%v' is not a non-negative decimal", path, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", path, tag)
		}
	}

	return err
}
