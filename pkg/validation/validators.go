package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// enumValue is satisfied by the closed label types of the domain.
type enumValue interface {
	Valid() bool
}

// New returns a validator with the custom tags registered and field names
// reported by their JSON keys.
func New() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

// Configure prepares an existing instance, such as the one gin binds with.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v)
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("work_mode", ValidEnum)
	_ = v.RegisterValidation("contract_type", ValidEnum)
	_ = v.RegisterValidation("required_time", RequiredTime)
}

// ValidEnum accepts only labels the field's type declares.
func ValidEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.CanInterface() {
		if e, ok := field.Interface().(enumValue); ok {
			return e.Valid()
		}
	}
	return false
}

// RequiredTime rejects the zero time.Time, which the stock "required" tag
// cannot see through on struct kinds.
func RequiredTime(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && !t.IsZero()
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
