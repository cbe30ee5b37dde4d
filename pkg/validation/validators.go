package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("media_type", MediaType)
}

// MediaType checks that the field is one of the space separated media types
// in the tag parameter. Comparison is case-insensitive.
//
//	`media_type=image/jpeg image/png`
func MediaType(fl validator.FieldLevel) bool {
	val := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	if val == "" {
		return false
	}
	for _, allowed := range strings.Fields(fl.Param()) {
		if val == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// NewValidate returns a validator instance with the custom tags registered.
func NewValidate() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}
