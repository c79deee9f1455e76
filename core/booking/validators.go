package booking

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/bunjo05/volunteer-faster/core"
)

var (
	aspectTag  = "aspect"
	aspectText = "invalid funding aspect"
)

// InitValidators registers the booking package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(aspectTag, aspectValidation)
	core.RegisterCustomTranslation(validate, translator, aspectTag, aspectText)
}

// aspectValidation checks that the value is a known funding aspect.
func aspectValidation(fl validator.FieldLevel) bool {
	return Aspect(fl.Field().String()).Valid()
}
