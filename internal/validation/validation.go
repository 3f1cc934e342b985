package validation

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

// New returns a validator with the english translations registered, so
// failures can be returned to the caller as readable messages.
func New() (*validator.Validate, ut.Translator, error) {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()

	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, nil, errors.Wrap(err, "failed to register validation translations")
	}

	return validate, translator, nil
}

func TranslateError(err error, trans ut.Translator) (errs []string) {
	if err == nil {
		return nil
	}

	validationErrors := validator.ValidationErrors{}

	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			translatedErr := e.Translate(trans)
			errs = append(errs, translatedErr)
		}

		return errs
	}

	return []string{err.Error()}
}
