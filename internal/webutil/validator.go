package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"wordvault/internal/model"
)

// Validator is the shared validator instance for request DTOs.
var Validator *validator.Validate

// Trans translates validation errors into user-facing messages.
var Trans ut.Translator

func init() {
	Validator = validator.New()

	// Report field names from json tags, not Go struct fields.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}
}

// Validate runs struct validation on a request DTO and converts the first
// failure into an AppError suitable for HandleError.
func Validate(dst interface{}) error {
	err := Validator.Struct(dst)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return model.NewAppError(
			"VALIDATION_ERROR",
			first.Translate(Trans),
			first.Field(),
			model.ErrInvalidInput,
		)
	}
	return err
}
