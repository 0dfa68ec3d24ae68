package rekuest

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/portyard/yardboard/internal/pkg/yderr"
)

var (
	Validate   = newValidator()
	translator ut.Translator
)

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("caseinsensitiveoneof", caseInsensitiveOneOf)
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func init() {
	locale := en.New()
	translator, _ = ut.New(locale, locale).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(Validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	err := Validate.RegisterTranslation("caseinsensitiveoneof", translator, func(ut ut.Translator) error {
		return nil
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", fe.Field(), fe.Param())
		return t
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not register translation for function caseinsensitiveoneof")
	}
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	for _, v := range strings.Fields(strings.ToLower(fl.Param())) {
		if val == v {
			return true
		}
	}
	return false
}

func nullStringValuer(field reflect.Value) any {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}
	return nil
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(translator),
		})
	}
	return trans
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		panic(err)
	}
	return translate(errs)
}

// ValidBody parses the request body into dest and validates it. dest must be
// a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return yderr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return ValidStruct(dest)
}

func ValidStruct(dest any) error {
	if err := validateStruct(dest); err != nil {
		return yderr.NewInvalidViolations(err)
	}
	return nil
}

func ValidVar(field any, tag string) error {
	if err := Validate.Var(field, tag); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return yderr.NewInvalidViolations(translate(errs))
		}
		return yderr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return nil
}
