package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/acmchapter/recruitment-api/internal/types"
)

// Echo compatible validator with proper tag semantics
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

func Create() CustomValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		paramName := strings.SplitN(field.Tag.Get("param"), ",", 2)[0]
		if paramName != "" {
			return paramName
		}

		jsonName := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if jsonName == "-" {
			return ""
		}
		if jsonName == "-," {
			return "-"
		}
		return jsonName
	})

	// Registration only fails for empty tag names, so errors are impossible here.
	_ = validate.RegisterValidation("rollnumber", func(fl validator.FieldLevel) bool {
		return ValidRollNumber(fl.Field().String())
	})
	_ = validate.RegisterValidation("recruitmentdomain", func(fl validator.FieldLevel) bool {
		return types.Domain(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("portalemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})

	return CustomValidator{validator: validate}
}
