package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be at least {param}",
	"lte":         "{field} must be at most {param}",
	"gt":          "{field} must be greater than {param}",
	"oneof":       "{field} must be one of {param}",
	"email":       "{field} must be a valid email address",
	"enum":        "{field} has an unknown value",
	"gtfield":     "{field} must be after {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
	"datetime":    "{field} must match the layout {param}",
}

// Length limits read differently for text and lists than for numbers.
var lengthTemplates = map[string]string{
	"min": "{field} must be at least {param} characters",
	"max": "{field} must be at most {param} characters",
}

var sizeTemplates = map[string]string{
	"min": "{field} must be at least {param}",
	"max": "{field} must be at most {param}",
}

func describe(fieldErr val.FieldError) string {
	template, ok := templates[fieldErr.Tag()]

	if !ok {
		switch fieldErr.Kind() {
		case reflect.String:
			template, ok = lengthTemplates[fieldErr.Tag()]
		case reflect.Slice, reflect.Array, reflect.Map:
			template, ok = lengthTemplates[fieldErr.Tag()]
			template = strings.Replace(template, "characters", "items", 1)
		default:
			template, ok = sizeTemplates[fieldErr.Tag()]
		}
	}

	if !ok {
		return fieldErr.Field() + " is invalid"
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// message joins one sentence per failed field, in struct order.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	sentences := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		sentences = append(sentences, describe(fieldErr))
	}

	return strings.Join(sentences, "; ")
}
