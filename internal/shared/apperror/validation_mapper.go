package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// department_id -> Department Id
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a gin binding failure into a validation error.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, e := range errs {
			field := formatFieldName(e.Field())
			switch e.Tag() {
			case "required":
				messages = append(messages, field+" is required.")
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters.", field, e.Param()))
			default:
				messages = append(messages, field+" is invalid.")
			}
		}
		return Validation(messages)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Validation([]string{fmt.Sprintf("%s must be a %s.", formatFieldName(typeErr.Field), typeErr.Type.Kind())})
	}

	return Validation([]string{"Request body must be valid JSON."})
}
