package httpx

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks a request payload against its validate tags and
// returns one human-readable message per violated rule.
func ValidateStruct(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var messages []string
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		fieldName := strings.ToLower(field[:1]) + field[1:]

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldName)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", fieldName)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", fieldName, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldName, err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", fieldName)
		}

		messages = append(messages, message)
	}

	return messages
}
