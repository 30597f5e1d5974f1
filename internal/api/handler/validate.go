package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
)

var validate = validator.New()

// decodeAndValidate reads a JSON body into dst and checks its struct tags
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body")
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return apperror.Validation(describe(validationErrors))
		}
		return apperror.Validation(err.Error())
	}
	return nil
}

func describe(validationErrors validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			messages = append(messages, field+": field is required")
		case "email":
			messages = append(messages, field+": invalid email format")
		case "gt":
			messages = append(messages, field+": must be greater than "+e.Param())
		default:
			messages = append(messages, field+": validation failed on "+e.Tag())
		}
	}
	sort.Strings(messages)
	return strings.Join(messages, "; ")
}
