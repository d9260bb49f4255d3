package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks the struct's validator tags and returns a
// field -> message map, or nil when everything passes.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errs[field] = "is required"
		case "max":
			errs[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			errs[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return errs
}
