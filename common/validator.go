package common

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance. It caches struct metadata,
// so one instance is reused everywhere.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates payload against its `validate` tags and returns
// the first failing field in a readable form.
func ValidateStruct(payload interface{}) *AppError {
	if err := Validator().Struct(payload); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return NewAppError(CodeInvalidInput, "Invalid "+fe.Field(), err)
		}
		return NewAppError(CodeInvalidInput, "Invalid input", err)
	}
	return nil
}
