package middleware

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("archivename", func(fl validator.FieldLevel) bool {
			return ValidateArchiveName(fl.Field().String()) == nil
		})
	})
	return validate
}

// ValidateStruct validates v and folds field errors into one validation error.
func ValidateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return saves.Validation("invalid request: %v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
		fields[fe.Field()] = fe.Tag()
	}
	verr := saves.Validation("%s", strings.Join(msgs, "; "))
	verr.Details = map[string]any{"fields": fields}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "archivename":
		return fmt.Sprintf("%s is not a valid archive name", fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

// ValidateArchiveName rejects anything that could leave the storage root.
func ValidateArchiveName(name string) error {
	if name == "" {
		return saves.Validation("archive name cannot be empty")
	}
	if len(name) > 255 {
		return saves.Validation("archive name too long")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return saves.Validation("invalid archive name: %q", name)
	}
	if strings.ContainsRune(name, 0) {
		return saves.Validation("invalid characters in archive name")
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
