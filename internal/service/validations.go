package service

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// String must contain something besides whitespace
		validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// Length in bytes, not runes. bcrypt rejects passwords over 72 bytes
		validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= limit
		})
	})
}

// validateStruct runs validator and folds field errors into one error
// wrapping errorvalues.ErrValidation.
func validateStruct(s any) error {
	InitValidator()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		err = errorvalues.ErrValidation
		for _, fieldErr := range validationErrors {
			err = errors.Join(err, fieldErr)
		}
		return err
	}
	return errors.New("validation unexpected error: " + err.Error())
}

func trimItems(items []string) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, strings.TrimSpace(it))
	}
	return res
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
