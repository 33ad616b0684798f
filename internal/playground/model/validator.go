package model

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Custom tags understood by the playground validator.
const (
	tagUserStatus     = "user_status"
	tagStrongPassword = "strong_password"
)

const minPasswordLength = 12

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator with the playground rules
// registered. Errors name fields by their json or query tag.
func GetValidator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(requestFieldName)
		_ = v.RegisterValidation(tagUserStatus, func(fl validator.FieldLevel) bool {
			return IsValidStatus(fl.Field().String())
		})
		_ = v.RegisterValidation(tagStrongPassword, func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func requestFieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// IsStrongPassword follows the security checklist: at least 12 characters
// mixing upper case, lower case, digits and symbols.
func IsStrongPassword(pwd string) bool {
	if len(pwd) < minPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// FormatValidationError converts validator errors to ErrorDetail, reporting
// the first failing field.
func FormatValidationError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ErrorDetail{Code: "bad_request", Message: err.Error()}
	}

	e := validationErrors[0]
	var msg string
	switch e.Tag() {
	case tagUserStatus:
		msg = e.Field() + " must be one of " + strings.Join(ValidStatuses, ", ")
	case tagStrongPassword:
		msg = e.Field() + " must be at least 12 characters mixing upper case, lower case, digits and special characters"
	case "required":
		msg = e.Field() + " is required"
	default:
		msg = "Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
	}
	return &ErrorDetail{Code: "bad_request", Message: msg}
}
