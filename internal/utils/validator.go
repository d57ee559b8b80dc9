// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("action_status", validateActionStatus)
	validate.RegisterValidation("quantity", validateQuantity)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateActionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "Not Required", "Duplicate":
		return true
	}
	return false
}

// quantity accepts a blank or a parsable non-negative decimal. The batch
// validator decides whether blank is allowed for a given row.
func validateQuantity(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "action_status":
		return "Action status must be blank, 'Not Required' or 'Duplicate'"
	case "quantity":
		return e.Field() + " must be a non-negative number"
	default:
		return e.Field() + " is invalid"
	}
}
