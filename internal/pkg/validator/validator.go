package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		for _, r := range []string{"customer", "owner", "admin"} {
			if role == r {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("sport", func(fl validator.FieldLevel) bool {
		sport := fl.Field().String()
		for _, s := range []string{"tennis", "padel", "squash", "badminton", "basketball", "football", "volleyball", ""} {
			if sport == s {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("rental_unit", func(fl validator.FieldLevel) bool {
		unit := fl.Field().String()
		return unit == "hour" || unit == "day" || unit == ""
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "uuid":
			errors[field] = "Invalid UUID format"
		case "url":
			errors[field] = "Invalid URL format"
		case "role":
			errors[field] = "Invalid role. Must be: customer, owner, or admin"
		case "sport":
			errors[field] = "Invalid sport"
		case "rental_unit":
			errors[field] = "Invalid rental unit. Must be: hour or day"
		case "datetime":
			errors[field] = "Invalid datetime format (expected " + err.Param() + ")"
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
