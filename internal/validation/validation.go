// Package validation checks employee form input before it may enter the store.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/locvowork/employee_directory/internal/domain"
)

// Form field keys, as used in Errors and on the wire.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldDepartment = "department"
	FieldRole       = "role"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldDepartment, FieldRole}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// messages is keyed by field, then by the rule that failed.
var messages = map[string]map[string]string{
	FieldFirstName:  {"nonblank": "First name is required"},
	FieldLastName:   {"nonblank": "Last name is required"},
	FieldEmail:      {"nonblank": "Email is required", "email_format": "Please enter a valid email address"},
	FieldDepartment: {"department": "Department is required"},
	FieldRole:       {"role": "Role is required"},
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"nonblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"email_format": func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		},
		"department": func(fl validator.FieldLevel) bool {
			return domain.Department(fl.Field().String()).Valid()
		},
		"role": func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// Validate checks every field of in and returns one message per invalid field. The result
// is empty when in may be saved.
func Validate(in domain.EmployeeInput) Errors {
	errs := Errors{}

	err := validate.Struct(in)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable with a non-struct argument.
		errs[FieldFirstName] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		errs[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return errs
}

func message(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return field + " is invalid"
}
