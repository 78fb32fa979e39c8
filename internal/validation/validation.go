package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"icc-dashboard/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	ukPhoneRe  = regexp.MustCompile(`^(?:\+44\s?|0)(?:\d\s?){9,10}$`)
	sortCodeRe = regexp.MustCompile(`^\d{2}-?\d{2}-?\d{2}$`)

	once     sync.Once
	validate *validator.Validate
)

// Error is a form validation failure. Message is suitable for a toast.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := validate.RegisterValidation("ukphone", ukPhoneField); err != nil {
			panic(err)
		}
		if err := validate.RegisterValidation("password", passwordField); err != nil {
			panic(err)
		}
	})
	return validate
}

func ukPhoneField(fl validator.FieldLevel) bool {
	return IsUKPhone(fl.Field().String())
}

func passwordField(fl validator.FieldLevel) bool {
	return PasswordProblem(fl.Field().String()) == ""
}

// IsUKPhone accepts +44 or 0 prefixed UK numbers, spaces allowed.
func IsUKPhone(s string) bool {
	return ukPhoneRe.MatchString(strings.TrimSpace(s))
}

// PasswordProblem returns what is wrong with pw, or "" when it is acceptable:
// at least 8 characters with an upper-case letter, a lower-case letter and a
// digit.
func PasswordProblem(pw string) string {
	if len(pw) < 8 {
		return "Password must be at least 8 characters long"
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return "Password must contain an uppercase letter"
	case !lower:
		return "Password must contain a lowercase letter"
	case !digit:
		return "Password must contain a number"
	}
	return ""
}

// Struct validates v against its `validate` tags and returns the first
// failure as an *Error.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &Error{Field: fe.Field(), Message: message(fe)}
}

func label(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return "Field"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "Please enter a valid email address"
	case "ukphone":
		return "Please enter a valid UK phone number"
	case "password":
		return PasswordProblem(fmt.Sprint(fe.Value()))
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", name, fe.Param())
	case "numeric":
		return name + " must be a number"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "datetime":
		return name + " must be a date (YYYY-MM-DD)"
	default:
		return name + " is invalid"
	}
}

// PaymentMethod checks the fields the chosen method needs on top of the
// struct tags.
func PaymentMethod(req *models.PaymentMethodRequest) error {
	if err := Struct(req); err != nil {
		return err
	}
	switch req.Method {
	case models.MethodPayPal:
		if req.PayPalEmail == "" {
			return &Error{Field: "paypal_email", Message: "PayPal email is required"}
		}
	case models.MethodBankTransfer:
		if req.AccountName == "" {
			return &Error{Field: "account_name", Message: "Account name is required"}
		}
		if req.AccountNumber == "" {
			return &Error{Field: "account_number", Message: "Account number is required"}
		}
		if !sortCodeRe.MatchString(req.SortCode) {
			return &Error{Field: "sort_code", Message: "Sort code must be six digits (e.g. 12-34-56)"}
		}
	case models.MethodStripe:
		if req.StripePMID == "" {
			return &Error{Field: "stripe_payment_method_id", Message: "Card details are required"}
		}
	}
	return nil
}
