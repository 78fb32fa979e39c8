package validation

import (
	"errors"
	"testing"

	"icc-dashboard/internal/models"
)

func validRegister() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@icc.test",
		Phone:           "07700 900123",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		UserType:        "cleaner",
	}
}

func TestRegisterRequest(t *testing.T) {
	req := validRegister()
	if err := Struct(&req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		field  string
		msg    string
	}{
		{"missing first name", func(r *models.RegisterRequest) { r.FirstName = "" }, "first_name", "First name is required"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "nope" }, "email", "Please enter a valid email address"},
		{"bad phone", func(r *models.RegisterRequest) { r.Phone = "12345" }, "phone", "Please enter a valid UK phone number"},
		{"weak password", func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "secret123", "secret123" }, "password", "Password must contain an uppercase letter"},
		{"mismatch", func(r *models.RegisterRequest) { r.ConfirmPassword = "Secret124" }, "confirm_password", "Passwords do not match"},
		{"bad type", func(r *models.RegisterRequest) { r.UserType = "admin" }, "user_type", "User type must be one of: cleaner customer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			tc.mutate(&req)
			err := Struct(&req)

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if verr.Field != tc.field || verr.Message != tc.msg {
				t.Fatalf("got %s/%q, want %s/%q", verr.Field, verr.Message, tc.field, tc.msg)
			}
		})
	}
}

func TestPasswordProblem(t *testing.T) {
	cases := map[string]string{
		"Short1":    "Password must be at least 8 characters long",
		"alllower1": "Password must contain an uppercase letter",
		"ALLUPPER1": "Password must contain a lowercase letter",
		"NoDigitsX": "Password must contain a number",
		"Good1Pass": "",
	}
	for in, want := range cases {
		if got := PasswordProblem(in); got != want {
			t.Errorf("PasswordProblem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsUKPhone(t *testing.T) {
	for _, ok := range []string{"07700900123", "+44 7700 900123", "020 7946 0958"} {
		if !IsUKPhone(ok) {
			t.Errorf("%q should be accepted", ok)
		}
	}
	for _, bad := range []string{"", "12345", "+1 555 0100 222", "07700-900123"} {
		if IsUKPhone(bad) {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestPaymentMethod(t *testing.T) {
	cases := []struct {
		name  string
		req   models.PaymentMethodRequest
		field string
	}{
		{"paypal ok", models.PaymentMethodRequest{Method: "paypal", PayPalEmail: "a@b.com"}, ""},
		{"paypal missing email", models.PaymentMethodRequest{Method: "paypal"}, "paypal_email"},
		{"bank ok", models.PaymentMethodRequest{Method: "bank_transfer", AccountName: "J Doe", AccountNumber: "12345678", SortCode: "12-34-56"}, ""},
		{"bank bad sort code", models.PaymentMethodRequest{Method: "bank_transfer", AccountName: "J Doe", AccountNumber: "12345678", SortCode: "1234"}, "sort_code"},
		{"bank short account", models.PaymentMethodRequest{Method: "bank_transfer", AccountName: "J Doe", AccountNumber: "1234", SortCode: "123456"}, "account_number"},
		{"stripe missing pm", models.PaymentMethodRequest{Method: "stripe"}, "stripe_payment_method_id"},
		{"unknown method", models.PaymentMethodRequest{Method: "cash"}, "method"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := PaymentMethod(&tc.req)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected error on %s, got %v", tc.field, err)
			}
		})
	}
}
