package models

const (
	MethodPayPal       = "paypal"
	MethodBankTransfer = "bank_transfer"
	MethodStripe       = "stripe"
)

// PaymentMethod is discriminated only by Method; the other fields are
// populated according to it.
type PaymentMethod struct {
	ID            int    `json:"id"`
	Method        string `json:"method"`
	IsDefault     bool   `json:"is_default"`
	PayPalEmail   string `json:"paypal_email,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	SortCode      string `json:"sort_code,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	CardBrand     string `json:"card_brand,omitempty"`
	CardLast4     string `json:"card_last4,omitempty"`
	StripePMID    string `json:"stripe_payment_method_id,omitempty"`
}

// PaymentMethodRequest creates a payment method. Method-specific fields are
// checked in validation.PaymentMethod.
type PaymentMethodRequest struct {
	Method        string `json:"method" validate:"required,oneof=paypal bank_transfer stripe"`
	IsDefault     bool   `json:"is_default"`
	PayPalEmail   string `json:"paypal_email,omitempty" validate:"omitempty,email"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty" validate:"omitempty,len=8,numeric"`
	SortCode      string `json:"sort_code,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	StripePMID    string `json:"stripe_payment_method_id,omitempty"`
}
