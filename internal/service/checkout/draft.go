package checkout

import (
	"sort"
	"strings"
)

// Payment methods accepted at the payment step.
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetBanking = "netbanking"
	MethodCOD        = "cod"
)

// DefaultCountry is pre-filled on every new draft.
const DefaultCountry = "India"

// Draft is the form state collected across the wizard steps.
type Draft struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Country  string `json:"country"`

	PaymentMethod string `json:"paymentMethod"`
	CardNumber    string `json:"cardNumber"`
	ExpiryDate    string `json:"expiryDate"`
	CVV           string `json:"cvv"`
	CardName      string `json:"cardName"`
	UPIID         string `json:"upiId"`

	Instructions string `json:"instructions"`
}

// DraftUpdate is a partial edit of a Draft; nil fields are left untouched.
type DraftUpdate struct {
	FullName      *string `json:"fullName,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Pincode       *string `json:"pincode,omitempty"`
	Country       *string `json:"country,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	CardNumber    *string `json:"cardNumber,omitempty"`
	ExpiryDate    *string `json:"expiryDate,omitempty"`
	CVV           *string `json:"cvv,omitempty"`
	CardName      *string `json:"cardName,omitempty"`
	UPIID         *string `json:"upiId,omitempty"`
	Instructions  *string `json:"instructions,omitempty"`
}

// apply copies the set fields into d and returns the names of the edited fields.
func (u DraftUpdate) apply(d *Draft) []string {
	fields := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"fullName", u.FullName, &d.FullName},
		{"email", u.Email, &d.Email},
		{"phone", u.Phone, &d.Phone},
		{"address", u.Address, &d.Address},
		{"city", u.City, &d.City},
		{"state", u.State, &d.State},
		{"pincode", u.Pincode, &d.Pincode},
		{"country", u.Country, &d.Country},
		{"paymentMethod", u.PaymentMethod, &d.PaymentMethod},
		{"cardNumber", u.CardNumber, &d.CardNumber},
		{"expiryDate", u.ExpiryDate, &d.ExpiryDate},
		{"cvv", u.CVV, &d.CVV},
		{"cardName", u.CardName, &d.CardName},
		{"upiId", u.UPIID, &d.UPIID},
		{"instructions", u.Instructions, &d.Instructions},
	}
	var edited []string
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		*f.dst = *f.src
		edited = append(edited, f.name)
	}
	return edited
}

// FieldErrors maps a draft field name to a user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid checkout fields: " + strings.Join(names, ", ")
}

func required(errs FieldErrors, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

func validateShipping(d Draft) FieldErrors {
	errs := FieldErrors{}
	required(errs, "fullName", d.FullName, "Full name is required")
	required(errs, "email", d.Email, "Email is required")
	required(errs, "phone", d.Phone, "Phone number is required")
	required(errs, "address", d.Address, "Address is required")
	required(errs, "city", d.City, "City is required")
	required(errs, "state", d.State, "State is required")
	required(errs, "pincode", d.Pincode, "Pincode is required")
	return errs
}

func validatePayment(d Draft) FieldErrors {
	errs := FieldErrors{}
	switch d.PaymentMethod {
	case MethodCard:
		required(errs, "cardNumber", d.CardNumber, "Card number is required")
		required(errs, "expiryDate", d.ExpiryDate, "Expiry date is required")
		required(errs, "cvv", d.CVV, "CVV is required")
		required(errs, "cardName", d.CardName, "Cardholder name is required")
	case MethodUPI:
		required(errs, "upiId", d.UPIID, "UPI ID is required")
	case MethodNetBanking, MethodCOD:
	default:
		errs["paymentMethod"] = "Select a payment method"
	}
	return errs
}

// PaymentLabel is the order-facing name of a payment method.
func PaymentLabel(method string) string {
	switch method {
	case MethodCard:
		return "Credit Card"
	case MethodUPI:
		return "UPI"
	case MethodCOD:
		return "Cash on Delivery"
	default:
		return "Net Banking"
	}
}
