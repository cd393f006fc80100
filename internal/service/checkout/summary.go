package checkout

import (
	"skincare-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	taxRate               = decimal.RequireFromString("0.18")
	freeShippingThreshold = decimal.NewFromInt(2000)
)

// Summary is the price breakdown shown next to the wizard.
type Summary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	FreeShipping bool            `json:"freeShipping"`
	ItemCount    int             `json:"itemCount"`
}

// Summarize computes tax (18%, rounded to a whole amount) and shipping eligibility for cart.
func Summarize(cart domain.CartState) Summary {
	tax := cart.Total.Mul(taxRate).Round(0)
	return Summary{
		Subtotal:     cart.Total,
		Tax:          tax,
		GrandTotal:   cart.Total.Add(tax),
		FreeShipping: cart.Total.GreaterThan(freeShippingThreshold),
		ItemCount:    cart.ItemCount,
	}
}
