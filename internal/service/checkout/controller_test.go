package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"skincare-storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCart struct {
	state   domain.CartState
	cleared int
}

func (s *stubCart) State() domain.CartState { return s.state.Clone() }

func (s *stubCart) Clear(context.Context) domain.CartState {
	s.cleared++
	s.state = domain.EmptyCart()
	return s.state
}

type stubOrders struct {
	last  *domain.Order
	calls int
	resp  *domain.PlacedOrder
	err   error
}

func (s *stubOrders) CreateOrder(_ context.Context, order domain.Order) (*domain.PlacedOrder, error) {
	s.calls++
	s.last = &order
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func filledCart() *stubCart {
	return &stubCart{state: domain.NewCartState([]domain.CartItem{
		{ID: "a", Name: "Serum", Price: decimal.NewFromInt(1200), Quantity: 2},
		{ID: "b", Name: "Toner", Price: decimal.NewFromInt(450), Quantity: 1},
	})}
}

func shippingUpdate() DraftUpdate {
	s := func(v string) *string { return &v }
	return DraftUpdate{
		FullName: s("Asha Rao"),
		Email:    s("asha@example.com"),
		Phone:    s("9876543210"),
		Address:  s("12 MG Road"),
		City:     s("Bengaluru"),
		State:    s("Karnataka"),
		Pincode:  s("560001"),
	}
}

func strp(v string) *string { return &v }

func toReview(t *testing.T, c *Controller, payment DraftUpdate) {
	t.Helper()
	_, err := c.Begin(domain.Customer{ID: "u1", Name: "Asha Rao", Email: "asha@example.com"})
	require.NoError(t, err)
	_, err = c.UpdateDraft(shippingUpdate())
	require.NoError(t, err)
	_, err = c.Next()
	require.NoError(t, err)
	_, err = c.UpdateDraft(payment)
	require.NoError(t, err)
	_, err = c.Next()
	require.NoError(t, err)
	require.Equal(t, StepReview, c.Step())
}

func TestBeginPrefillsDraft(t *testing.T) {
	c := New(filledCart(), &stubOrders{}, 0, nil)

	view, err := c.Begin(domain.Customer{Name: "Asha Rao", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, StepShipping, view.Step)
	assert.Equal(t, "Asha Rao", view.Draft.FullName)
	assert.Equal(t, "asha@example.com", view.Draft.Email)
	assert.Equal(t, DefaultCountry, view.Draft.Country)
	assert.Equal(t, MethodCard, view.Draft.PaymentMethod)
	assert.Empty(t, view.Errors)
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	c := New(&stubCart{state: domain.EmptyCart()}, &stubOrders{}, 0, nil)

	view, err := c.Begin(domain.Customer{})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, StepNone, view.Step)
}

func TestNextBlocksOnMissingPincode(t *testing.T) {
	c := New(filledCart(), &stubOrders{}, 0, nil)
	_, err := c.Begin(domain.Customer{})
	require.NoError(t, err)
	update := shippingUpdate()
	update.Pincode = strp("   ")
	_, err = c.UpdateDraft(update)
	require.NoError(t, err)

	view, err := c.Next()
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StepShipping, view.Step)
	assert.Equal(t, "Pincode is required", view.Errors["pincode"])
	assert.Len(t, view.Errors, 1)
}

func TestUpdateDraftClearsEditedFieldErrors(t *testing.T) {
	c := New(filledCart(), &stubOrders{}, 0, nil)
	_, err := c.Begin(domain.Customer{})
	require.NoError(t, err)
	_, err = c.Next()
	require.Error(t, err)

	view, err := c.UpdateDraft(DraftUpdate{City: strp("Pune")})
	require.NoError(t, err)
	assert.NotContains(t, view.Errors, "city")
	assert.Contains(t, view.Errors, "pincode")
}

func TestPaymentValidationIsMethodSpecific(t *testing.T) {
	cases := []struct {
		name    string
		update  DraftUpdate
		missing []string
	}{
		{"card needs all card fields", DraftUpdate{PaymentMethod: strp(MethodCard)}, []string{"cardNumber", "expiryDate", "cvv", "cardName"}},
		{"upi needs an id", DraftUpdate{PaymentMethod: strp(MethodUPI)}, []string{"upiId"}},
		{"netbanking needs nothing", DraftUpdate{PaymentMethod: strp(MethodNetBanking)}, nil},
		{"cod needs nothing", DraftUpdate{PaymentMethod: strp(MethodCOD)}, nil},
		{"unknown method", DraftUpdate{PaymentMethod: strp("cheque")}, []string{"paymentMethod"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(filledCart(), &stubOrders{}, 0, nil)
			_, err := c.Begin(domain.Customer{})
			require.NoError(t, err)
			_, err = c.UpdateDraft(shippingUpdate())
			require.NoError(t, err)
			_, err = c.Next()
			require.NoError(t, err)
			_, err = c.UpdateDraft(tc.update)
			require.NoError(t, err)

			view, err := c.Next()
			if len(tc.missing) == 0 {
				require.NoError(t, err)
				assert.Equal(t, StepReview, view.Step)
				return
			}
			require.Error(t, err)
			assert.Equal(t, StepPayment, view.Step)
			assert.Len(t, view.Errors, len(tc.missing))
			for _, field := range tc.missing {
				assert.Contains(t, view.Errors, field)
			}
		})
	}
}

func TestBackNavigation(t *testing.T) {
	c := New(filledCart(), &stubOrders{}, 0, nil)
	_, err := c.Back()
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	toReview(t, c, DraftUpdate{PaymentMethod: strp(MethodCOD)})

	view, err := c.Back()
	require.NoError(t, err)
	assert.Equal(t, StepPayment, view.Step)
	view, err = c.Back()
	require.NoError(t, err)
	assert.Equal(t, StepShipping, view.Step)
	_, err = c.Back()
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Karnataka", c.View().Draft.State)
}

func TestPlaceOnlyFromReview(t *testing.T) {
	orders := &stubOrders{}
	c := New(filledCart(), orders, 0, nil)
	_, err := c.Begin(domain.Customer{})
	require.NoError(t, err)

	_, err = c.Place(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, orders.calls)
}

func TestPlaceSubmitsOrderAndClearsCart(t *testing.T) {
	cart := filledCart()
	orders := &stubOrders{resp: &domain.PlacedOrder{OrderID: "ord-1", Status: "pending"}}
	c := New(cart, orders, 5*time.Second, nil)
	toReview(t, c, DraftUpdate{PaymentMethod: strp(MethodUPI), UPIID: strp("asha@upi"), Instructions: strp("Leave at door")})

	view, err := c.Place(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepPlaced, view.Step)
	require.NotNil(t, view.Order)
	assert.Equal(t, "ord-1", view.Order.OrderID)
	assert.Equal(t, int64(5000), view.RedirectAfterMS)
	assert.Equal(t, 1, cart.cleared)
	assert.True(t, cart.state.IsEmpty())

	require.NotNil(t, orders.last)
	sent := orders.last
	assert.Equal(t, "u1", sent.UserID)
	assert.Equal(t, "Asha Rao", sent.CustomerName)
	assert.Equal(t, "9876543210", sent.CustomerPhone)
	assert.Equal(t, "UPI", sent.PaymentMethod)
	assert.Equal(t, "Leave at door", sent.Instructions)
	assert.True(t, sent.Total.Equal(decimal.NewFromInt(2850)))
	assert.Len(t, sent.Items, 2)
	assert.Equal(t, domain.ShippingAddress{
		Street: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001", Country: "India",
	}, sent.ShippingAddress)
}

func TestPlaceFailureStaysInReview(t *testing.T) {
	cart := filledCart()
	orders := &stubOrders{err: errors.New("order api returned 500")}
	c := New(cart, orders, 0, nil)
	toReview(t, c, DraftUpdate{PaymentMethod: strp(MethodNetBanking)})

	view, err := c.Place(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepReview, view.Step)
	assert.Nil(t, view.Order)
	assert.Zero(t, cart.cleared)
	assert.Equal(t, 3, cart.state.ItemCount)
}

func TestPlacedIsTerminal(t *testing.T) {
	cart := filledCart()
	c := New(cart, &stubOrders{resp: &domain.PlacedOrder{OrderID: "ord-2"}}, 0, nil)
	toReview(t, c, DraftUpdate{PaymentMethod: strp(MethodCOD)})
	_, err := c.Place(context.Background())
	require.NoError(t, err)

	_, err = c.Next()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = c.Back()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = c.UpdateDraft(DraftUpdate{City: strp("Delhi")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	view, err := c.Begin(domain.Customer{})
	require.NoError(t, err)
	assert.Equal(t, StepPlaced, view.Step)
	assert.Equal(t, DefaultRedirectAfter.Milliseconds(), view.RedirectAfterMS)
}

func TestSummary(t *testing.T) {
	c := New(filledCart(), &stubOrders{}, 0, nil)
	sum := c.Summary()

	assert.True(t, sum.Subtotal.Equal(decimal.NewFromInt(2850)))
	assert.True(t, sum.Tax.Equal(decimal.NewFromInt(513)))
	assert.True(t, sum.GrandTotal.Equal(decimal.NewFromInt(3363)))
	assert.True(t, sum.FreeShipping)
	assert.Equal(t, 3, sum.ItemCount)
}

func TestSummaryRoundsTaxAndThreshold(t *testing.T) {
	sum := Summarize(domain.NewCartState([]domain.CartItem{{ID: "x", Price: decimal.NewFromInt(2000), Quantity: 1}}))
	assert.False(t, sum.FreeShipping)

	sum = Summarize(domain.NewCartState([]domain.CartItem{{ID: "x", Price: decimal.NewFromInt(99), Quantity: 1}}))
	// 99 * 0.18 = 17.82
	assert.True(t, sum.Tax.Equal(decimal.NewFromInt(18)))
}

func TestStepJSON(t *testing.T) {
	raw, err := StepPayment.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"payment"`, string(raw))
	assert.Equal(t, "step(9)", Step(9).String())
}
