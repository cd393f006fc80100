package httpserver

import (
	"errors"
	"net/http"
	"testing"

	"skincare-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shippingBody = `{"fullName":"Asha Rao","email":"asha@example.com","phone":"9876543210","address":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"}`

type checkoutBody struct {
	Step     string            `json:"step"`
	Errors   map[string]string `json:"errors"`
	Order    *domain.PlacedOrder
	Redirect int64 `json:"redirectAfterMs"`
	Summary  struct {
		ItemCount    int  `json:"itemCount"`
		FreeShipping bool `json:"freeShipping"`
	} `json:"summary"`
}

func TestCheckout_EmptyCartConflict(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/checkout", "", env.session(t))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	sid := env.session(t)
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"p-2"}`, sid)
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"p-2"}`, sid)

	rec := env.do(t, http.MethodPost, "/checkout", `{"id":"u-7","name":"Asha Rao"}`, sid)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[checkoutBody](t, rec)
	assert.Equal(t, "shipping", body.Step)
	assert.Equal(t, 2, body.Summary.ItemCount)
	assert.True(t, body.Summary.FreeShipping)

	rec = env.do(t, http.MethodPost, "/checkout/next", "", sid)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "blank shipping")

	env.do(t, http.MethodPatch, "/checkout/draft", shippingBody, sid)
	body = decode[checkoutBody](t, env.do(t, http.MethodPost, "/checkout/next", "", sid))
	assert.Equal(t, "payment", body.Step)

	env.do(t, http.MethodPatch, "/checkout/draft", `{"paymentMethod":"cod"}`, sid)
	body = decode[checkoutBody](t, env.do(t, http.MethodPost, "/checkout/next", "", sid))
	assert.Equal(t, "review", body.Step)

	rec = env.do(t, http.MethodPost, "/checkout/place", "", sid)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decode[checkoutBody](t, rec)
	assert.Equal(t, "placed", body.Step)
	assert.Equal(t, int64(3000), body.Redirect)
	require.Len(t, env.orders.orders, 1)
	assert.Equal(t, "Cash on Delivery", env.orders.orders[0].PaymentMethod)
	assert.Equal(t, "u-7", env.orders.orders[0].UserID)

	cart := decode[domain.CartState](t, env.do(t, http.MethodGet, "/cart", "", sid))
	assert.True(t, cart.IsEmpty(), "cart cleared after placement")
}

func TestCheckout_FieldErrorsInPayment(t *testing.T) {
	env := newTestEnv(t)
	sid := env.session(t)
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"p-1"}`, sid)
	env.do(t, http.MethodPost, "/checkout", "", sid)
	env.do(t, http.MethodPatch, "/checkout/draft", shippingBody, sid)
	env.do(t, http.MethodPost, "/checkout/next", "", sid)
	env.do(t, http.MethodPatch, "/checkout/draft", `{"paymentMethod":"upi"}`, sid)

	rec := env.do(t, http.MethodPost, "/checkout/next", "", sid)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, rec)
	assert.NotEmpty(t, resp.Fields["upiId"])

	body := decode[checkoutBody](t, env.do(t, http.MethodPost, "/checkout/back", "", sid))
	assert.Equal(t, "shipping", body.Step)
}

func TestCheckout_PlaceFailureKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	sid := env.session(t)
	env.do(t, http.MethodPost, "/cart/items", `{"productId":"p-1"}`, sid)
	env.do(t, http.MethodPost, "/checkout", "", sid)
	env.do(t, http.MethodPatch, "/checkout/draft", shippingBody, sid)
	env.do(t, http.MethodPost, "/checkout/next", "", sid)
	env.do(t, http.MethodPatch, "/checkout/draft", `{"paymentMethod":"netbanking"}`, sid)
	env.do(t, http.MethodPost, "/checkout/next", "", sid)

	env.orders.err = errors.New("connection refused")
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodPost, "/checkout/place", "", sid).Code)

	body := decode[checkoutBody](t, env.do(t, http.MethodGet, "/checkout", "", sid))
	assert.Equal(t, "review", body.Step)
	summary := decode[struct {
		ItemCount int `json:"itemCount"`
	}](t, env.do(t, http.MethodGet, "/checkout/summary", "", sid))
	assert.Equal(t, 1, summary.ItemCount, "cart untouched")
}
