package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skincare-storefront/internal/domain"

	"go.uber.org/zap"
)

// Step is a position in the checkout wizard.
type Step int

const (
	StepNone Step = iota
	StepShipping
	StepPayment
	StepReview
	StepPlaced
)

var stepNames = map[Step]string{
	StepNone:     "none",
	StepShipping: "shipping",
	StepPayment:  "payment",
	StepReview:   "review",
	StepPlaced:   "placed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DefaultRedirectAfter is how long the placed confirmation is shown before leaving checkout.
const DefaultRedirectAfter = 3 * time.Second

type cartStore interface {
	State() domain.CartState
	Clear(ctx context.Context) domain.CartState
}

// OrderCreator submits orders to the order API.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order domain.Order) (*domain.PlacedOrder, error)
}

// View is the wizard state handed to the rendering layer.
type View struct {
	Step            Step                `json:"step"`
	Draft           Draft               `json:"draft"`
	Errors          FieldErrors         `json:"errors"`
	Order           *domain.PlacedOrder `json:"order,omitempty"`
	RedirectAfterMS int64               `json:"redirectAfterMs,omitempty"`
}

// Controller drives one shopper through shipping, payment and review to a
// placed order. It is not safe for concurrent use.
type Controller struct {
	cart          cartStore
	orders        OrderCreator
	logger        *zap.Logger
	redirectAfter time.Duration

	step     Step
	customer domain.Customer
	draft    Draft
	errs     FieldErrors
	placed   *domain.PlacedOrder
}

// New returns a Controller that has not entered checkout yet.
func New(cart cartStore, orders OrderCreator, redirectAfter time.Duration, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if redirectAfter <= 0 {
		redirectAfter = DefaultRedirectAfter
	}
	return &Controller{
		cart:          cart,
		orders:        orders,
		logger:        logger,
		redirectAfter: redirectAfter,
		errs:          FieldErrors{},
	}
}

// Begin enters checkout with a fresh draft pre-filled from customer.
// An empty cart yields domain.ErrEmptyCart unless an order was just placed,
// in which case the placed view is kept.
func (c *Controller) Begin(customer domain.Customer) (View, error) {
	if c.cart.State().IsEmpty() {
		if c.step == StepPlaced {
			return c.View(), nil
		}
		c.reset()
		return c.View(), domain.ErrEmptyCart
	}
	c.reset()
	c.customer = customer
	c.draft.FullName = customer.Name
	c.draft.Email = customer.Email
	c.step = StepShipping
	return c.View(), nil
}

// UpdateDraft applies field edits and clears the errors of the edited fields.
func (c *Controller) UpdateDraft(update DraftUpdate) (View, error) {
	if c.step == StepNone || c.step == StepPlaced {
		return c.View(), fmt.Errorf("edit draft at %s: %w", c.step, domain.ErrInvalidTransition)
	}
	for _, field := range update.apply(&c.draft) {
		delete(c.errs, field)
	}
	return c.View(), nil
}

// Next validates the current step and advances. Validation failures are
// returned as FieldErrors and leave the step unchanged.
func (c *Controller) Next() (View, error) {
	var errs FieldErrors
	var next Step
	switch c.step {
	case StepShipping:
		errs, next = validateShipping(c.draft), StepPayment
	case StepPayment:
		errs, next = validatePayment(c.draft), StepReview
	default:
		return c.View(), fmt.Errorf("next from %s: %w", c.step, domain.ErrInvalidTransition)
	}
	c.errs = errs
	if len(errs) > 0 {
		return c.View(), errs
	}
	c.step = next
	return c.View(), nil
}

// Back returns to the immediately preceding step.
func (c *Controller) Back() (View, error) {
	switch c.step {
	case StepPayment:
		c.step = StepShipping
	case StepReview:
		c.step = StepPayment
	default:
		return c.View(), fmt.Errorf("back from %s: %w", c.step, domain.ErrInvalidTransition)
	}
	c.errs = FieldErrors{}
	return c.View(), nil
}

// Place submits the order built from the current cart. The cart is cleared
// and the flow becomes Placed only after the order API accepts it.
func (c *Controller) Place(ctx context.Context) (View, error) {
	if c.step != StepReview {
		return c.View(), fmt.Errorf("place from %s: %w", c.step, domain.ErrInvalidTransition)
	}
	if errs := validatePayment(c.draft); len(errs) > 0 {
		c.errs = errs
		return c.View(), errs
	}
	cart := c.cart.State()
	if cart.IsEmpty() {
		return c.View(), domain.ErrEmptyCart
	}

	order := c.buildOrder(cart)
	placed, err := c.orders.CreateOrder(ctx, order)
	if err != nil {
		c.logger.Error("order submission failed", zap.Error(err), zap.Int("items", len(order.Items)))
		return c.View(), fmt.Errorf("place order: %w", err)
	}
	if placed == nil {
		placed = &domain.PlacedOrder{}
	}
	c.cart.Clear(ctx)
	c.placed = placed
	c.step = StepPlaced
	c.errs = FieldErrors{}
	c.logger.Info("order placed", zap.String("order_id", placed.OrderID), zap.String("total", order.Total.String()))
	return c.View(), nil
}

// Summary returns the price breakdown of the current cart.
func (c *Controller) Summary() Summary {
	return Summarize(c.cart.State())
}

// Step reports the current wizard step.
func (c *Controller) Step() Step {
	return c.step
}

// View returns a copy of the wizard state.
func (c *Controller) View() View {
	errs := make(FieldErrors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = v
	}
	v := View{Step: c.step, Draft: c.draft, Errors: errs, Order: c.placed}
	if c.step == StepPlaced {
		v.RedirectAfterMS = c.redirectAfter.Milliseconds()
	}
	return v
}

func (c *Controller) buildOrder(cart domain.CartState) domain.Order {
	return domain.Order{
		UserID:        c.customer.ID,
		CustomerName:  c.draft.FullName,
		CustomerEmail: c.draft.Email,
		CustomerPhone: c.draft.Phone,
		Items:         cart.Items,
		Total:         cart.Total,
		ShippingAddress: domain.ShippingAddress{
			Street:  c.draft.Address,
			City:    c.draft.City,
			State:   c.draft.State,
			Pincode: c.draft.Pincode,
			Country: c.draft.Country,
		},
		PaymentMethod: PaymentLabel(c.draft.PaymentMethod),
		Instructions:  c.draft.Instructions,
	}
}

func (c *Controller) reset() {
	c.step = StepNone
	c.customer = domain.Customer{}
	c.draft = Draft{Country: DefaultCountry, PaymentMethod: MethodCard}
	c.errs = FieldErrors{}
	c.placed = nil
}
