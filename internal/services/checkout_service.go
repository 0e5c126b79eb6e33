package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/validate"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	ErrOrderCreate      = errors.New("order could not be created")
)

const orderFailedFallback = "Failed to process order. Please try again."

// ValidationError lists the form fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// OrderRejectedError carries a message written for the shopper. Stores return it
// for refusals the shopper can act on; any other store error is shown as the
// generic failure text and only logged in full.
type OrderRejectedError struct {
	Message string
}

func (e *OrderRejectedError) Error() string { return e.Message }

func shopperMessage(err error) string {
	var rej *OrderRejectedError
	if errors.As(err, &rej) && strings.TrimSpace(rej.Message) != "" {
		return rej.Message
	}
	return orderFailedFallback
}

// OrderStore is the order persistence collaborator.
type OrderStore interface {
	Create(ctx context.Context, o domain.NewOrder) (int64, error)
	ListNewest(ctx context.Context) ([]domain.Order, error)
}

type CheckoutState string

const (
	CheckoutForm       CheckoutState = "form"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSuccess    CheckoutState = "success"
	// CheckoutFailed accepts a new submission exactly like CheckoutForm.
	CheckoutFailed CheckoutState = "failed"
)

type checkoutState struct {
	state       CheckoutState
	form        domain.ShippingForm
	lastErr     string
	orderID     int64
	succeededAt time.Time
}

func (c checkoutState) current() CheckoutState {
	if c.state == "" {
		return CheckoutForm
	}
	return c.state
}

type CheckoutView struct {
	State           CheckoutState       `json:"state"`
	Form            domain.ShippingForm `json:"form"`
	Error           string              `json:"error,omitempty"`
	Items           []domain.CartLine   `json:"items"`
	Totals          Totals              `json:"totals"`
	OrderID         int64               `json:"orderId,omitempty"`
	RedirectTo      string              `json:"redirectTo,omitempty"`
	RedirectAfterMs int64               `json:"redirectAfterMs,omitempty"`
}

type CheckoutService struct {
	Orders OrderStore
	// Timeout bounds the create call; zero means no bound.
	Timeout time.Duration
	// RedirectDelay is how long the success state lasts before checkout resets.
	RedirectDelay time.Duration
	Now           func() time.Time
}

func NewCheckoutService(orders OrderStore, timeout, redirectDelay time.Duration) *CheckoutService {
	return &CheckoutService{Orders: orders, Timeout: timeout, RedirectDelay: redirectDelay, Now: time.Now}
}

func (s *CheckoutService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// expire resets a success that has outlived its redirect delay. Caller holds sess.mu.
func (s *CheckoutService) expire(sess *Session) {
	c := sess.checkout
	if c.current() == CheckoutSuccess && !s.now().Before(c.succeededAt.Add(s.RedirectDelay)) {
		sess.checkout = checkoutState{state: CheckoutForm}
	}
}

// view builds the response. Caller holds sess.mu.
func (s *CheckoutService) view(sess *Session) CheckoutView {
	c := sess.checkout
	lines := sess.cart.Lines()
	v := CheckoutView{
		State:  c.current(),
		Form:   c.form,
		Error:  c.lastErr,
		Items:  lines,
		Totals: ComputeTotals(lines),
	}
	if v.State == CheckoutSuccess {
		v.OrderID = c.orderID
		v.RedirectTo = "/"
		left := c.succeededAt.Add(s.RedirectDelay).Sub(s.now())
		if left < 0 {
			left = 0
		}
		v.RedirectAfterMs = left.Milliseconds()
	}
	return v
}

// View returns the checkout surface, or ErrEmptyCart when there is nothing to check out.
func (s *CheckoutService) View(sess *Session) (CheckoutView, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.expire(sess)
	if len(sess.cart.lines) == 0 && sess.checkout.current() != CheckoutSuccess {
		return CheckoutView{}, ErrEmptyCart
	}
	return s.view(sess), nil
}

// Submit turns the cart into an order. Form values are kept on every outcome so a
// failed attempt can be retried without re-typing. Only one submission per session
// may be outstanding.
func (s *CheckoutService) Submit(ctx context.Context, sess *Session, form domain.ShippingForm) (CheckoutView, error) {
	sess.mu.Lock()
	s.expire(sess)
	if sess.checkout.current() == CheckoutSubmitting {
		v := s.view(sess)
		sess.mu.Unlock()
		return v, ErrCheckoutInFlight
	}
	if len(sess.cart.lines) == 0 {
		sess.mu.Unlock()
		return CheckoutView{}, ErrEmptyCart
	}
	sess.checkout.form = form
	if bad := validate.ShippingForm(form); len(bad) > 0 {
		verr := &ValidationError{Fields: bad}
		sess.checkout.lastErr = verr.Error()
		v := s.view(sess)
		sess.mu.Unlock()
		return v, verr
	}

	lines := sess.cart.Lines()
	totals := ComputeTotals(lines)
	order := toNewOrder(form, lines, totals)
	sess.checkout.state = CheckoutSubmitting
	sess.checkout.lastErr = ""
	sess.mu.Unlock()

	id, err := s.create(ctx, order)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err != nil {
		sess.checkout.state = CheckoutFailed
		sess.checkout.lastErr = shopperMessage(err)
		applog.Error(nil, "checkout.create.fail", err, map[string]any{"sid": sess.id, "total": totals.Total})
		return s.view(sess), fmt.Errorf("%w: %v", ErrOrderCreate, err)
	}

	sess.checkout.state = CheckoutSuccess
	sess.checkout.orderID = id
	sess.checkout.succeededAt = s.now()
	sess.cart.Subtract(ctx, lines)
	applog.Audit(nil, "checkout.success", map[string]any{"sid": sess.id, "order_id": id, "total": totals.Total, "lines": len(lines)})
	return s.view(sess), nil
}

func (s *CheckoutService) create(ctx context.Context, o domain.NewOrder) (int64, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	return s.Orders.Create(ctx, o)
}

// toNewOrder maps the camelCase form onto the store's record. Card fields are dropped.
func toNewOrder(f domain.ShippingForm, lines []domain.CartLine, t Totals) domain.NewOrder {
	return domain.NewOrder{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Address:     strings.TrimSpace(f.Address),
		City:        strings.TrimSpace(f.City),
		ZipCode:     strings.TrimSpace(f.ZipCode),
		Items:       lines,
		TotalAmount: t.Total,
		Status:      domain.StatusProcessing,
	}
}
