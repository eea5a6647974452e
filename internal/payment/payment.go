package payment

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/roecybersecure/site-api/internal/shop"
	"go.uber.org/zap"
)

type Method string

const (
	MethodStripe   Method = "stripe"
	MethodPayPal   Method = "paypal"
	MethodAffirm   Method = "affirm"
	MethodWhatsApp Method = "whatsapp"
)

// Checkout is what a provider hands back so the client can continue the
// vendor's flow: a hosted-checkout session id, a redirect URL, or both.
type Checkout struct {
	SessionID   string
	RedirectURL string
	OrderID     string
	Status      string
}

// Provider translates a generic payment request into one vendor's expected
// shape and calls that vendor's API.
type Provider interface {
	Name() Method
	CreateCheckout(ctx context.Context, cart *shop.Cart, customer shop.Customer) (*Checkout, error)
}

// Dispatcher validates a payment request and delegates it to the matching
// provider. At most one attempt may be in flight at a time; a second call
// while one is outstanding fails with ErrPaymentInFlight rather than racing.
type Dispatcher struct {
	providers map[Method]Provider
	logger    *zap.SugaredLogger
	inFlight  atomic.Bool
}

func NewDispatcher(logger *zap.SugaredLogger, providers ...Provider) *Dispatcher {
	byName := make(map[Method]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	return &Dispatcher{
		providers: byName,
		logger:    logger,
	}
}

// Process runs one payment attempt. Validation failures and unknown methods
// reject before any provider or network activity. Provider errors come back
// unchanged so callers can map them; cart state is never modified.
func (d *Dispatcher) Process(ctx context.Context, method Method, cart *shop.Cart, customer shop.Customer) (*Checkout, error) {
	if err := validateRequest(cart, customer); err != nil {
		return nil, err
	}

	provider, ok := d.providers[method]
	if !ok {
		return nil, newValidationError("shop.payment.unsupported", "unsupported payment method: "+string(method))
	}

	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, ErrPaymentInFlight
	}
	defer d.inFlight.Store(false)

	checkout, err := provider.CreateCheckout(ctx, cart, customer)
	if err != nil {
		d.logger.Errorw("payment attempt failed",
			"method", method,
			"items", cart.Size(),
			"error", err,
		)
		return nil, err
	}

	d.logger.Infow("payment checkout created",
		"method", method,
		"items", cart.Size(),
		"session_id", checkout.SessionID,
		"order_id", checkout.OrderID,
	)

	return checkout, nil
}

func validateRequest(cart *shop.Cart, customer shop.Customer) error {
	if cart == nil || cart.IsEmpty() {
		return newValidationError("shop.cart.empty", "cart is empty")
	}

	if !strings.Contains(customer.Email, "@") {
		return newValidationError("shop.payment.invalidData", "customer email is invalid")
	}

	if strings.TrimSpace(customer.Name) == "" {
		return newValidationError("shop.payment.invalidData", "customer name is required")
	}

	return nil
}
