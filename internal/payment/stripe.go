package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/roecybersecure/site-api/internal/shop"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"
)

// StripeProvider creates hosted Checkout sessions. The returned session URL
// is where the client redirects the customer.
type StripeProvider struct {
	successURL string
	cancelURL  string
	currency   string
	logger     *zap.SugaredLogger
}

func NewStripeProvider(secretKey, successURL, cancelURL, currency string, logger *zap.SugaredLogger) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, &ConfigurationError{Provider: MethodStripe, Detail: "missing secret key"}
	}

	stripe.Key = secretKey

	return &StripeProvider{
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   currency,
		logger:     logger,
	}, nil
}

func (p *StripeProvider) Name() Method {
	return MethodStripe
}

func (p *StripeProvider) CreateCheckout(ctx context.Context, cart *shop.Cart, customer shop.Customer) (*Checkout, error) {
	lineItems := buildStripeLineItems(cart, p.currency)
	total := cart.Total(p.currency)

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems:     lineItems,
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(customer.Email),
		SuccessURL:    stripe.String(p.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.cancelURL),
		Metadata: map[string]string{
			"customer_name":  customer.Name,
			"customer_email": customer.Email,
			"order_type":     "pc_configuration",
			"item_count":     strconv.FormatInt(cart.Size(), 10),
			"total_amount":   total.MajorString(),
		},
		BillingAddressCollection: stripe.String("auto"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "CA", "FR", "DE", "GB"}),
		},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		AllowPromotionCodes: stripe.Bool(true),
	}

	s, err := session.New(params)
	if err != nil {
		return nil, &VendorError{
			Provider: MethodStripe,
			Detail:   "failed to create checkout session",
			Err:      err,
		}
	}

	return &Checkout{
		SessionID:   s.ID,
		RedirectURL: s.URL,
	}, nil
}

// buildStripeLineItems maps each cart line to one Stripe line item with the
// unit amount in minor units and the synthesized hardware description.
func buildStripeLineItems(cart *shop.Cart, currency string) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cart.Lines()))

	for i, line := range cart.Lines() {
		cfg := line.Configuration

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(fmt.Sprintf("Configuration PC #%d", i+1)),
					Description: stripe.String(cfg.Describe()),
					Metadata: map[string]string{
						"configuration_id": cfg.ID,
						"cpu":              cfg.CPU,
						"gpu":              cfg.GPU,
						"ram":              cfg.RAM,
						"storage":          cfg.Storage,
					},
				},
				UnitAmount: stripe.Int64(cfg.UnitPrice(currency).MinorUnits()),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	return lineItems
}
