package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/roecybersecure/site-api/internal/shop"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// PayPalProvider creates orders through the PayPal orders v2 API. Access
// tokens come from an oauth2 client-credentials source, which caches and
// refreshes them across calls.
type PayPalProvider struct {
	apiURL     string
	brandName  string
	returnURL  string
	cancelURL  string
	currency   string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewPayPalProvider(clientID, clientSecret, apiURL, returnURL, cancelURL, currency string, logger *zap.SugaredLogger) (*PayPalProvider, error) {
	if clientID == "" || clientSecret == "" || apiURL == "" {
		return nil, &ConfigurationError{Provider: MethodPayPal, Detail: "missing client id, client secret or API URL"}
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     apiURL + "/v1/oauth2/token",
	}

	return &PayPalProvider{
		apiURL:     apiURL,
		brandName:  "ROE Computers",
		returnURL:  returnURL,
		cancelURL:  cancelURL,
		currency:   currency,
		httpClient: conf.Client(context.Background()),
		logger:     logger,
	}, nil
}

func (p *PayPalProvider) Name() Method {
	return MethodPayPal
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalItem struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Quantity    string       `json:"quantity"`
	UnitAmount  paypalAmount `json:"unit_amount"`
}

type paypalPurchaseUnit struct {
	ReferenceID string `json:"reference_id"`
	Amount      struct {
		paypalAmount
		Breakdown struct {
			ItemTotal paypalAmount `json:"item_total"`
		} `json:"breakdown"`
	} `json:"amount"`
	Items          []paypalItem `json:"items"`
	Description    string       `json:"description"`
	CustomID       string       `json:"custom_id"`
	SoftDescriptor string       `json:"soft_descriptor"`
}

type paypalOrderRequest struct {
	Intent             string               `json:"intent"`
	PurchaseUnits      []paypalPurchaseUnit `json:"purchase_units"`
	ApplicationContext struct {
		BrandName          string `json:"brand_name"`
		Locale             string `json:"locale"`
		LandingPage        string `json:"landing_page"`
		ShippingPreference string `json:"shipping_preference"`
		UserAction         string `json:"user_action"`
		ReturnURL          string `json:"return_url"`
		CancelURL          string `json:"cancel_url"`
	} `json:"application_context"`
	Payer struct {
		EmailAddress string `json:"email_address"`
		Name         struct {
			GivenName string `json:"given_name"`
			Surname   string `json:"surname"`
		} `json:"name"`
	} `json:"payer"`
}

type paypalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type paypalOrderResponse struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Links  []paypalLink `json:"links"`
}

func (p *PayPalProvider) CreateCheckout(ctx context.Context, cart *shop.Cart, customer shop.Customer) (*Checkout, error) {
	total := cart.Total(p.currency)

	body, err := json.Marshal(p.buildOrderRequest(cart, customer, total.MajorString()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode paypal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PayPal-Request-Id", newOrderReference())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &VendorError{Provider: MethodPayPal, Detail: "order request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Errorw("paypal order creation rejected",
			"status", resp.StatusCode,
			"body", string(detail),
		)
		return nil, &VendorError{
			Provider:   MethodPayPal,
			StatusCode: resp.StatusCode,
			Detail:     "order creation rejected",
		}
	}

	var order paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, &VendorError{Provider: MethodPayPal, Detail: "malformed order response", Err: err}
	}

	approvalURL := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}

	if approvalURL == "" {
		return nil, &VendorError{Provider: MethodPayPal, Detail: "approval URL not found"}
	}

	p.logger.Infow("paypal order created",
		"order_id", order.ID,
		"status", order.Status,
		"total", total.MajorString(),
	)

	return &Checkout{
		OrderID:     order.ID,
		Status:      order.Status,
		RedirectURL: approvalURL,
	}, nil
}

func (p *PayPalProvider) buildOrderRequest(cart *shop.Cart, customer shop.Customer, totalValue string) paypalOrderRequest {
	items := make([]paypalItem, 0, len(cart.Lines()))
	for i, line := range cart.Lines() {
		cfg := line.Configuration
		items = append(items, paypalItem{
			Name:        fmt.Sprintf("Configuration PC #%d", i+1),
			Description: cfg.Describe(),
			Quantity:    fmt.Sprintf("%d", line.Quantity),
			UnitAmount: paypalAmount{
				CurrencyCode: p.currency,
				Value:        cfg.UnitPrice(p.currency).MajorString(),
			},
		})
	}

	var unit paypalPurchaseUnit
	unit.ReferenceID = newOrderReference()
	unit.Amount.CurrencyCode = p.currency
	unit.Amount.Value = totalValue
	unit.Amount.Breakdown.ItemTotal = paypalAmount{CurrencyCode: p.currency, Value: totalValue}
	unit.Items = items
	unit.Description = fmt.Sprintf("Commande ROE Computers - %d configuration(s)", cart.Size())
	unit.CustomID = "customer-" + customer.Email
	unit.SoftDescriptor = "ROE COMPUTERS"

	var order paypalOrderRequest
	order.Intent = "CAPTURE"
	order.PurchaseUnits = []paypalPurchaseUnit{unit}
	order.ApplicationContext.BrandName = p.brandName
	order.ApplicationContext.Locale = "en-US"
	order.ApplicationContext.LandingPage = "BILLING"
	order.ApplicationContext.ShippingPreference = "SET_PROVIDED_ADDRESS"
	order.ApplicationContext.UserAction = "PAY_NOW"
	order.ApplicationContext.ReturnURL = p.returnURL
	order.ApplicationContext.CancelURL = p.cancelURL
	order.Payer.EmailAddress = customer.Email
	order.Payer.Name.GivenName = customer.GivenName()
	order.Payer.Name.Surname = customer.Surname()

	return order
}

// newOrderReference builds a unique "roe-" prefixed id used as the order
// reference and the PayPal-Request-Id dedupe key.
func newOrderReference() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return "roe-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
