package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/roecybersecure/site-api/internal/shop"
	"go.uber.org/zap"
)

const (
	defaultProbeInterval = 500 * time.Millisecond
	defaultProbeAttempts = 10
)

// ReadinessProbe reports whether the Affirm client is reachable. The
// provider polls it at a fixed interval with a fixed attempt ceiling before
// giving up; there is no backoff.
type ReadinessProbe func(ctx context.Context) bool

// AffirmProvider drives Affirm's direct checkout API and the two-phase
// authorize+capture charge flow.
type AffirmProvider struct {
	apiURL     string
	publicKey  string
	privateKey string
	confirmURL string
	cancelURL  string
	siteURL    string
	currency   string

	probe         ReadinessProbe
	probeInterval time.Duration
	probeAttempts int

	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// AffirmOption tweaks provider behavior; used by tests to shrink the probe
// budget and swap the HTTP client.
type AffirmOption func(*AffirmProvider)

func WithReadinessProbe(probe ReadinessProbe, interval time.Duration, attempts int) AffirmOption {
	return func(p *AffirmProvider) {
		p.probe = probe
		p.probeInterval = interval
		p.probeAttempts = attempts
	}
}

func WithAffirmHTTPClient(client *http.Client) AffirmOption {
	return func(p *AffirmProvider) {
		p.httpClient = client
	}
}

func NewAffirmProvider(publicKey, privateKey, apiURL, confirmURL, cancelURL, siteURL, currency string, logger *zap.SugaredLogger, opts ...AffirmOption) (*AffirmProvider, error) {
	if publicKey == "" || privateKey == "" || apiURL == "" {
		return nil, &ConfigurationError{Provider: MethodAffirm, Detail: "missing public key, private key or API URL"}
	}

	p := &AffirmProvider{
		apiURL:        apiURL,
		publicKey:     publicKey,
		privateKey:    privateKey,
		confirmURL:    confirmURL,
		cancelURL:     cancelURL,
		siteURL:       siteURL,
		currency:      currency,
		probeInterval: defaultProbeInterval,
		probeAttempts: defaultProbeAttempts,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.probe == nil {
		p.probe = p.pingAPI
	}

	return p, nil
}

func (p *AffirmProvider) Name() Method {
	return MethodAffirm
}

// waitReady polls the readiness probe. Exhausting the attempt budget is a
// terminal failure for this attempt; no checkout call is made after it.
func (p *AffirmProvider) waitReady(ctx context.Context) error {
	for attempt := 0; attempt < p.probeAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.probeInterval):
			}
		}

		if p.probe(ctx) {
			return nil
		}
	}

	return &UnavailableError{Provider: MethodAffirm, Attempts: p.probeAttempts}
}

func (p *AffirmProvider) pingAPI(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.apiURL, nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return true
}

type affirmCheckoutRequest struct {
	Merchant struct {
		UserConfirmationURL       string `json:"user_confirmation_url"`
		UserCancelURL             string `json:"user_cancel_url"`
		UserConfirmationURLAction string `json:"user_confirmation_url_action"`
		PublicAPIKey              string `json:"public_api_key"`
	} `json:"merchant"`
	Shipping affirmContact `json:"shipping"`
	Billing  affirmContact `json:"billing"`
	Items    []affirmItem  `json:"items"`
	Metadata struct {
		PlatformType   string `json:"platform_type"`
		PlatformAffirm bool   `json:"platform_affirm"`
	} `json:"metadata"`
	OrderID        string `json:"order_id"`
	Currency       string `json:"currency"`
	ShippingAmount int64  `json:"shipping_amount"`
	TaxAmount      int64  `json:"tax_amount"`
	Total          int64  `json:"total"`
}

type affirmContact struct {
	Name struct {
		Full string `json:"full"`
	} `json:"name"`
	Email string `json:"email"`
}

type affirmItem struct {
	DisplayName  string `json:"display_name"`
	SKU          string `json:"sku"`
	UnitPrice    int64  `json:"unit_price"`
	Qty          int64  `json:"qty"`
	ItemImageURL string `json:"item_image_url"`
	ItemURL      string `json:"item_url"`
}

type affirmCheckoutResponse struct {
	RedirectURL   string `json:"redirect_url"`
	CheckoutToken string `json:"checkout_token"`
}

// CreateCheckout waits for client readiness, then creates a direct checkout
// whose redirect URL hosts Affirm's confirmation flow.
func (p *AffirmProvider) CreateCheckout(ctx context.Context, cart *shop.Cart, customer shop.Customer) (*Checkout, error) {
	if err := p.waitReady(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(p.buildCheckoutRequest(cart, customer))
	if err != nil {
		return nil, fmt.Errorf("failed to encode affirm checkout: %w", err)
	}

	var out affirmCheckoutResponse
	if err := p.post(ctx, "/checkout/direct", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}

	return &Checkout{
		SessionID:   out.CheckoutToken,
		RedirectURL: out.RedirectURL,
	}, nil
}

func (p *AffirmProvider) buildCheckoutRequest(cart *shop.Cart, customer shop.Customer) affirmCheckoutRequest {
	contact := affirmContact{Email: customer.Email}
	contact.Name.Full = customer.Name

	items := make([]affirmItem, 0, len(cart.Lines()))
	for i, line := range cart.Lines() {
		cfg := line.Configuration

		sku := cfg.ID
		if sku == "" {
			sku = fmt.Sprintf("config-%d", i)
		}

		items = append(items, affirmItem{
			DisplayName:  fmt.Sprintf("Configuration PC #%d", i+1),
			SKU:          sku,
			UnitPrice:    cfg.UnitPrice(p.currency).MinorUnits(),
			Qty:          line.Quantity,
			ItemImageURL: strings.TrimRight(p.siteURL, "/") + "/images/pc-config.jpg",
			ItemURL:      strings.TrimRight(p.siteURL, "/") + "/shop",
		})
	}

	var req affirmCheckoutRequest
	req.Merchant.UserConfirmationURL = p.confirmURL
	req.Merchant.UserCancelURL = p.cancelURL
	req.Merchant.UserConfirmationURLAction = "POST"
	req.Merchant.PublicAPIKey = p.publicKey
	req.Shipping = contact
	req.Billing = contact
	req.Items = items
	req.Metadata.PlatformType = "ROE Computers"
	req.Metadata.PlatformAffirm = true
	req.OrderID = newOrderReference()
	req.Currency = p.currency
	req.Total = cart.Total(p.currency).MinorUnits()

	return req
}

// Charge is the outcome of a captured Affirm payment. Amount is in minor
// units.
type Charge struct {
	ID     string
	Amount int64
}

type affirmChargeResponse struct {
	ID      string `json:"id"`
	Amount  int64  `json:"amount"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Capture authorizes a charge from a confirmed checkout token and captures
// it immediately in the same call. A capture failure after a successful
// authorization returns a CaptureError carrying the charge id, since funds
// are held on Affirm's side until someone reconciles the charge by hand.
func (p *AffirmProvider) Capture(ctx context.Context, checkoutToken string) (*Charge, error) {
	if checkoutToken == "" {
		return nil, newValidationError("shop.payment.invalidData", "missing checkout token")
	}

	authBody, err := json.Marshal(map[string]string{"checkout_token": checkoutToken})
	if err != nil {
		return nil, err
	}

	var authorized affirmChargeResponse
	if err := p.post(ctx, "/charges", bytes.NewReader(authBody), &authorized); err != nil {
		return nil, err
	}

	if authorized.Type == "invalid_request" || authorized.ID == "" {
		return nil, &VendorError{Provider: MethodAffirm, Detail: "invalid checkout token"}
	}

	var captured affirmChargeResponse
	if err := p.post(ctx, "/charges/"+authorized.ID+"/capture", nil, &captured); err != nil {
		p.logger.Errorw("affirm capture failed after authorization",
			"charge_id", authorized.ID,
			"error", err,
		)
		return nil, &CaptureError{Provider: MethodAffirm, ChargeID: authorized.ID, Err: err}
	}

	p.logger.Infow("affirm charge captured",
		"charge_id", captured.ID,
		"amount", captured.Amount,
	)

	return &Charge{ID: captured.ID, Amount: captured.Amount}, nil
}

func (p *AffirmProvider) post(ctx context.Context, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.publicKey, p.privateKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &VendorError{Provider: MethodAffirm, Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Errorw("affirm request rejected",
			"path", path,
			"status", resp.StatusCode,
			"body", string(detail),
		)
		return &VendorError{
			Provider:   MethodAffirm,
			StatusCode: resp.StatusCode,
			Detail:     "request rejected",
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &VendorError{Provider: MethodAffirm, Detail: "malformed response", Err: err}
		}
	}

	return nil
}
