package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roecybersecure/site-api/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paypalStub struct {
	orderStatus   int
	orderResponse any

	tokenRequests int
	orderRequests int
	lastOrderBody paypalOrderRequest
}

func (s *paypalStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		s.tokenRequests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		s.orderRequests++
		json.NewDecoder(r.Body).Decode(&s.lastOrderBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.orderStatus)
		json.NewEncoder(w).Encode(s.orderResponse)
	})

	return mux
}

func newPayPalTestProvider(t *testing.T, stub *paypalStub) *PayPalProvider {
	t.Helper()

	ts := httptest.NewServer(stub.handler())
	t.Cleanup(ts.Close)

	p, err := NewPayPalProvider("client-id", "client-secret", ts.URL,
		"https://shop.test/payment/success", "https://shop.test/payment/cancel", "USD", zap.NewNop().Sugar())
	require.NoError(t, err)

	return p
}

func TestNewPayPalProviderRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewPayPalProvider("", "", "", "", "", "USD", zap.NewNop().Sugar())

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, MethodPayPal, configErr.Provider)
}

func TestPayPalCreateCheckout(t *testing.T) {
	t.Parallel()

	stub := &paypalStub{
		orderStatus: http.StatusCreated,
		orderResponse: paypalOrderResponse{
			ID:     "o1",
			Status: "CREATED",
			Links: []paypalLink{
				{Href: "https://paypal.test/self", Rel: "self", Method: "GET"},
				{Href: "https://paypal.test/approve", Rel: "approve", Method: "GET"},
			},
		},
	}
	p := newPayPalTestProvider(t, stub)

	cart := testCart()
	checkout, err := p.CreateCheckout(context.Background(), cart, testCustomer())
	require.NoError(t, err)

	assert.Equal(t, "o1", checkout.OrderID)
	assert.Equal(t, "CREATED", checkout.Status)
	assert.Equal(t, "https://paypal.test/approve", checkout.RedirectURL)
	assert.Equal(t, 1, stub.orderRequests)

	// Total is the arithmetic sum of item prices in major-unit string form.
	require.Len(t, stub.lastOrderBody.PurchaseUnits, 1)
	unit := stub.lastOrderBody.PurchaseUnits[0]
	assert.Equal(t, "2850.00", unit.Amount.Value)
	assert.Equal(t, "2850.00", unit.Amount.Breakdown.ItemTotal.Value)
	assert.Equal(t, "CAPTURE", stub.lastOrderBody.Intent)
	assert.Equal(t, "a@b.com", stub.lastOrderBody.Payer.EmailAddress)
	require.Len(t, unit.Items, 1)
	assert.Equal(t, "2850.00", unit.Items[0].UnitAmount.Value)
}

func TestPayPalMissingApprovalLink(t *testing.T) {
	t.Parallel()

	stub := &paypalStub{
		orderStatus: http.StatusCreated,
		orderResponse: paypalOrderResponse{
			ID:     "o1",
			Status: "CREATED",
			Links: []paypalLink{
				{Href: "https://paypal.test/self", Rel: "self", Method: "GET"},
			},
		},
	}
	p := newPayPalTestProvider(t, stub)

	_, err := p.CreateCheckout(context.Background(), testCart(), testCustomer())

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, "approval URL not found", vendorErr.Detail)
}

func TestPayPalOrderRejected(t *testing.T) {
	t.Parallel()

	stub := &paypalStub{
		orderStatus:   http.StatusUnprocessableEntity,
		orderResponse: map[string]string{"name": "UNPROCESSABLE_ENTITY"},
	}
	p := newPayPalTestProvider(t, stub)

	_, err := p.CreateCheckout(context.Background(), testCart(), testCustomer())

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, http.StatusUnprocessableEntity, vendorErr.StatusCode)
}

func TestPayPalMultiItemTotal(t *testing.T) {
	t.Parallel()

	stub := &paypalStub{
		orderStatus: http.StatusCreated,
		orderResponse: paypalOrderResponse{
			ID:     "o2",
			Status: "CREATED",
			Links:  []paypalLink{{Href: "https://paypal.test/approve", Rel: "approve"}},
		},
	}
	p := newPayPalTestProvider(t, stub)

	cart := shop.CartFromConfigurations([]shop.Configuration{
		{ID: "a", RAM: "16GB", Price: 2850},
		{ID: "b", RAM: "32GB", Price: 3000},
		{ID: "a", RAM: "16GB", Price: 2850},
	})

	_, err := p.CreateCheckout(context.Background(), cart, testCustomer())
	require.NoError(t, err)

	assert.Equal(t, "8700.00", stub.lastOrderBody.PurchaseUnits[0].Amount.Value)
}
