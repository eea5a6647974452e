package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type affirmStub struct {
	chargeStatus   int
	chargeResponse affirmChargeResponse
	captureStatus  int

	checkoutRequests int
	chargeRequests   int
	captureRequests  int
}

func (s *affirmStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/checkout/direct", func(w http.ResponseWriter, r *http.Request) {
		s.checkoutRequests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(affirmCheckoutResponse{
			RedirectURL:   "https://affirm.test/confirm",
			CheckoutToken: "tok_1",
		})
	})

	mux.HandleFunc("/charges/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/capture") {
			s.captureRequests++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(s.captureStatus)
			json.NewEncoder(w).Encode(affirmChargeResponse{ID: s.chargeResponse.ID, Amount: s.chargeResponse.Amount})
			return
		}
		http.NotFound(w, r)
	})

	mux.HandleFunc("/charges", func(w http.ResponseWriter, r *http.Request) {
		s.chargeRequests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.chargeStatus)
		json.NewEncoder(w).Encode(s.chargeResponse)
	})

	return mux
}

func newAffirmTestProvider(t *testing.T, stub *affirmStub, opts ...AffirmOption) *AffirmProvider {
	t.Helper()

	ts := httptest.NewServer(stub.handler())
	t.Cleanup(ts.Close)

	base := []AffirmOption{
		WithReadinessProbe(func(ctx context.Context) bool { return true }, time.Millisecond, 10),
	}

	p, err := NewAffirmProvider("pub", "priv", ts.URL,
		"https://shop.test/payment/success", "https://shop.test/payment/cancel",
		"https://shop.test", "USD", zap.NewNop().Sugar(), append(base, opts...)...)
	require.NoError(t, err)

	return p
}

func TestNewAffirmProviderRequiresKeys(t *testing.T) {
	t.Parallel()

	_, err := NewAffirmProvider("", "", "", "", "", "", "USD", zap.NewNop().Sugar())

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, MethodAffirm, configErr.Provider)
}

func TestAffirmReadinessExhaustionMakesNoCheckoutCall(t *testing.T) {
	t.Parallel()

	stub := &affirmStub{}
	probeCalls := 0
	p := newAffirmTestProvider(t, stub, WithReadinessProbe(func(ctx context.Context) bool {
		probeCalls++
		return false
	}, time.Millisecond, 10))

	_, err := p.CreateCheckout(context.Background(), testCart(), testCustomer())

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 10, unavailable.Attempts)
	assert.Equal(t, 10, probeCalls, "probe runs a fixed number of attempts")
	assert.Equal(t, 0, stub.checkoutRequests, "no checkout call after probe exhaustion")
}

func TestAffirmCreateCheckout(t *testing.T) {
	t.Parallel()

	stub := &affirmStub{}
	p := newAffirmTestProvider(t, stub)

	checkout, err := p.CreateCheckout(context.Background(), testCart(), testCustomer())
	require.NoError(t, err)

	assert.Equal(t, "https://affirm.test/confirm", checkout.RedirectURL)
	assert.Equal(t, "tok_1", checkout.SessionID)
	assert.Equal(t, 1, stub.checkoutRequests)
}

func TestAffirmCaptureTwoPhase(t *testing.T) {
	t.Parallel()

	stub := &affirmStub{
		chargeStatus:   http.StatusOK,
		chargeResponse: affirmChargeResponse{ID: "ch_1", Amount: 285000},
		captureStatus:  http.StatusOK,
	}
	p := newAffirmTestProvider(t, stub)

	charge, err := p.Capture(context.Background(), "tok_1")
	require.NoError(t, err)

	assert.Equal(t, "ch_1", charge.ID)
	assert.Equal(t, int64(285000), charge.Amount)
	assert.Equal(t, 1, stub.chargeRequests)
	assert.Equal(t, 1, stub.captureRequests)
}

func TestAffirmCaptureInvalidToken(t *testing.T) {
	t.Parallel()

	stub := &affirmStub{
		chargeStatus:   http.StatusOK,
		chargeResponse: affirmChargeResponse{Type: "invalid_request"},
	}
	p := newAffirmTestProvider(t, stub)

	_, err := p.Capture(context.Background(), "bad-token")

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, "invalid checkout token", vendorErr.Detail)
	assert.Equal(t, 0, stub.captureRequests, "no capture attempt for an invalid token")
}

func TestAffirmCaptureFailureAfterAuthorization(t *testing.T) {
	t.Parallel()

	stub := &affirmStub{
		chargeStatus:   http.StatusOK,
		chargeResponse: affirmChargeResponse{ID: "ch_1", Amount: 285000},
		captureStatus:  http.StatusInternalServerError,
	}
	p := newAffirmTestProvider(t, stub)

	_, err := p.Capture(context.Background(), "tok_1")

	var captureErr *CaptureError
	require.ErrorAs(t, err, &captureErr)
	assert.Equal(t, "ch_1", captureErr.ChargeID, "charge id must survive for manual reconciliation")
}

func TestAffirmCaptureMissingToken(t *testing.T) {
	t.Parallel()

	stub := &affirmStub{}
	p := newAffirmTestProvider(t, stub)

	_, err := p.Capture(context.Background(), "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, stub.chargeRequests)
}
