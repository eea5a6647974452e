package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListConfigurations(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/shop/configurations", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	configurations := data["configurations"].([]any)
	require.Len(t, configurations, 4)

	first := configurations[0].(map[string]any)
	assert.Equal(t, "roe-i9-16-512", first["id"])
	assert.Equal(t, float64(2850), first["price"])
}

func TestCreateWhatsAppOrder(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	rec := postJSON(t, app.routes(), "/v1/shop/whatsapp-order", map[string]any{
		"cart": testCartPayload(),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)

	link := data["link"].(string)
	assert.True(t, len(link) > 0)
	assert.Contains(t, link, "https://wa.me/"+app.cfg.whatsappNumber+"?text=")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("text"), "COMMANDE LAPTOP ROE")

	message := data["message"].(string)
	assert.Contains(t, message, "Total: 2850.00 USD")
}

func TestCreateWhatsAppOrderEmptyCart(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	rec := postJSON(t, app.routes(), "/v1/shop/whatsapp-order", map[string]any{
		"cart": []map[string]any{},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWhatsAppOrderQR(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	link := url.QueryEscape("https://wa.me/" + app.cfg.whatsappNumber + "?text=hello")
	req := httptest.NewRequest(http.MethodGet, "/v1/shop/whatsapp-order/qr?link="+link, nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])
}

func TestWhatsAppOrderQRRejectsForeignLink(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	link := url.QueryEscape("https://evil.example/phish")
	req := httptest.NewRequest(http.MethodGet, "/v1/shop/whatsapp-order/qr?link="+link, nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
