package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/roecybersecure/site-api/internal/shop"
	qrcode "github.com/skip2/go-qrcode"
)

func (app *application) listConfigurations(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, http.StatusOK, envelope{
		"configurations": app.catalog.Configurations(),
	})
}

type createWhatsAppOrderRequest struct {
	Cart []shop.Configuration `json:"cart" validate:"required,min=1"`
}

// createWhatsAppOrder renders the manual-order message for a cart and
// returns the wa.me deep link the client opens in a new tab.
func (app *application) createWhatsAppOrder(w http.ResponseWriter, r *http.Request) {
	var form createWhatsAppOrderRequest

	if err := app.readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart := shop.CartFromConfigurations(sanitizeCart(form.Cart))

	link, err := shop.OrderLink(app.cfg.whatsappNumber, cart, app.cfg.frontendURL)
	if err != nil {
		if errors.Is(err, shop.ErrEmptyCart) {
			app.badRequestResponse(w, r, errors.New(app.localize(r, "shop.cart.empty")))
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, envelope{
		"link":    link,
		"message": shop.OrderMessage(cart, app.cfg.frontendURL),
	})
}

// whatsAppOrderQR renders a previously built wa.me link as a QR PNG so
// desktop visitors can continue the order on their phone.
func (app *application) whatsAppOrderQR(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")

	if !strings.HasPrefix(link, "https://wa.me/"+app.cfg.whatsappNumber) {
		app.badRequestResponse(w, r, errors.New("link must be a wa.me order link for this shop"))
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
