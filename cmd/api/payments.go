package main

import (
	"errors"
	"net/http"

	"github.com/roecybersecure/site-api/internal/money"
	"github.com/roecybersecure/site-api/internal/payment"
	"github.com/roecybersecure/site-api/internal/shop"
)

type createStripeSessionRequest struct {
	Cart     []shop.Configuration `json:"cart" validate:"required,min=1"`
	Customer shop.Customer        `json:"customer" validate:"required"`
	Currency string               `json:"currency"`
}

func (app *application) createStripeSession(w http.ResponseWriter, r *http.Request) {
	var form createStripeSessionRequest

	if err := app.readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart := shop.CartFromConfigurations(sanitizeCart(form.Cart))

	checkout, err := app.dispatcher.Process(r.Context(), payment.MethodStripe, cart, sanitizeCustomer(form.Customer))
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, envelope{
		"sessionId": checkout.SessionID,
		"url":       checkout.RedirectURL,
	})
}

type createPayPalOrderRequest struct {
	Cart     []shop.Configuration `json:"cart" validate:"required,min=1"`
	Customer shop.Customer        `json:"customer" validate:"required"`
	Total    float64              `json:"total" validate:"required,gt=0"`
	Currency string               `json:"currency"`
}

func (app *application) createPayPalOrder(w http.ResponseWriter, r *http.Request) {
	var form createPayPalOrderRequest

	if err := app.readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cart := shop.CartFromConfigurations(sanitizeCart(form.Cart))

	// The site computes the total client-side; it must agree with the cart
	// sum before anything reaches PayPal.
	claimed := money.FromMajorUnits(form.Total, app.cfg.currency)
	if !claimed.Equal(cart.Total(app.cfg.currency)) {
		app.badRequestResponse(w, r, errors.New("total does not match cart contents"))
		return
	}

	checkout, err := app.dispatcher.Process(r.Context(), payment.MethodPayPal, cart, sanitizeCustomer(form.Customer))
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, envelope{
		"approvalUrl": checkout.RedirectURL,
		"orderId":     checkout.OrderID,
		"status":      checkout.Status,
	})
}

type captureAffirmPaymentRequest struct {
	CheckoutToken string               `json:"checkout_token" validate:"required"`
	Customer      shop.Customer        `json:"customer" validate:"required"`
	Cart          []shop.Configuration `json:"cart" validate:"required,min=1"`
}

func (app *application) captureAffirmPayment(w http.ResponseWriter, r *http.Request) {
	var form captureAffirmPaymentRequest

	if err := app.readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	charge, err := app.affirm.Capture(r.Context(), form.CheckoutToken)
	if err != nil {
		app.paymentErrorResponse(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, envelope{
		"success":  true,
		"chargeId": charge.ID,
		"amount":   charge.Amount,
	})
}

func sanitizeCart(configurations []shop.Configuration) []shop.Configuration {
	out := make([]shop.Configuration, len(configurations))
	for i, cfg := range configurations {
		cfg.ID = sanitizeText(cfg.ID)
		cfg.RAM = sanitizeText(cfg.RAM)
		cfg.Storage = sanitizeText(cfg.Storage)
		cfg.CPU = sanitizeText(cfg.CPU)
		cfg.Generation = sanitizeText(cfg.Generation)
		cfg.GPU = sanitizeText(cfg.GPU)
		out[i] = cfg
	}
	return out
}

func sanitizeCustomer(customer shop.Customer) shop.Customer {
	customer.Email = sanitizeText(customer.Email)
	customer.Name = sanitizeText(customer.Name)
	return customer
}
