package main

import (
	"errors"
	"net/http"

	"github.com/roecybersecure/site-api/internal/payment"
	"github.com/roecybersecure/site-api/internal/validator"
)

type ResponseErrorCode string

const (
	ErrorCodeBadRequest          ResponseErrorCode = "bad_request"
	ErrorCodeNotFound            ResponseErrorCode = "not_found"
	ErrorCodeConflict            ResponseErrorCode = "conflict"
	ErrorTooManyRequest          ResponseErrorCode = "too_many_requests"
	ErrorCodeInternalServerError ResponseErrorCode = "internal_server_error"

	ErrorCodeValidationFailed    ResponseErrorCode = "validation_failed"
	ErrorCodeConfiguration       ResponseErrorCode = "configuration_error"
	ErrorCodeVendor              ResponseErrorCode = "vendor_error"
	ErrorCodePaymentInFlight     ResponseErrorCode = "payment_in_flight"
	ErrorCodeProviderUnavailable ResponseErrorCode = "provider_unavailable"
	ErrorCodeCaptureFailed       ResponseErrorCode = "capture_failed"
)

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request error", "method", r.Method, "path", r.URL.Path, "error", err)

	var validationErrors *validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		app.errorResponse(w, http.StatusBadRequest, validationErrors.FieldErrors(), envelope{"code": ErrorCodeBadRequest})
		return
	}
	app.errorResponse(w, http.StatusBadRequest, err.Error(), envelope{"code": ErrorCodeBadRequest})
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, details ...string) {
	app.logger.Warnw("not found attempt",
		"method", r.Method,
		"path", r.URL.Path,
	)

	message := "the requested resource could not be found"
	if len(details) > 0 && details[0] != "" {
		message = details[0]
	}

	app.errorResponse(w, http.StatusNotFound, message, envelope{"code": ErrorCodeNotFound})
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)

	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, http.StatusInternalServerError, message, envelope{"code": ErrorCodeInternalServerError})
}

// paymentErrorResponse maps the payment error taxonomy onto HTTP statuses
// and localized display messages. Vendor and configuration detail stays in
// the server log; the client only sees the generic message.
func (app *application) paymentErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *payment.ValidationError
		configErr     *payment.ConfigurationError
		vendorErr     *payment.VendorError
		unavailable   *payment.UnavailableError
		captureErr    *payment.CaptureError
	)

	switch {
	case errors.As(err, &validationErr):
		app.logger.Warnw("payment validation failed", "path", r.URL.Path, "error", err)
		app.errorResponse(w, http.StatusBadRequest, app.localize(r, validationErr.MessageKey), envelope{"code": ErrorCodeValidationFailed})

	case errors.Is(err, payment.ErrPaymentInFlight):
		app.logger.Warnw("concurrent payment rejected", "path", r.URL.Path)
		app.errorResponse(w, http.StatusConflict, app.localize(r, "shop.payment.inFlight"), envelope{"code": ErrorCodePaymentInFlight})

	case errors.As(err, &captureErr):
		app.logger.Errorw("payment capture failed after authorization",
			"path", r.URL.Path,
			"provider", captureErr.Provider,
			"charge_id", captureErr.ChargeID,
			"error", err,
		)
		app.errorResponse(w, http.StatusInternalServerError, app.localize(r, "shop.payment.captureFailed"), envelope{"code": ErrorCodeCaptureFailed})

	case errors.As(err, &unavailable):
		app.logger.Errorw("payment provider unavailable", "path", r.URL.Path, "error", err)
		app.errorResponse(w, http.StatusServiceUnavailable, app.localize(r, "shop.payment.providerUnavailable"), envelope{"code": ErrorCodeProviderUnavailable})

	case errors.As(err, &configErr):
		app.logger.Errorw("payment configuration error", "path", r.URL.Path, "error", err)
		app.errorResponse(w, http.StatusInternalServerError, app.localize(r, "shop.payment.configError"), envelope{"code": ErrorCodeConfiguration})

	case errors.As(err, &vendorErr):
		app.logger.Errorw("payment vendor error",
			"path", r.URL.Path,
			"provider", vendorErr.Provider,
			"status", vendorErr.StatusCode,
			"error", err,
		)
		app.errorResponse(w, http.StatusInternalServerError, app.localize(r, "shop.payment.vendorError"), envelope{"code": ErrorCodeVendor})

	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) errorResponse(w http.ResponseWriter, status int, message any, info ...envelope) {
	error := envelope{
		"message": message,
	}

	env := envelope{
		"status": "error",
		"error":  error,
	}

	if len(info) == 1 && len(info[0]) > 0 {
		for key, value := range info[0] {
			error[key] = value
		}
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logger.Info("Failed to write JSON response:", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) successResponse(w http.ResponseWriter, status int, data any) {
	env := envelope{
		"status": "success",
		"data":   data,
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logger.Info("Failed to write JSON response:", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
