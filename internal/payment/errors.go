package payment

import (
	"errors"
	"fmt"
)

// ErrPaymentInFlight is returned when Process is called while another
// payment attempt is still outstanding.
var ErrPaymentInFlight = errors.New("a payment is already in flight")

// ValidationError is bad or missing caller input. Safe to show to the user;
// MessageKey picks the localized display message.
type ValidationError struct {
	MessageKey string
	Detail     string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func newValidationError(key, detail string) *ValidationError {
	return &ValidationError{MessageKey: key, Detail: detail}
}

// ConfigurationError is a missing or malformed server-side provider secret.
// The user sees a generic message; Detail is for the server log only.
type ConfigurationError struct {
	Provider Method
	Detail   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Detail)
}

// VendorError is a non-2xx or malformed response from a provider's API.
type VendorError struct {
	Provider   Method
	StatusCode int
	Detail     string
	Err        error
}

func (e *VendorError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Detail)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// UnavailableError means the provider's client never became ready within the
// readiness poll budget. The user-facing message asks for a page reload.
type UnavailableError struct {
	Provider Method
	Attempts int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s client unavailable after %d attempts", e.Provider, e.Attempts)
}

// CaptureError is the authorize-succeeded/capture-failed partial outcome.
// Funds may be held on an order that never completed; ChargeID identifies
// the authorization for manual reconciliation.
type CaptureError struct {
	Provider Method
	ChargeID string
	Err      error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("%s: capture failed for authorized charge %s: %v", e.Provider, e.ChargeID, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
