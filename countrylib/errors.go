package countrylib

import (
	"encoding/json"
	"errors"
	"net/http"
)

// VendorUnavailableMessage is a message of VendorUnavailableError. It is
// fixed and returned to API clients as is.
const VendorUnavailableMessage = "Unable to fetch country information. All vendors unavailable or rate limits exceeded."

var (
	ErrResolverShutdown   = errors.New("resolver instance was shutdown")
	ErrNotIPv4            = errors.New("only IPv4 addresses are supported")
	ErrNegativeRateLimit  = errors.New("rate limit cannot be negative")
	ErrCapacityExhausted  = errors.New("rate limit is exhausted")
	ErrEmptyCountry       = errors.New("provider has returned an empty country")
	ErrProviderIsRequired = errors.New("both primary and secondary providers are required")
	ErrContextIsClosed    = errors.New("context is closed")
)

// ProviderError is returned by providers on any failure: network
// error, unexpected status code, malformed body or missing country.
type ProviderError struct {
	Provider string
	Err      error
}

func (p *ProviderError) Error() string {
	return "provider " + p.Provider + " has failed: " + p.Err.Error()
}

func (p *ProviderError) Unwrap() error {
	return p.Err
}

// VendorUnavailableError is the only error Resolver returns when it
// tried everything and has failed. Causes keep a reason for each
// provider in order of resolution.
type VendorUnavailableError struct {
	Causes []error
}

func (v *VendorUnavailableError) Error() string {
	return VendorUnavailableMessage
}

type jsonHTTPError struct {
	Error string `json:"error"`
}

type httpError struct {
	message    string
	err        error
	statusCode int
}

func (h *httpError) Message() string {
	if h == nil {
		return ""
	}

	return h.message
}

func (h *httpError) StatusCode() int {
	if h != nil && h.statusCode != 0 {
		return h.statusCode
	}

	return http.StatusInternalServerError
}

func (h *httpError) Unwrap() error {
	if h == nil {
		return nil
	}

	return h.err
}

func (h *httpError) Error() string {
	switch {
	case h == nil:
		return ""
	case h.err != nil && h.message != "":
		return h.message + ": " + h.err.Error()
	case h.err != nil:
		return h.err.Error()
	}

	return h.message
}

// MarshalJSON renders only a message. A wrapped error is an internal
// detail and never leaves the service.
func (h *httpError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&jsonHTTPError{
		Error: h.Message(),
	})
}
