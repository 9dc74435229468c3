package providers

import "errors"

var (
	// ErrAuthTokenIsRequired is returned if you are trying to initialize
	// a provider which requires some token to work.
	ErrAuthTokenIsRequired = errors.New("auth token is required")

	// ErrNoCountry is returned if provider has responded without a
	// country.
	ErrNoCountry = errors.New("response has no country")
)
