package countrylib

import (
	"context"
	"net"
	"net/http"
)

// HTTPClient is an interface of the client which providers use to
// access their APIs. http.Client conforms it, but you probably want
// to use the one made by NewHTTPClient.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Provider is an online geolocation service which can tell a country
// name for a given IP address.
//
// Lookup has to return an error if it cannot get a country name. An
// empty string with nil error is not a valid response.
type Provider interface {
	Name() string
	Lookup(context.Context, net.IP) (string, error)
}

// Logger is an interface which Resolver uses to report events which
// are not propagated to the caller.
type Logger interface {
	LookupError(ip net.IP, name string, err error)
	CapacityExhausted(ip net.IP, name string)
	RateLimitUpdated(name string, limit int)
}
