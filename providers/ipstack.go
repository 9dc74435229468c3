package providers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/9seconds/ipcountry/countrylib"
)

type ipstackResponse struct {
	Error struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
	Country string `json:"country_name"`
}

type ipstackProvider struct {
	client     countrylib.HTTPClient
	httpScheme string
	authToken  string
}

func (i ipstackProvider) Name() string {
	return NameIPStack
}

func (i ipstackProvider) Lookup(ctx context.Context, ip net.IP) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.buildURL(ip), nil)
	if err != nil {
		return "", lookupError(NameIPStack, fmt.Errorf("cannot build a request: %w", err))
	}

	jsonResponse := ipstackResponse{}

	if err := doJSONRequest(i.client, req, &jsonResponse); err != nil {
		return "", lookupError(NameIPStack, err)
	}

	if jsonResponse.Error.Code != 0 {
		return "", lookupError(NameIPStack, fmt.Errorf(
			"failed response: code=%d, type=%s, info=%s",
			jsonResponse.Error.Code,
			jsonResponse.Error.Type,
			jsonResponse.Error.Info))
	}

	if jsonResponse.Country == "" {
		return "", lookupError(NameIPStack, ErrNoCountry)
	}

	return jsonResponse.Country, nil
}

func (i ipstackProvider) buildURL(ip net.IP) string {
	getQuery := url.Values{}

	getQuery.Set("access_key", i.authToken)
	getQuery.Set("output", "json")
	getQuery.Set("fields", "country_name")

	u := url.URL{
		Scheme:   i.httpScheme,
		Host:     "api.ipstack.com",
		Path:     ip.String(),
		RawQuery: getQuery.Encode(),
	}

	return u.String()
}

// NewIPStack returns a primary provider which uses ipstack.com API.
// Free plan of ipstack does not support HTTPS, so isSecure is optional.
func NewIPStack(client countrylib.HTTPClient, authToken string, isSecure bool) (countrylib.Provider, error) {
	scheme := "http"

	if isSecure {
		scheme = "https"
	}

	if authToken == "" {
		return nil, ErrAuthTokenIsRequired
	}

	return ipstackProvider{
		client:     client,
		authToken:  authToken,
		httpScheme: scheme,
	}, nil
}
