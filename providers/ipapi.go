package providers

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/9seconds/ipcountry/countrylib"
)

type ipapiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Country string `json:"country"`
}

type ipapiProvider struct {
	client countrylib.HTTPClient
}

func (i ipapiProvider) Name() string {
	return NameIPAPI
}

func (i ipapiProvider) Lookup(ctx context.Context, ip net.IP) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"http://ip-api.com/json/"+ip.String()+"?fields=status,message,country", nil)
	if err != nil {
		return "", lookupError(NameIPAPI, fmt.Errorf("cannot build a request: %w", err))
	}

	jsonResponse := ipapiResponse{}

	if err := doJSONRequest(i.client, req, &jsonResponse); err != nil {
		return "", lookupError(NameIPAPI, err)
	}

	// status is absent if fields are not respected
	if jsonResponse.Status != "" && jsonResponse.Status != "success" {
		return "", lookupError(NameIPAPI,
			fmt.Errorf("failed to geolocate: %s", jsonResponse.Message))
	}

	if jsonResponse.Country == "" {
		return "", lookupError(NameIPAPI, ErrNoCountry)
	}

	return jsonResponse.Country, nil
}

// NewIPAPI returns a secondary provider which uses ip-api.com. It does
// not require any token.
func NewIPAPI(client countrylib.HTTPClient) countrylib.Provider {
	return ipapiProvider{
		client: client,
	}
}
