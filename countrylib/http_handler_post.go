package countrylib

import (
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"math"
	"net"
	"net/http"
	"strings"

	"github.com/qri-io/jsonschema"
)

var handlePostIPsRequestJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "required": [
            "ips"
        ],
        "additionalProperties": false,
        "properties": {
            "ips": {
                "type": "array",
                "minItems": 1,
                "maxItems": 100,
                "items": {
                    "type": "string",
                    "pattern": ` + jsonQuote(IPv4Pattern) + `
                }
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

var handlePostRateLimitRequestJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "required": [
            "vendor",
            "limit"
        ],
        "properties": {
            "vendor": {
                "type": "string",
                "enum": [
                    "primaryVendor",
                    "secondaryVendor"
                ]
            },
            "limit": {
                "type": "number",
                "minimum": 0
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type handlePostIPsRequest struct {
	IPs []string `json:"ips"`
}

type handlePostIPsResponseItem struct {
	IP      string `json:"ip"`
	Country string `json:"country,omitempty"`
	Error   string `json:"error,omitempty"`
}

type handlePostIPsResponse struct {
	Results []handlePostIPsResponseItem `json:"results"`
}

type handlePostRateLimitRequest struct {
	Vendor ProviderType `json:"vendor"`
	Limit  float64      `json:"limit"`
}

type handlePostRateLimitResponse struct {
	Message string `json:"message"`
}

func (h httpHandler) handlePostIPs(w http.ResponseWriter, req *http.Request) {
	if !strings.Contains(req.Header.Get("Content-Type"), "application/json") {
		h.sendError(w, nil, "Incorrect content type", http.StatusUnsupportedMediaType)

		return
	}

	bodyBytes, err := h.readBody(req.Body)
	if err != nil {
		h.sendError(w, err, "Cannot read request body", http.StatusBadRequest)

		return
	}

	errs, err := handlePostIPsRequestJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil || len(errs) > 0 {
		h.sendError(w, err, httpMessageInvalidInput, http.StatusBadRequest)

		return
	}

	parsedRequest := handlePostIPsRequest{}
	if err := json.Unmarshal(bodyBytes, &parsedRequest); err != nil {
		h.sendError(w, err, httpMessageInvalidInput, http.StatusBadRequest)

		return
	}

	ips := make([]net.IP, 0, len(parsedRequest.IPs))

	for _, v := range parsedRequest.IPs {
		ipAddr, ok := ParseIPv4(v)
		if !ok {
			h.sendError(w, nil, httpMessageInvalidIPv4, http.StatusBadRequest)

			return
		}

		ips = append(ips, ipAddr)
	}

	resolved, err := h.resolver.ResolveAll(req.Context(), ips)
	if err != nil {
		h.sendResolveError(w, err)

		return
	}

	response := handlePostIPsResponse{
		Results: make([]handlePostIPsResponseItem, 0, len(resolved)),
	}

	for i := range resolved {
		item := handlePostIPsResponseItem{
			IP:      parsedRequest.IPs[i],
			Country: resolved[i].Country,
		}

		vendorErr := &VendorUnavailableError{}

		switch {
		case resolved[i].OK():
		case errors.As(resolved[i].Err, &vendorErr):
			item.Error = vendorErr.Error()
		default:
			item.Error = httpMessageUnexpected
		}

		response.Results = append(response.Results, item)
	}

	h.encodeJSON(w, http.StatusOK, response)
}

func (h httpHandler) handlePostRateLimit(w http.ResponseWriter, req *http.Request) {
	bodyBytes, err := h.readBody(req.Body)
	if err != nil {
		h.sendError(w, err, httpMessageInvalidInput, http.StatusBadRequest)

		return
	}

	errs, err := handlePostRateLimitRequestJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil || len(errs) > 0 {
		h.sendError(w, err, httpMessageInvalidInput, http.StatusBadRequest)

		return
	}

	parsedRequest := handlePostRateLimitRequest{}
	if err := json.Unmarshal(bodyBytes, &parsedRequest); err != nil {
		h.sendError(w, err, httpMessageInvalidInput, http.StatusBadRequest)

		return
	}

	if err := h.resolver.SetRateLimit(parsedRequest.Vendor, rateLimitValue(parsedRequest.Limit)); err != nil {
		h.sendError(w, err, httpMessageInvalidInput, http.StatusBadRequest)

		return
	}

	h.encodeJSON(w, http.StatusOK, handlePostRateLimitResponse{
		Message: "Rate limit updated successfully",
	})
}

func (h httpHandler) readBody(body io.ReadCloser) ([]byte, error) {
	defer body.Close()

	return ioutil.ReadAll(io.LimitReader(body, httpMaxBodySize))
}

// rateLimitValue converts a limit into integer. Fractional limits are
// rounded up: for integer counters count < 2.5 is the same as
// count < 3.
func rateLimitValue(limit float64) int {
	limit = math.Ceil(limit)

	if limit > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(limit)
}

func jsonQuote(value string) string {
	data, _ := json.Marshal(value)

	return string(data)
}
