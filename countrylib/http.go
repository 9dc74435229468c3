package countrylib

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const (
	httpMessageInvalidIPv4  = "Invalid IPv4"
	httpMessageInvalidInput = "Invalid input"
	httpMessageUnexpected   = "An unexpected error occurred"

	httpMaxBodySize = 1024 * 1024
)

type httpHandler struct {
	resolver *Resolver
}

func (h httpHandler) handleNotFound(w http.ResponseWriter, req *http.Request) {
	h.sendError(w, nil, "Not found", http.StatusNotFound)
}

func (h httpHandler) handleMethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	h.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	h.encodeJSON(w, e.StatusCode(), e)
}

// sendResolveError maps VendorUnavailableError to 503. Everything else
// is unexpected.
func (h httpHandler) sendResolveError(w http.ResponseWriter, err error) {
	vendorErr := &VendorUnavailableError{}

	if errors.As(err, &vendorErr) {
		h.sendError(w, err, vendorErr.Error(), http.StatusServiceUnavailable)

		return
	}

	h.sendError(w, err, httpMessageUnexpected, http.StatusInternalServerError)
}

// NewHTTPHandler returns a JSON API for the resolver:
//
//   GET  /ip-to-country/{ip}  resolve a single IPv4 address
//   POST /ip-to-country       resolve a batch of addresses
//   POST /config/rate-limit   set a rate limit of the provider
//   GET  /stats               usage statistics
func NewHTTPHandler(resolver *Resolver) http.Handler {
	handler := httpHandler{
		resolver: resolver,
	}
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Recoverer)

	router.NotFound(handler.handleNotFound)
	router.MethodNotAllowed(handler.handleMethodNotAllowed)

	router.Get("/ip-to-country/{ip}", handler.handleGetIP)
	router.Post("/ip-to-country", handler.handlePostIPs)
	router.Post("/config/rate-limit", handler.handlePostRateLimit)
	router.Get("/stats", handler.handleGetStats)

	return router
}
