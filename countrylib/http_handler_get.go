package countrylib

import (
	"net/http"

	"github.com/go-chi/chi"
)

type handleGetIPResponse struct {
	IP      string `json:"ip"`
	Country string `json:"country"`
}

type handleGetStatsResponse struct {
	Providers []ProviderStats `json:"providers"`
	CacheSize int             `json:"cache_size"`
}

func (h httpHandler) handleGetIP(w http.ResponseWriter, req *http.Request) {
	rawIP := chi.URLParam(req, "ip")

	ipAddr, ok := ParseIPv4(rawIP)
	if !ok {
		h.sendError(w, nil, httpMessageInvalidIPv4, http.StatusBadRequest)

		return
	}

	country, err := h.resolver.Resolve(req.Context(), ipAddr)
	if err != nil {
		h.sendResolveError(w, err)

		return
	}

	h.encodeJSON(w, http.StatusOK, handleGetIPResponse{
		IP:      rawIP,
		Country: country,
	})
}

func (h httpHandler) handleGetStats(w http.ResponseWriter, req *http.Request) {
	h.encodeJSON(w, http.StatusOK, handleGetStatsResponse{
		Providers: h.resolver.Stats(),
		CacheSize: h.resolver.CacheSize(),
	})
}
