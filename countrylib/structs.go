package countrylib

import "net"

// ResolveResult is a result of resolving of a single IP address in a
// batch.
type ResolveResult struct {
	IP      net.IP
	Country string
	Err     error
}

// OK tells if country was resolved.
func (r *ResolveResult) OK() bool {
	return r.Err == nil && r.Country != ""
}

// ProviderStats is a snapshot of provider state: its rate limit
// window and usage counters.
type ProviderStats struct {
	VendorUsage

	Type  ProviderType `json:"type"`
	Usage *UsageStats  `json:"usage"`
}
