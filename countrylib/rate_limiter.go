package countrylib

import (
	"sync"
	"time"
)

const (
	// DefaultRateLimit is a number of successful requests each provider
	// is allowed to serve within a window.
	DefaultRateLimit = 100

	// DefaultRateLimitWindow is a duration of the rate limit window.
	DefaultRateLimitWindow = time.Hour
)

// VendorUsage is a snapshot of provider's rate limit state. InFlight
// is a number of reserved requests which are not finished yet.
type VendorUsage struct {
	RateLimit   int       `json:"rate_limit"`
	Count       int       `json:"count"`
	InFlight    int       `json:"in_flight"`
	WindowStart time.Time `json:"window_start"`
}

// RateLimiter tracks how many successful requests each provider has
// served in the current window. Window is reset lazily on access:
// there are no background timers.
//
// RateLimiter is safe for concurrent use.
type RateLimiter struct {
	mutex  sync.Mutex
	usage  [providerTypeCount]VendorUsage
	window time.Duration
	now    func() time.Time
}

// RateLimiterOption customizes RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimitWindow sets a duration of the rate limit window.
func WithRateLimitWindow(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.window = d }
}

// WithClock sets a function which returns current time.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) { r.now = now }
}

// ResetWindowIfExpired starts a new window for the provider if the
// current one is over.
func (r *RateLimiter) ResetWindowIfExpired(provider ProviderType) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.resetWindowIfExpired(provider)
}

// HasCapacity tells if provider has not reached its rate limit yet.
// Reserved requests are counted as consumed.
func (r *RateLimiter) HasCapacity(provider ProviderType) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.resetWindowIfExpired(provider).hasCapacity()
}

// TryReserve takes a slot for a request to the provider if it has
// capacity. A reservation has to be finished either with Commit or
// with Release.
func (r *RateLimiter) TryReserve(provider ProviderType) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	usage := r.resetWindowIfExpired(provider)
	if !usage.hasCapacity() {
		return false
	}

	usage.InFlight++

	return true
}

// Commit turns a reservation into a consumed request.
func (r *RateLimiter) Commit(provider ProviderType) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	usage := r.resetWindowIfExpired(provider)
	usage.release()
	usage.Count++
}

// Release gives a reserved slot back. Failed requests do not consume
// capacity.
func (r *RateLimiter) Release(provider ProviderType) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.resetWindowIfExpired(provider).release()
}

// Consume records a successful request to the provider.
func (r *RateLimiter) Consume(provider ProviderType) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.resetWindowIfExpired(provider).Count++
}

// SetLimit sets a new rate limit for the provider. A counter and
// a window are kept intact.
func (r *RateLimiter) SetLimit(provider ProviderType, limit int) error {
	if limit < 0 {
		return ErrNegativeRateLimit
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.usage[provider].RateLimit = limit

	return nil
}

// Usage returns a copy of the current provider state.
func (r *RateLimiter) Usage(provider ProviderType) VendorUsage {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return *r.resetWindowIfExpired(provider)
}

func (v *VendorUsage) hasCapacity() bool {
	return v.Count+v.InFlight < v.RateLimit
}

func (v *VendorUsage) release() {
	if v.InFlight > 0 {
		v.InFlight--
	}
}

// resetWindowIfExpired zeroes only Count: reservations made in the
// previous window are still in flight.
func (r *RateLimiter) resetWindowIfExpired(provider ProviderType) *VendorUsage {
	usage := &r.usage[provider]
	now := r.now()

	if now.Sub(usage.WindowStart) >= r.window {
		usage.Count = 0
		usage.WindowStart = now
	}

	return usage
}

// NewRateLimiter creates a new rate limiter with given limits for
// primary and secondary providers.
func NewRateLimiter(primaryLimit, secondaryLimit int, opts ...RateLimiterOption) (*RateLimiter, error) {
	if primaryLimit < 0 || secondaryLimit < 0 {
		return nil, ErrNegativeRateLimit
	}

	rv := &RateLimiter{
		window: DefaultRateLimitWindow,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(rv)
	}

	now := rv.now()

	rv.usage[ProviderPrimary] = VendorUsage{RateLimit: primaryLimit, WindowStart: now}
	rv.usage[ProviderSecondary] = VendorUsage{RateLimit: secondaryLimit, WindowStart: now}

	return rv, nil
}
